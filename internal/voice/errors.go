package voice

import "errors"

// Domain-specific errors for the voice package.
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoCommands      = errors.New("no commands resolved from transcript")
)
