package resolver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"voicetask/internal/voice"
)

// commandPayload is the wire shape the model is asked for. Kept separate from
// voice.StructuredCommand so model quirks stay contained here.
type commandPayload struct {
	Intent        string               `json:"intent"`
	Confidence    float64              `json:"confidence"`
	ExtractedData *voice.ExtractedData `json:"extractedData"`
}

func (p *commandPayload) toCommand(text string) voice.StructuredCommand {
	return voice.StructuredCommand{
		Text:          text,
		Intent:        voice.Intent(p.Intent),
		Confidence:    p.Confidence,
		ExtractedData: p.ExtractedData,
	}
}

// reTrailingComma matches a comma followed only by whitespace and a closing
// brace or bracket, which several models emit despite instructions.
var reTrailingComma = regexp.MustCompile(`,\s*([}\]])`)

// parseCommandJSON parses a model response expected to contain one JSON
// object. Strict parse first; on failure, the substring from the first '{'
// to the last '}' is tried with trailing commas stripped. Models wrap JSON
// in prose and markdown fences often enough that this path is routine.
func parseCommandJSON(raw string) (*commandPayload, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	var payload commandPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		return &payload, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	candidate := reTrailingComma.ReplaceAllString(trimmed[start:end+1], "$1")
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, fmt.Errorf("repair parse: %w", err)
	}

	return &payload, nil
}
