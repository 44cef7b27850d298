package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"voicetask/internal/voice"
	"voicetask/pkg/response"
)

// mapError translates domain errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, voice.ErrEmptyTranscript), errors.Is(err, voice.ErrNoCommands):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
