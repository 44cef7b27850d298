package http

import (
	"github.com/gin-gonic/gin"

	"voicetask/internal/voice"
	"voicetask/pkg/log"
)

// Handler is the public interface for the voice HTTP delivery layer.
type Handler interface {
	Commands(c *gin.Context)
	Resolve(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc voice.UseCase
}

// New creates a new HTTP handler for the voice domain.
func New(l log.Logger, uc voice.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
