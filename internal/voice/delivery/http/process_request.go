package http

import (
	"github.com/gin-gonic/gin"

	"voicetask/internal/model"
)

// processResolveReq binds and validates the resolve request body.
func (h *handler) processResolveReq(c *gin.Context) (resolveReq, error) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// scopeFrom builds the request scope from transport headers. There is no
// auth layer in front of this service; identity is advisory.
func scopeFrom(c *gin.Context) model.Scope {
	return model.Scope{
		UserID:   c.GetHeader("X-User-ID"),
		Username: c.GetHeader("X-Username"),
		Timezone: c.GetHeader("X-Timezone"),
	}
}
