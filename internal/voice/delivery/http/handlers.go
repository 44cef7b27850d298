package http

import (
	"github.com/gin-gonic/gin"

	"voicetask/pkg/response"
)

// Commands godoc
// @Summary     Resolve and materialize voice commands
// @Description Runs the full pipeline on a transcript: split, resolve, reconcile, create tasks.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       body body resolveReq true "Transcript and session"
// @Success     200 {object} resolveResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/voice/commands [POST]
func (h *handler) Commands(c *gin.Context) {
	h.resolve(c, false)
}

// Resolve godoc
// @Summary     Resolve voice commands (dry run)
// @Description Runs resolution and reconciliation without creating tasks.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       body body resolveReq true "Transcript and session"
// @Success     200 {object} resolveResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/voice/resolve [POST]
func (h *handler) Resolve(c *gin.Context) {
	h.resolve(c, true)
}

func (h *handler) resolve(c *gin.Context, dryRun bool) {
	ctx := c.Request.Context()

	req, err := h.processResolveReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Resolve(ctx, scopeFrom(c), req.toInput(dryRun))
	if err != nil {
		h.l.Errorf(ctx, "uc.Resolve: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newResolveResp(output))
}
