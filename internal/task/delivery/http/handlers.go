package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voicetask/internal/model"
	"voicetask/internal/task"
	"voicetask/pkg/response"
)

// List godoc
// @Summary     List tasks
// @Description Returns stored tasks, newest first.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       include_completed query bool false "Include completed tasks"
// @Param       limit  query int false "Page size (default: 20)"
// @Param       offset query int false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, scopeFrom(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get task detail
// @Description Returns a single task by its id.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	output, err := h.uc.Detail(ctx, scopeFrom(c), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Delete godoc
// @Summary     Delete a task
// @Description Permanently removes a task by id.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	if err := h.uc.Delete(ctx, scopeFrom(c), id); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, nil)
}

// scopeFrom builds the request scope from transport headers.
func scopeFrom(c *gin.Context) model.Scope {
	return model.Scope{
		UserID:   c.GetHeader("X-User-ID"),
		Username: c.GetHeader("X-Username"),
		Timezone: c.GetHeader("X-Timezone"),
	}
}
