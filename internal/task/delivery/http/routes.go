package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Detail)
	rg.DELETE("/:id", h.Delete)
}
