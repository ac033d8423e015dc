package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the chat endpoints. mw runs before every chat route.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw ...gin.HandlerFunc) {
	chat := rg.Group("/chat", mw...)
	{
		chat.POST("", h.Submit)
		chat.POST("/reset", h.Reset)
	}
}
