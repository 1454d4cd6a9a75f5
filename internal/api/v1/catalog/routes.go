package catalog

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("/prompts", h.ListPrompts)
		catalog.GET("/prompts/:id", h.GetPrompt)
		catalog.GET("/tools", h.ListTools)
		catalog.GET("/training", h.ListTraining)
		catalog.GET("/training/:id", h.GetTraining)
	}
}
