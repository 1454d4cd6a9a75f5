package ai_assistant

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	aiGroup := router.Group("/ai")
	{
		aiGroup.POST("/enhance", h.Enhance)
		aiGroup.POST("/framework", h.ApplyFramework)
	}
}
