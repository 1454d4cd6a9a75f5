package prompts

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the prompt and folder routes. router must already require a login.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	prompts := router.Group("/prompts")
	{
		prompts.GET("", h.ListPrompts)
		prompts.POST("", h.CreatePrompt)
		prompts.GET("/favorites", h.ListFavorites)
		prompts.POST("/favorites/:catalogId", h.ToggleFavorite)
		prompts.GET("/history/:historyId", h.GetHistory)
		prompts.GET("/:id", h.GetPrompt)
		prompts.PUT("/:id", h.UpdatePrompt)
		prompts.DELETE("/:id", h.DeletePrompt)
		prompts.PATCH("/:id/folder", h.MoveToFolder)
	}

	folders := router.Group("/folders")
	{
		folders.GET("", h.ListFolders)
		folders.POST("", h.CreateFolder)
	}
}
