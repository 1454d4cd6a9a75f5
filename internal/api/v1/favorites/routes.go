package favorites

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.GET("/tools/favorites", h.ListToolFavorites)
	router.POST("/tools/favorites/:catalogId", h.ToggleToolFavorite)
	router.GET("/training/favorites", h.ListTrainingFavorites)
	router.POST("/training/favorites/:catalogId", h.ToggleTrainingFavorite)
}
