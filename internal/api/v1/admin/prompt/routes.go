package prompt

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the moderation routes. router must already require an admin.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.DELETE("/public-prompts/:historyId", h.RemovePublicPrompt)
}
