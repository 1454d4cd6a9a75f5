package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts login on router and the session routes behind authMiddleware.
func RegisterRoutes(router *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	auth := router.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", authMiddleware, h.Logout)
	auth.GET("/user", authMiddleware, h.CurrentUser)
}
