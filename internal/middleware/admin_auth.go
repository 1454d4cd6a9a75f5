package middleware

import (
	"net/http"

	"praia-backend/internal/models"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthMiddleware must run after AuthMiddleware. The admin role comes from the
// ADMIN_EMAIL placeholder, not from a real authorization backend.
func AdminAuthMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := models.IdentityFrom(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		if !id.IsAdmin() {
			log.Warn("Unauthorized admin access attempt", zap.String("user_id", id.UserID), zap.String("path", c.FullPath()))
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			c.Abort()
			return
		}

		c.Next()
	}
}
