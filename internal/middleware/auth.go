package middleware

import (
	"errors"
	"net/http"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextIdentity = "identity"
	ContextToken    = "token"
	ContextTokenExp = "token_exp"
)

// AuthMiddleware resolves the bearer token into an identity and attaches it to both the
// gin context and the request context.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		id, exp, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, models.ErrUnauthenticated) {
				c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			} else {
				_ = c.Error(err)
				c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
			}
			c.Abort()
			return
		}

		c.Set(ContextIdentity, id)
		c.Set(ContextToken, tokenString)
		c.Set(ContextTokenExp, exp)
		c.Request = c.Request.WithContext(models.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// TokenFrom returns the raw token and expiry stored by AuthMiddleware.
func TokenFrom(c *gin.Context) (string, time.Time) {
	token := c.GetString(ContextToken)
	exp, _ := c.Get(ContextTokenExp)
	t, _ := exp.(time.Time)
	return token, t
}
