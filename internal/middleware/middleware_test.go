package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/repository/memory"
	"praia-backend/internal/services"
	"praia-backend/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test_secret"

func setupAuth(t *testing.T) (*services.AuthService, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	auth := services.NewAuthService(
		utils.NewTokenIssuer(testSecret, time.Hour),
		services.NewTokenDenylist(client),
		memory.NewStore(),
		"admin@example.com",
		zap.NewNop(),
	)
	return auth, client
}

func TestAuthAndAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, _ := setupAuth(t)

	login := func(email string) string {
		s, err := auth.Login(context.Background(), email, "")
		require.NoError(t, err)
		return s.Token
	}
	expired, _, err := utils.NewTokenIssuer(testSecret, -time.Hour).GenerateToken(models.Identity{UserID: "u1"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		path           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Authorization Header",
			path:           "/user/test",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authorization header is required",
		},
		{
			name:           "Invalid Token Format",
			path:           "/user/test",
			authHeader:     "InvalidToken",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "bearer token not found",
		},
		{
			name:           "Invalid Token Signature",
			path:           "/user/test",
			authHeader:     "Bearer invalid.token.signature",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "Expired Token",
			path:           "/user/test",
			authHeader:     "Bearer " + expired,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "User",
			path:           "/user/test",
			authHeader:     "Bearer " + login("ana@example.com"),
			expectedStatus: http.StatusOK,
			expectedBody:   "ana@example.com",
		},
		{
			name:           "Non-Admin User",
			path:           "/admin/test",
			authHeader:     "Bearer " + login("ana@example.com"),
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Forbidden: Admins only",
		},
		{
			name:           "Admin User",
			path:           "/admin/test",
			authHeader:     "Bearer " + login("admin@example.com"),
			expectedStatus: http.StatusOK,
			expectedBody:   "admin@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			handler := func(c *gin.Context) {
				id, err := models.IdentityFrom(c.Request.Context())
				require.NoError(t, err)
				c.String(http.StatusOK, id.Email)
			}
			user := r.Group("/user", AuthMiddleware(auth))
			user.GET("/test", handler)
			admin := r.Group("/admin", AuthMiddleware(auth), AdminAuthMiddleware(zap.NewNop()))
			admin.GET("/test", handler)

			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				var resp utils.Response
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Contains(t, resp.Message, tt.expectedBody)
			} else {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestRevokedTokenIsRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, client := setupAuth(t)

	session, err := auth.Login(context.Background(), "ana@example.com", "Ana")
	require.NoError(t, err)
	require.NoError(t, services.NewTokenDenylist(client).Add(context.Background(), session.Token, time.Minute))

	r := gin.New()
	r.GET("/test", AuthMiddleware(auth), func(c *gin.Context) { c.Status(http.StatusOK) })
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestTokenFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, _ := setupAuth(t)
	session, err := auth.Login(context.Background(), "ana@example.com", "Ana")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/test", AuthMiddleware(auth), func(c *gin.Context) {
		token, exp := TokenFrom(c)
		assert.Equal(t, session.Token, token)
		assert.Equal(t, session.ExpiresAt.Unix(), exp.Unix())
		c.Status(http.StatusNoContent)
	})
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "given")
	r.ServeHTTP(w, req)
	assert.Equal(t, "given", w.Body.String())
}

func TestLoggerFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/items/:id", func(c *gin.Context) {
		c.Request = c.Request.WithContext(models.WithIdentity(c.Request.Context(), models.Identity{UserID: "u1"}))
		c.Status(http.StatusOK)
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("storage exploded"))
		c.Status(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 3)

	ok := entries[0].ContextMap()
	assert.Equal(t, "Request", entries[0].Message)
	assert.Equal(t, "/items/:id", ok["route"])
	assert.Equal(t, "u1", ok["user_id"])

	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, []interface{}{"storage exploded"}, entries[1].ContextMap()["errors"])

	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, "unmatched", entries[2].ContextMap()["route"])
}
