package api

import (
	"time"

	_ "praia-backend/docs"
	adminPrompt "praia-backend/internal/api/v1/admin/prompt"
	"praia-backend/internal/api/v1/ai_assistant"
	"praia-backend/internal/api/v1/auth"
	"praia-backend/internal/api/v1/catalog"
	"praia-backend/internal/api/v1/export"
	"praia-backend/internal/api/v1/favorites"
	"praia-backend/internal/api/v1/prompts"
	"praia-backend/internal/middleware"
	"praia-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs. main wires it; tests build it on the memory store.
type Deps struct {
	Log         *zap.Logger
	CORSOrigins []string

	Auth     *services.AuthService
	Prompts  *services.PromptService
	Catalog  *services.CatalogService
	Tools    *services.ToolFavorites
	Training *services.TrainingFavorites
	Export   *services.ExportService
	AI       ai_assistant.Enhancer
}

func NewRouter(deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.Logger(log), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(deps.Auth)

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, auth.NewHandler(deps.Auth), authRequired)
		catalog.RegisterRoutes(v1, catalog.NewHandler(deps.Catalog))

		authorized := v1.Group("/")
		authorized.Use(authRequired)
		{
			prompts.RegisterRoutes(authorized, prompts.NewHandler(deps.Prompts))
			favorites.RegisterRoutes(authorized, favorites.NewHandler(deps.Tools, deps.Training))
			ai_assistant.RegisterRoutes(authorized, ai_assistant.NewHandler(deps.AI))
			export.RegisterRoutes(authorized, export.NewHandler(deps.Export))
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(authRequired, middleware.AdminAuthMiddleware(log))
		{
			adminPrompt.RegisterRoutes(admin, adminPrompt.NewHandler(deps.Prompts))
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
