package main

import (
	"context"
	"log"
	"time"

	"praia-backend/config"
	"praia-backend/internal/ai"
	"praia-backend/internal/api"
	"praia-backend/internal/catalog"
	"praia-backend/internal/database"
	"praia-backend/internal/repository"
	"praia-backend/internal/repository/memory"
	"praia-backend/internal/repository/sqlstore"
	"praia-backend/internal/services"
	"praia-backend/internal/utils"
	"praia-backend/pkg/logger"

	"go.uber.org/zap"
)

// @title Praia API
// @version 1.0
// @description Prompt library, AI tool directory and training catalog with AI-assisted prompt enhancement.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Log.Sync()

	deps, cleanup, err := wire(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("failed to start", zap.Error(err))
	}
	defer cleanup()

	router := api.NewRouter(deps)
	logger.Log.Info("Server starting", zap.String("addr", cfg.ListenAddr()), zap.String("store", cfg.StoreDriver))
	if err := router.Run(cfg.ListenAddr()); err != nil {
		logger.Log.Fatal("failed to run server", zap.Error(err))
	}
}

func wire(cfg *config.Config, log *zap.Logger) (api.Deps, func(), error) {
	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return api.Deps{}, nil, err
	}

	store, err := openStore(cfg.StoreDriver)
	if err != nil {
		return api.Deps{}, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	redisClient, closeRedis, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		return api.Deps{}, nil, err
	}
	if !cfg.RedisEnabled() {
		log.Warn("REDIS_HOST is not set; using an embedded Redis for token revocation")
	}

	clock := services.NewMonotonicClock(time.Now)
	prompts := services.NewPromptService(store.Prompts, store.Folders, cat, clock, log)
	tools := services.NewToolFavorites(cat, store.ToolFavorites, clock, log)
	training := services.NewTrainingFavorites(cat, store.TrainingFavorites, clock, log)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	auth := services.NewAuthService(tokens, services.NewTokenDenylist(redisClient), store, cfg.AdminEmail, log)
	if cfg.AdminEmail == "" {
		log.Warn("ADMIN_EMAIL is not set; nobody can moderate community prompts")
	}

	gateway := ai.New(ai.Config{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
	}, utils.NewHTTPClient(cfg.AITimeout, log), log)

	return api.Deps{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        auth,
		Prompts:     prompts,
		Catalog:     services.NewCatalogService(cat, prompts),
		Tools:       tools,
		Training:    training,
		Export:      services.NewExportService(prompts, tools, training),
		AI:          gateway,
	}, closeRedis, nil
}

func openStore(driver string) (*repository.Store, error) {
	if driver == config.StoreDriverSQLite {
		db, err := sqlstore.Open("")
		if err != nil {
			return nil, err
		}
		return sqlstore.NewStore(db), nil
	}
	return memory.NewStore(), nil
}
