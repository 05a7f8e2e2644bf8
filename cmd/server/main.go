// @title           Rep Score Portal API
// @version         1.0.0
// @description     Backend API for the Rep Score Portal. Marketing teams submit creative assets through a guided wizard for DEI review; reviewers' scores are explored through heatmap, progress, and portfolio views backed by Google Sheets.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"rep-score-portal/docs"
	"rep-score-portal/internal/config"
	"rep-score-portal/internal/database"
	"rep-score-portal/internal/handlers"
	"rep-score-portal/internal/middleware"
	"rep-score-portal/internal/services"
	"rep-score-portal/internal/session"
	"rep-score-portal/internal/sheets"
	"rep-score-portal/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("failed to load configuration", zap.Error(err))
	}

	var logger *zap.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Update Swagger docs with the deployed base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx := context.Background()

	// Session store: Postgres when configured, in-memory otherwise.
	// Memory sessions do not survive restarts, which is fine for local
	// development but not for a deployment.
	var sessions session.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := session.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to session database", zap.Error(err))
		}
		defer pgStore.Close()

		migrator := database.NewMigrator(pgStore.DB(), logger)
		if err := migrator.Run(); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		sessions = pgStore
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory sessions")
		sessions = session.NewMemoryStore()
	}

	sheetsClient, err := sheets.NewClient(ctx, []byte(cfg.GoogleCredentialsJSON), logger)
	if err != nil {
		logger.Fatal("failed to initialize sheets client", zap.Error(err))
	}

	s3Client, err := storage.NewS3Client(ctx, cfg.AWSRegion, cfg.S3Bucket, logger)
	if err != nil {
		logger.Fatal("failed to initialize s3 client", zap.Error(err))
	}

	assetService := services.NewAssetService(sheetsClient, cfg, logger)
	scoreService := services.NewScoreService(sheetsClient, cfg, logger)
	submissionService := services.NewSubmissionService(sheetsClient, s3Client, cfg, logger)

	wizardHandler := handlers.NewWizardHandler(sessions, assetService, submissionService, logger)
	overviewHandler := handlers.NewOverviewHandler(assetService, sessions, logger)
	explorerHandler := handlers.NewExplorerHandler(scoreService, assetService, logger)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Submission wizard
	api.GET("/wizard", wizardHandler.GetState)
	api.POST("/wizard/steps/seen-before", wizardHandler.SeenBefore)
	api.POST("/wizard/steps/identity", wizardHandler.Identity)
	api.POST("/wizard/steps/marketing", wizardHandler.Marketing)
	api.POST("/wizard/steps/agency", wizardHandler.Agency)
	api.POST("/wizard/steps/review", wizardHandler.Review)
	api.POST("/wizard/steps/upload", wizardHandler.Upload)
	api.POST("/wizard/back", wizardHandler.Back)
	api.POST("/wizard/reset", wizardHandler.Reset)
	api.GET("/catalog", wizardHandler.Catalog)

	// Asset overview
	api.GET("/assets", overviewHandler.Overview)

	// Score exploration
	api.GET("/explore/heatmap", explorerHandler.Heatmap)
	api.GET("/explore/progress", explorerHandler.Progress)
	api.GET("/explore/notes", explorerHandler.Notes)
	api.GET("/explore/portfolio", explorerHandler.Portfolio)
	api.POST("/refresh", explorerHandler.Refresh)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
