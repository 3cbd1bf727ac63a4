package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/notelytics/notelytics-api/config"
	"github.com/notelytics/notelytics-api/gemini"
	"github.com/notelytics/notelytics-api/handlers"
	"github.com/notelytics/notelytics-api/middleware"
	"github.com/notelytics/notelytics-api/storage"
)

func init() {
	// Load .env file if present; a real environment wins either way
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
	}
}

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.AppEnv)
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatalw("failed to open storage", "backend", cfg.StorageBackend, "error", err)
	}
	defer store.Close()
	logger.Infow("storage ready", "backend", cfg.StorageBackend)

	var model gemini.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			logger.Fatalw("failed to create GenAI client", "error", err)
		}
		model = client
	} else {
		logger.Warnw("GEMINI_API_KEY is not set, AI endpoints will return configuration errors")
	}

	h := &handlers.Handler{
		Subjects:      storage.NewSubjects(store, logger),
		Exams:         storage.NewExams(store, logger),
		Settings:      storage.NewSettings(store),
		Model:         model,
		ChatModel:     cfg.ChatModel,
		AnalysisModel: cfg.AnalysisModel,
		Log:           logger,
	}

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(logger)(h.Routes()))

	addr := "0.0.0.0:" + cfg.Port
	logger.Infow("listening", "addr", addr)
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func newLogger(appEnv string) *zap.SugaredLogger {
	var zapCfg zap.Config
	if appEnv == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapLogger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return zapLogger.Sugar()
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "sqlite", "postgres", "postgresql":
		return storage.OpenSQL(cfg.StorageBackend, cfg.DatabaseURL)
	case "badger":
		return storage.OpenBadger(cfg.DataDir)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
