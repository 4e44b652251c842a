package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/glucotrack/glucotrack/internal/api"
	"github.com/glucotrack/glucotrack/internal/config"
	"github.com/glucotrack/glucotrack/internal/database"
	"github.com/glucotrack/glucotrack/internal/fhir"
	"github.com/glucotrack/glucotrack/internal/logger"
	"github.com/glucotrack/glucotrack/internal/repository"
	"github.com/glucotrack/glucotrack/internal/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Glucotrack API...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.New(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	var chartRepo repository.ChartRepository = repository.NewChartRepository(db)
	if cfg.Redis.Host != "" {
		ttl := time.Duration(cfg.Redis.ChartTTLSec) * time.Second
		cache, err := repository.NewChartCache(cfg.Redis.Host, cfg.Redis.Port, ttl, chartRepo)
		if err != nil {
			logger.Warn("Chart cache disabled", "error", err)
		} else {
			defer cache.Close()
			chartRepo = cache
			logger.Info("Chart cache enabled", "ttl_sec", cfg.Redis.ChartTTLSec)
		}
	}

	// Services
	identityClient := fhir.NewClient(cfg.FHIR)
	classificationService := services.NewClassificationService(chartRepo)
	achievementService := services.NewAchievementService(achievementRepo, chartRepo)
	accountService := services.NewAccountService(accountRepo, achievementService, identityClient)
	entryService := services.NewEntryService(entryRepo, accountRepo, achievementService, classificationService)
	logger.Info("Services initialized successfully")

	handler := api.NewHandler(accountService, entryService, achievementService)
	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
