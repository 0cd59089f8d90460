package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/calldesk/callcenter-backend/internal/adapter/handler"
	"github.com/calldesk/callcenter-backend/internal/adapter/repository"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
	"github.com/calldesk/callcenter-backend/internal/infrastructure/cache"
	"github.com/calldesk/callcenter-backend/internal/infrastructure/external/livekit"
	"github.com/calldesk/callcenter-backend/internal/infrastructure/external/openai"
	"github.com/calldesk/callcenter-backend/internal/usecase/transfer"
	"github.com/calldesk/callcenter-backend/pkg/config"
	pkgvalidator "github.com/calldesk/callcenter-backend/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize the record store. One client instance is shared by every
	// repository for the lifetime of the process.
	var (
		callRepo     repositories.CallRepository
		summaryRepo  repositories.SummaryRepository
		transferRepo repositories.TransferRepository
	)
	if cfg.Store.UseMemory {
		log.Println("Record store running in MEMORY mode (no Redis needed)")
		store := repository.NewMemoryStore()
		callRepo = store.Calls()
		summaryRepo = store.Summaries()
		transferRepo = store.Transfers()
	} else {
		log.Println("Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		callRepo = repository.NewCallRepository(redisClient, cfg.Store.CallsTable)
		summaryRepo = repository.NewSummaryRepository(redisClient, cfg.Store.SummariesTable)
		transferRepo = repository.NewTransferRepository(redisClient, cfg.Store.TransfersTable)
	}

	// Initialize LiveKit client
	livekitClient := livekit.NewClient(
		cfg.LiveKit.URL,
		cfg.LiveKit.APIKey,
		cfg.LiveKit.APISecret,
		cfg.LiveKit.UseMock,
	)
	if cfg.LiveKit.UseMock {
		log.Println("LiveKit running in MOCK mode (no real server needed)")
	} else {
		log.Printf("LiveKit connected to: %s", cfg.LiveKit.URL)
	}

	// Initialize summarizer
	summarizer, err := openai.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.MaxTokens,
		cfg.LLM.Temperature,
	)
	if err != nil {
		log.Fatalf("Failed to initialize summarizer: %v", err)
	}

	// Initialize transfer service and handler
	transferService := transfer.NewService(
		callRepo,
		summaryRepo,
		transferRepo,
		livekitClient,
		summarizer,
		cfg.LLM.Model,
		time.Duration(cfg.LiveKit.TokenTTLSeconds)*time.Second,
		logger,
	)
	transferHandler := handler.NewTransferHandler(transferService, logger)

	// Setup router with handlers
	router := handler.NewRouter(cfg, transferHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s (environment: %s)", addr, cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
