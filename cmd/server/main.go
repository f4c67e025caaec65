package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/agent"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/config"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/handler"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/middleware"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/tools"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/yelp"
)

const maxLogFiles = 10

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	logFile, err := config.SetupLogFile("logs", maxLogFiles)
	if err != nil {
		log.Printf("warning: file logging disabled: %v", err)
	} else {
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"model", cfg.Model,
	)

	// Generation profiles for the two agents
	profiles, err := agent.LoadProfiles()
	if err != nil {
		log.Fatalf("Failed to load generation profiles: %v", err)
	}

	// Venue search tool. Each execution opens a fresh Yelp connection
	// scope and closes it when done.
	searchTool := tools.NewSearchBusinessesTool(
		func() tools.SearchClient {
			return yelp.NewClient(cfg.YelpAPIKey, logger)
		},
		tools.DefaultConfig(),
		logger,
	)

	registry := tools.NewRegistry()
	registry.Register(tools.SearchBusinessesToolName, searchTool)

	// Anthropic client and agents
	anthropicClient := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	searchAgent := agent.NewSearchAgent(&anthropicClient, registry, cfg.Model, profiles.Search, logger)
	recommendationAgent := agent.NewRecommendationAgent(&anthropicClient, cfg.Model, profiles.Recommendation, logger)
	runner := agent.NewRunner(searchAgent, recommendationAgent, logger)

	// Handlers
	searchHandler := handler.NewSearchHandler(searchTool, logger)
	recommendHandler := handler.NewRecommendHandler(runner, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Search and recommendation routes
	mux.HandleFunc("POST /api/search", searchHandler.Search)
	mux.HandleFunc("POST /api/recommendations", recommendHandler.Recommend)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RateLimit → Routes
	httpHandler = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server. Write timeout is generous because a
	// recommendation run chains two model calls plus tool executions.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
