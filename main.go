package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/peakbaguio/peak-baguio/app/db"
	appLogger "github.com/peakbaguio/peak-baguio/app/logger"
	"github.com/peakbaguio/peak-baguio/app/observability/metrics"
	"github.com/peakbaguio/peak-baguio/app/tracer"
	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/api/auth"
	"github.com/peakbaguio/peak-baguio/internal/api/category"
	"github.com/peakbaguio/peak-baguio/internal/api/itinerary"
	"github.com/peakbaguio/peak-baguio/internal/api/options"
	"github.com/peakbaguio/peak-baguio/internal/api/report"
	"github.com/peakbaguio/peak-baguio/internal/api/spot"
	"github.com/peakbaguio/peak-baguio/internal/router"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Tracing and metrics ---
	if err := tracer.InitTracingAndMetrics(cfg.Server.MetricsPort, logger); err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Dependency wiring ---
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, cfg.JWT, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	categoryRepo := category.NewPostgresCategoryRepo(pool, logger)
	categoryService := category.NewServiceImpl(categoryRepo, logger)
	categoryHandler := category.NewCategoryHandler(categoryService, logger)

	spotRepo := spot.NewPostgresSpotRepo(pool, logger)
	spotService := spot.NewServiceImpl(spotRepo, logger)
	spotHandler := spot.NewSpotHandler(spotService, logger)

	optionsRepo := options.NewPostgresOptionsRepo(pool, logger)
	optionsService := options.NewServiceImpl(optionsRepo, logger)
	optionsHandler := options.NewOptionsHandler(optionsService, logger)

	completionClient := itinerary.NewOpenAICompletionClient(cfg.Completion)
	geocoder := itinerary.NewHTTPGeocoder(cfg.Geocoding)
	itineraryRepo := itinerary.NewPostgresItineraryRepo(pool, logger)
	itineraryService := itinerary.NewServiceImpl(
		itineraryRepo, completionClient, geocoder, optionsService,
		cfg.Geocoding, metrics.Get(), logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, logger)

	reportRepo := report.NewPostgresReportRepo(pool, logger)
	reportService := report.NewServiceImpl(reportRepo, logger)
	reportHandler := report.NewReportHandler(reportService, logger)

	// --- Router ---
	apiRouter := router.SetupRouter(&router.Config{
		AuthHandler:      authHandler,
		SpotHandler:      spotHandler,
		CategoryHandler:  categoryHandler,
		OptionsHandler:   optionsHandler,
		ItineraryHandler: itineraryHandler,
		ReportHandler:    reportHandler,
		Authenticate:     auth.Authenticate(logger, cfg.JWT),
		RequireAdmin:     auth.RequireRole(logger, types.RoleAdmin),
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	// --- HTTP server ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
