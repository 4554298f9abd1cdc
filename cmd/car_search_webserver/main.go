package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hytech-racing/car-search-webserver/internal/config"
	"github.com/hytech-racing/car-search-webserver/internal/database"
	"github.com/hytech-racing/car-search-webserver/internal/database/usecase"
	handler "github.com/hytech-racing/car-search-webserver/internal/delivery/http"
	"github.com/hytech-racing/car-search-webserver/internal/logging"
	"github.com/hytech-racing/car-search-webserver/internal/metrics"
	hytech_middleware "github.com/hytech-racing/car-search-webserver/internal/middleware"
	"github.com/hytech-racing/car-search-webserver/internal/notify"
	"github.com/hytech-racing/car-search-webserver/internal/s3"
	"github.com/hytech-racing/car-search-webserver/internal/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 10 << 20

func main() {
	cfg, err := config.ReadConfig(".env")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	recorder := logging.NewCrashRecorder(cfg.Logging.CrashDir, 50)
	defer recorder.RecoverAndLogPanic()

	logger, err := logging.NewLogger(cfg.Env, cfg.Logging.Level, recorder)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting car search webserver",
		zap.String("env", cfg.Env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("archive_enabled", cfg.ArchiveEnabled()),
		zap.Bool("events_enabled", cfg.EventsEnabled()),
	)

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tracerProvider, err := tracing.Setup(ctx, cfg.Tracing.ServiceName, os.Stdout)
		if err != nil {
			logger.Fatal("Failed to set up tracing", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error flushing traces", zap.Error(err))
			}
		}()
	}

	// Setup our car store
	dbClient, err := database.NewDatabaseClient(ctx, cfg.Store)
	if err != nil {
		logger.Fatal("Failed to open car store", zap.Error(err))
	}
	defer func() {
		if err := dbClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error closing car store", zap.Error(err))
		}
	}()

	searchOpts := []usecase.CarSearchOption{}

	// Pass a nil interface, not a typed nil pointer, when archiving is off.
	var exportLister handler.ExportLister
	if cfg.ArchiveEnabled() {
		// We are creating one connection to AWS S3 and passing that around to save resources
		s3Repository, err := s3.NewS3Session(ctx, cfg.Aws.AccessKey, cfg.Aws.SecretKey, cfg.Aws.Region, cfg.Aws.ExportBucket)
		if err != nil {
			logger.Fatal("Failed to create S3 session", zap.Error(err))
		}
		searchOpts = append(searchOpts, usecase.WithArchive(s3Repository))
		exportLister = s3Repository
	}

	if cfg.EventsEnabled() {
		publisher, err := notify.NewNatsPublisher(cfg.Nats.URL, cfg.Nats.ExportSubject, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		searchOpts = append(searchOpts, usecase.WithNotifier(publisher))
	}

	searchUseCase := dbClient.CarSearchUseCase(logger, searchOpts...)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(hytech_middleware.RequestLogger(logger))
	router.Use(hytech_middleware.CrashRecovery(recorder))
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(metrics.Middleware())
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", handler.ContentSha256Header, handler.ExportArchiveKeyHeader},
		MaxAge:         300,
	}))
	router.Use(hytech_middleware.BodySizeLimit(maxRequestBodyBytes))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	router.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	router.Handle("/metrics", promhttp.Handler())

	api := chi.NewRouter()
	handler.NewCarHandler(api, dbClient, searchUseCase)
	handler.NewExportsHandler(api, exportLister)

	router.Mount("/api/v1", api)
	router.Mount("/", api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
