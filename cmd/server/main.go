package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/menye94/park-pricing/config"
	"github.com/menye94/park-pricing/internal/database"
	"github.com/menye94/park-pricing/internal/handlers"
	"github.com/menye94/park-pricing/internal/middleware"
	"github.com/menye94/park-pricing/internal/pricing"
	"github.com/menye94/park-pricing/internal/quote"
	"github.com/menye94/park-pricing/internal/storage"
	"github.com/menye94/park-pricing/internal/sweepers"
	"github.com/menye94/park-pricing/internal/telemetry"
)

func main() {
	cfg, err := config.Load(os.Getenv("PARK_PRICING_CONFIG"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting park pricing service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	dbCfg := cfg.Database.PoolConfig()
	dbCfg.URL = config.GetDatabaseURL()
	if dbCfg.URL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}
	if err := database.Connect(ctx, dbCfg); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	repo := database.NewRepository(nil)
	pricingCfg := cfg.Pricing
	svc := pricing.NewService(repo, &pricingCfg).WithLogger(logger)

	store, closeStore, err := storage.Open(ctx, cfg.Storage.Type, cfg.Storage.BasePath, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Str("type", string(cfg.Storage.Type)).Msg("Failed to open quote storage")
	}
	defer closeStore()
	docs := quote.NewDocumentStore(store)
	composer := quote.NewComposer(docs, repo, svc.Converter())

	handlers.Init(svc, composer)

	if interval := cfg.Storage.MirrorSyncInterval; interval > 0 {
		sweeperLogger := logger.With().Str("component", "mirror-sweeper").Logger()
		sweeper := sweepers.NewMirrorSweeper(docs, composer, &sweeperLogger, interval)
		go sweeper.Start(ctx)
	}

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.Burst,
			IdleTTL:           cfg.RateLimit.IdleTTL,
		})
		go limiter.RunCleanup(ctx, time.Minute)
	}
	if cfg.Auth.APIKey == "" {
		logger.Warn().Msg("API key not configured, /api/v1 is unauthenticated")
	}

	router := newRouter(cfg, limiter, logger)

	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "park-pricing").Logger()
	log.Logger = logger
	return &logger
}
