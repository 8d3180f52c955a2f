package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/pasalo-app/pasalo/internal/analytics"
	"github.com/pasalo-app/pasalo/internal/app"
	"github.com/pasalo-app/pasalo/internal/items"
	"github.com/pasalo-app/pasalo/internal/observability"
	"github.com/pasalo-app/pasalo/internal/personal"
	"github.com/pasalo-app/pasalo/internal/platform/cache"
	"github.com/pasalo-app/pasalo/internal/platform/db"
	"github.com/pasalo-app/pasalo/internal/sellers"
	"github.com/pasalo-app/pasalo/internal/settings"
	"github.com/pasalo-app/pasalo/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, analytics will be served uncached", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	analyticsRepo := analytics.NewRepository(dbpool)
	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	analyticsService := analytics.NewService(analyticsRepo, analyticsCache)
	if err := analyticsCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("analytics cache subscribe", slog.Any("error", err))
	}

	settingsRepo := settings.NewRepository(dbpool)
	settingsService := settings.NewService(settingsRepo)
	if _, err := settingsService.Initialize(ctx); err != nil {
		logger.Warn("initialize settings", slog.Any("error", err))
	}

	itemsRepo := items.NewRepository(dbpool)
	itemsService := items.NewService(itemsRepo, settingsService, analyticsService)

	personalRepo := personal.NewRepository(dbpool)
	personalService := personal.NewService(personalRepo, settingsService)

	sellersRepo := sellers.NewRepository(dbpool)
	sellersService := sellers.NewService(sellersRepo)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ItemsHandler:     items.NewHandler(logger, itemsService),
		PersonalHandler:  personal.NewHandler(logger, personalService),
		SellersHandler:   sellers.NewHandler(logger, sellersService),
		SettingsHandler:  settings.NewHandler(logger, settingsService),
		AnalyticsHandler: analytics.NewHandler(logger, analyticsService),
		JobsHandler:      jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
