package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wuTims/sentralert-demo-service/internal/cache"
	"github.com/wuTims/sentralert-demo-service/internal/config"
	"github.com/wuTims/sentralert-demo-service/internal/faults"
	"github.com/wuTims/sentralert-demo-service/internal/handlers"
	"github.com/wuTims/sentralert-demo-service/internal/scenario"
	"github.com/wuTims/sentralert-demo-service/internal/store"
	"github.com/wuTims/sentralert-demo-service/internal/telemetry"
)

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The shop must keep serving even when the collector is down, so a
	// failed telemetry bootstrap only logs a warning.
	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		Outputs:     cfg.TelemetryOutputs,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	})
	if err != nil {
		logger.Warnw("⚠️ telemetry init failed, continuing without exporters", "error", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	profile, err := faults.LoadProfile(cfg.FaultProfile)
	if err != nil {
		logger.Fatalw("Failed to load fault profile", "path", cfg.FaultProfile, "error", err)
	}
	injector := faults.NewInjector(profile, cfg.Seed)

	catalog := store.NewCatalog(store.SeedProducts())
	inventory := store.NewInventory(func() int { return injector.IntBetween(0, 100) })
	orders := store.NewOrders(func() int { return injector.IntBetween(1000, 9999) })

	var recCache cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Fatalw("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		}
		logger.Infow("✅ Connected to Redis", "addr", cfg.RedisAddr)
		recCache = redisCache
	default:
		recCache = cache.NewMemoryCache()
	}
	defer recCache.Close()

	metrics := telemetry.NewMetrics()
	instruments, err := telemetry.NewInstruments()
	if err != nil {
		logger.Fatalw("Failed to create instruments", "error", err)
	}

	client := scenario.NewShopClient(cfg.BaseURL)
	runner := scenario.NewRunner(client, logger)

	router := handlers.NewRouter(handlers.Deps{
		Logger:      logger,
		Catalog:     catalog,
		Inventory:   inventory,
		Orders:      orders,
		Cache:       recCache,
		Faults:      injector,
		Metrics:     metrics,
		Instruments: instruments,
		Runner:      runner,
		SlowMin:     cfg.CheckoutSlowMin,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("🚀 %s starting on http://localhost:%d", telemetry.ServiceName, cfg.Port)
		logger.Infof("   Reporting telemetry to %s", cfg.OTLPEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("⚠️ server shutdown failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Warnw("⚠️ telemetry shutdown failed", "error", err)
	}
}
