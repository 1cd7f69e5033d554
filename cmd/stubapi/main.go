// Command stubapi serves an in-memory marketplace backend with seeded
// fixtures so the dashboard can be driven without the real service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/infrastructure/auth"
	"github.com/sooquk/dashboard/internal/infrastructure/config"
	"github.com/sooquk/dashboard/internal/infrastructure/logger"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/middleware"
	"github.com/sooquk/dashboard/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stub API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.Stub.Port),
		zap.Int64("seed", cfg.Stub.Seed),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := memdb.New()
	if err := memdb.Seed(db, memdb.SeedConfig{
		Seed:          cfg.Stub.Seed,
		Size:          cfg.Stub.SeedSize,
		AdminEmail:    cfg.Stub.AdminEmail,
		AdminPassword: cfg.Stub.AdminPassword,
	}); err != nil {
		log.Fatal("Failed to seed fixtures", zap.Error(err))
	}
	log.Info("Fixtures seeded",
		zap.Int("size", cfg.Stub.SeedSize),
		zap.String("admin_email", cfg.Stub.AdminEmail),
	)

	tokens := auth.NewJWTService(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL)

	var httpMetrics *middleware.HTTPMetrics
	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		httpMetrics, err = middleware.NewHTTPMetrics(reg, "stub")
		if err != nil {
			log.Fatal("Failed to register HTTP metrics", zap.Error(err))
		}
	}

	engine := router.New(db, router.Config{
		Logger:  log,
		Tokens:  tokens,
		Metrics: httpMetrics,
	})
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
		log.Info("Metrics endpoint enabled", zap.String("path", cfg.Metrics.Path))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Stub.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
