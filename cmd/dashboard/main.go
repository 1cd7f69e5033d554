// Command dashboard is the Sooquk admin console.
//
//	dashboard [-config file] [-locale en|ar] [-yes] <resource> <verb> [flags] [args]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/infrastructure/api"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
	"github.com/sooquk/dashboard/internal/infrastructure/auth"
	"github.com/sooquk/dashboard/internal/infrastructure/cache"
	"github.com/sooquk/dashboard/internal/infrastructure/config"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
	"github.com/sooquk/dashboard/internal/infrastructure/logger"
	"github.com/sooquk/dashboard/internal/interfaces/console"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFile := flag.String("config", "", "path to a TOML config file")
	locale := flag.String("locale", "", "message locale (en or ar)")
	yes := flag.Bool("yes", false, "answer yes to every confirmation")
	flag.Parse()

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		return 1
	}
	if *locale != "" {
		cfg.App.Locale = *locale
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	guard, err := auth.NewGuard(cfg.API.Token)
	if err != nil {
		log.Error("Invalid admin token; set api.token or SOOQUK_API_TOKEN", zap.Error(err))
		return 1
	}
	if guard.Expired() {
		log.Warn("Admin token has expired; requests will be rejected",
			zap.String("user_id", guard.UserID()))
	}

	client, err := apiclient.NewClient(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Locale:    cfg.App.Locale,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}, apiclient.WithTokenSource(guard), apiclient.WithLogger(log))
	if err != nil {
		log.Error("Failed to create API client", zap.Error(err))
		return 1
	}

	stores, err := cache.NewFactory(cache.Options{
		Driver:          cfg.Cache.Driver,
		MaxEntries:      cfg.Cache.MaxEntries,
		CleanupInterval: cfg.Cache.CleanupInterval,
		KeyPrefix:       cfg.Cache.KeyPrefix,
		Channel:         cfg.Cache.PubSubChannel,
		Broadcast:       cfg.Cache.Broadcast,
		Redis: cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	}, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		log.Error("Failed to create query cache", zap.Error(err))
		return 1
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Warn("Failed to close query cache", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	cacheMetrics, err := cache.NewMetrics(reg, "dashboard")
	if err != nil {
		log.Error("Failed to register cache metrics", zap.Error(err))
		return 1
	}
	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics, reg, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	opts := []query.Option{
		query.WithLogger(log),
		query.WithMetrics(cacheMetrics),
		query.WithStalePolicy(query.DefaultStalePolicy().With(cfg.Query.StaleTimes)),
		query.WithStaleTime(cfg.Query.DefaultStaleTime),
		query.WithGCTime(cfg.Cache.GCTime),
		query.WithRetry(query.RetryPolicy{
			Attempts:  cfg.Query.RetryAttempts,
			BaseDelay: cfg.Query.RetryDelay,
			MaxDelay:  cfg.Query.RetryMaxDelay,
		}),
	}
	if stores.Invalidator != nil {
		opts = append(opts, query.WithBroadcaster(stores.Invalidator))
	}
	qc := query.NewClient(stores.Store, opts...)
	defer qc.Close()

	if stores.Invalidator != nil {
		go func() {
			if err := cache.Follow(ctx, stores.Invalidator, qc); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("Stopped following remote invalidations", zap.Error(err))
			}
		}()
	}

	translator, err := i18n.New(cfg.App.Locale)
	if err != nil {
		log.Error("Failed to load translations", zap.Error(err))
		return 1
	}

	var confirmer console.Confirmer = console.NewPromptConfirmer(os.Stdin, os.Stdout)
	if *yes {
		confirmer = console.AssumeYes{}
	}

	app := console.NewApp(console.NewServices(api.NewClients(client), qc), console.Deps{
		Guard:      guard,
		Notifier:   console.NewToaster(os.Stdout, log),
		Confirmer:  confirmer,
		Translator: translator,
		Logger:     log,
	}, os.Stdout)

	err = app.Run(ctx, flag.Args())
	switch {
	case err == nil:
		return 0
	case errors.Is(err, console.ErrUsage):
		return 2
	default:
		log.Debug("Command failed", zap.Error(err))
		return 1
	}
}

func serveMetrics(cfg config.MetricsConfig, reg *prometheus.Registry, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("Metrics endpoint failed", zap.Error(err))
		}
	}()
	return srv
}
