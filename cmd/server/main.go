package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/config"
	"github.com/JonMunkholm/gamestore/internal/core"
	"github.com/JonMunkholm/gamestore/internal/logging"
	"github.com/JonMunkholm/gamestore/internal/media"
	"github.com/JonMunkholm/gamestore/internal/metrics"
	"github.com/JonMunkholm/gamestore/internal/source"
	"github.com/JonMunkholm/gamestore/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"packs_configured", cfg.Catalog.PacksURL != "",
		"units_configured", cfg.Catalog.UnitsURL != "",
		"cache", cfg.Cache.RedisURL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	if cfg.Catalog.PacksURL == "" || cfg.Catalog.UnitsURL == "" {
		slog.Warn("catalog location missing; affected endpoints will answer 503")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := source.NewDefaultMux(ctx, cfg.Catalog.FetchTimeout, cfg.Catalog.MaxBytes, cfg.Catalog.PacksURL, cfg.Catalog.UnitsURL)
	if err != nil {
		slog.Error("failed to configure catalog source", "error", err)
		os.Exit(1)
	}

	var m *metrics.Metrics
	var fetchOpts []catalog.Option
	if cfg.Metrics.Enabled {
		m = metrics.New()
		fetchOpts = append(fetchOpts, catalog.WithObserver(m))
	}

	fetcher := catalog.NewFetcher(src, cfg.Catalog.PacksURL, cfg.Catalog.UnitsURL, fetchOpts...)

	opts := core.Options{
		TTL:     cfg.Cache.TTL,
		Limiter: core.NewFetchLimiter(cfg.Catalog.MaxConcurrentFetches, cfg.Catalog.FetchWait),
	}
	if m != nil {
		opts.Observer = m
	}
	if cfg.Cache.RedisURL != "" {
		cache, err := core.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			slog.Error("failed to create cache", "error", err)
			os.Exit(1)
		}
		defer cache.Close()

		// An unreachable cache degrades to fetching on every request.
		if err := cache.Ping(ctx); err != nil {
			slog.Warn("cache unreachable at startup", "error", err)
		} else {
			slog.Info("connected to cache")
		}
		opts.Cache = cache
	}
	service := core.NewService(fetcher, opts)

	images, err := media.LoadImageIndexFile(cfg.Storefront.ImageIndexPath)
	if err != nil {
		slog.Error("failed to load image index", "path", cfg.Storefront.ImageIndexPath, "error", err)
		os.Exit(1)
	}
	slog.Info("image index loaded", "entries", images.Len())

	rpm := 0
	if cfg.Rate.Enabled {
		rpm = cfg.Rate.RequestsPerMinute
	}
	server := web.NewServer(service, web.Options{
		Images:            images,
		Metrics:           m,
		WhatsAppPhone:     cfg.Storefront.WhatsAppPhone,
		RequestTimeout:    cfg.Server.RequestTimeout,
		TrustedProxies:    cfg.Security.TrustedProxies,
		EnableCSP:         cfg.Security.EnableCSP,
		RequestsPerMinute: rpm,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})

	go service.StartWarmScheduler(ctx, cfg.Cache.WarmInterval)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		status := service.Limiter().Status()
		if status.Active > 0 {
			slog.Info("waiting for catalog fetches to complete", "active", status.Active)
			if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("catalog fetches did not complete in time", "error", err)
			}
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
