package core

// scheduler.go keeps the response cache warm.
//
// With a cache TTL of a minute the first visitor after expiry pays for the
// upstream fetch. The warm scheduler refetches both catalogs on an interval
// shorter than the TTL so visitors are served from the cache. A failed
// refresh is logged and leaves the previous entry to expire on its own.

import (
	"context"
	"log/slog"
	"time"

	"github.com/JonMunkholm/gamestore/internal/logging"
)

// StartWarmScheduler refreshes the cache immediately and then every
// interval until ctx is cancelled. It returns at once when interval is not
// positive or no cache is configured.
func (s *Service) StartWarmScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !s.cacheEnabled {
		slog.Debug("cache warm scheduler disabled", "interval", interval, "cache", s.cacheEnabled)
		return
	}
	slog.Info("cache warm scheduler started", "interval", interval)

	s.warm(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cache warm scheduler stopped")
			return
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

// warm refetches both catalogs, bypassing the cache.
func (s *Service) warm(ctx context.Context) {
	start := time.Now()
	ctx = WithCacheBypass(ctx)
	logger := logging.FromContext(ctx)

	packs, err := s.Packs(ctx)
	if err != nil {
		logger.Warn("cache warm failed", "kind", "packs", "error", err)
	}
	units, err := s.Units(ctx)
	if err != nil {
		logger.Warn("cache warm failed", "kind", "units", "error", err)
	}

	logger.Debug("cache warmed",
		"packs", len(packs),
		"units", len(units),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
