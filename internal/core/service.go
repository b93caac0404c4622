package core

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/gamestore/internal/catalog"
	"github.com/JonMunkholm/gamestore/internal/logging"
)

// Fetcher reads the live catalogs. *catalog.Fetcher implements it.
type Fetcher interface {
	FetchPacks(ctx context.Context) ([]catalog.Pack, error)
	FetchUnits(ctx context.Context) ([]catalog.Unit, error)
}

// CacheObserver is told the outcome of every cache lookup.
type CacheObserver interface {
	ObserveCache(kind catalog.Kind, result string)
}

// Options configures a Service. Zero values disable the cache and use the
// default fetch limits.
type Options struct {
	Cache    Cache
	TTL      time.Duration
	Limiter  *FetchLimiter
	Observer CacheObserver
}

// Service serves catalog reads. It puts a response cache and a fetch
// limiter in front of the fetcher; the fetcher itself never caches.
type Service struct {
	fetcher      Fetcher
	cache        Cache
	cacheEnabled bool
	ttl          time.Duration
	limiter      *FetchLimiter
	observer     CacheObserver
}

// NewService creates a Service.
func NewService(fetcher Fetcher, opts Options) *Service {
	s := &Service{
		fetcher:  fetcher,
		cache:    opts.Cache,
		ttl:      opts.TTL,
		limiter:  opts.Limiter,
		observer: opts.Observer,
	}
	if s.cache == nil {
		s.cache = NopCache{}
	} else if _, nop := s.cache.(NopCache); !nop {
		s.cacheEnabled = true
	}
	if s.limiter == nil {
		s.limiter = NewFetchLimiter(0, 0)
	}
	return s
}

// CacheEnabled reports whether a real cache backs the service.
func (s *Service) CacheEnabled() bool {
	return s.cacheEnabled
}

// Limiter exposes the fetch limiter for health output and shutdown.
func (s *Service) Limiter() *FetchLimiter {
	return s.limiter
}

// Packs returns the pack catalog in document order.
func (s *Service) Packs(ctx context.Context) ([]catalog.Pack, error) {
	return load(ctx, s, catalog.KindPacks, s.fetcher.FetchPacks)
}

// Units returns the unit catalog in document order.
func (s *Service) Units(ctx context.Context) ([]catalog.Unit, error) {
	return load(ctx, s, catalog.KindUnits, s.fetcher.FetchUnits)
}

// Pack returns the pack with the given id.
func (s *Service) Pack(ctx context.Context, id int) (catalog.Pack, error) {
	packs, err := s.Packs(ctx)
	if err != nil {
		return catalog.Pack{}, err
	}
	return catalog.PackByID(packs, id)
}

// Unit returns the unit whose title slug is slug.
func (s *Service) Unit(ctx context.Context, slug string) (catalog.Unit, error) {
	units, err := s.Units(ctx)
	if err != nil {
		return catalog.Unit{}, err
	}
	return catalog.UnitBySlug(units, slug)
}

// SearchPacks validates q and filters the pack catalog. Invalid queries
// fail before anything is fetched.
func (s *Service) SearchPacks(ctx context.Context, q catalog.PackQuery) ([]catalog.Pack, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	packs, err := s.Packs(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterPacks(packs, q), nil
}

// SearchUnits validates q and filters the unit catalog.
func (s *Service) SearchUnits(ctx context.Context, q catalog.UnitQuery) ([]catalog.Unit, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	units, err := s.Units(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterUnits(units, q), nil
}

// Home loads both catalogs concurrently and builds the landing view.
func (s *Service) Home(ctx context.Context) (catalog.Home, error) {
	var packs []catalog.Pack
	var units []catalog.Unit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		packs, err = s.Packs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		units, err = s.Units(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return catalog.Home{}, err
	}
	return catalog.BuildHome(packs, units), nil
}

// load serves a catalog from the cache, falling back to a limited fetch
// whose result is written back. Cache failures are logged and otherwise
// ignored.
func load[T any](ctx context.Context, s *Service, kind catalog.Kind, fetch func(context.Context) ([]T, error)) ([]T, error) {
	key := CacheKey(kind)
	logger := logging.WithFields(ctx, "kind", kind)

	if s.cacheEnabled && !cacheBypassed(ctx) {
		data, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.observeCache(kind, "error")
			logger.Warn("cache read failed", "error", err)
		case ok:
			var records []T
			if err := json.Unmarshal(data, &records); err == nil {
				s.observeCache(kind, "hit")
				return records, nil
			}
			s.observeCache(kind, "error")
			logger.Warn("discarding unreadable cache entry", "key", key)
		default:
			s.observeCache(kind, "miss")
		}
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	records, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		data, err := json.Marshal(records)
		if err == nil {
			err = s.cache.Set(ctx, key, data, s.ttl)
		}
		if err != nil {
			logger.Warn("cache write failed", "error", err)
		}
	}
	return records, nil
}

func (s *Service) observeCache(kind catalog.Kind, result string) {
	if s.observer != nil {
		s.observer.ObserveCache(kind, result)
	}
}

type bypassKey struct{}

// WithCacheBypass marks ctx so reads skip the cache and refetch. The fresh
// result is still written back.
func WithCacheBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func cacheBypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}
