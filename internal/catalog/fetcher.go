package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/gamestore/internal/logging"
	"github.com/JonMunkholm/gamestore/internal/sheet"
	"github.com/google/uuid"
)

// Kind names a catalog.
type Kind string

const (
	KindPacks Kind = "packs"
	KindUnits Kind = "units"
)

// Source retrieves the raw text of a catalog document.
// Implementations must not cache: every call reads the live document.
type Source interface {
	Fetch(ctx context.Context, location string) (io.ReadCloser, error)
}

// FetchStats describes one completed fetch.
type FetchStats struct {
	FetchID  string
	Kind     Kind
	Rows     int // data rows, header excluded
	Accepted int
	Dropped  int
	Bytes    int64
	Duration time.Duration
	Err      error
}

// Observer is notified after every fetch, successful or not.
type Observer interface {
	ObserveFetch(FetchStats)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithObserver registers an observer for fetch statistics.
func WithObserver(o Observer) Option {
	return func(f *Fetcher) {
		f.observer = o
	}
}

// Fetcher reads the pack and unit catalogs from their configured locations.
// It holds no mutable state and is safe for concurrent use.
type Fetcher struct {
	source        Source
	packsLocation string
	unitsLocation string
	observer      Observer
}

// NewFetcher creates a Fetcher. Either location may be empty; fetching a
// catalog without a location fails with ErrSourceNotConfigured.
func NewFetcher(source Source, packsLocation, unitsLocation string, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:        source,
		packsLocation: packsLocation,
		unitsLocation: unitsLocation,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPacks retrieves and normalizes the pack catalog.
// An empty document yields an empty, non-nil slice.
func (f *Fetcher) FetchPacks(ctx context.Context) ([]Pack, error) {
	var packs []Pack
	err := f.fetch(ctx, KindPacks, f.packsLocation, func(rows [][]string) int {
		packs = ParsePacks(rows)
		return len(packs)
	})
	if err != nil {
		return nil, err
	}
	return packs, nil
}

// FetchUnits retrieves and normalizes the unit catalog.
// An empty document yields an empty, non-nil slice.
func (f *Fetcher) FetchUnits(ctx context.Context) ([]Unit, error) {
	var units []Unit
	err := f.fetch(ctx, KindUnits, f.unitsLocation, func(rows [][]string) int {
		units = ParseUnits(rows)
		return len(units)
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

// fetch runs retrieve -> tokenize -> normalize for one catalog. normalize
// returns the number of accepted records.
func (f *Fetcher) fetch(ctx context.Context, kind Kind, location string, normalize func([][]string) int) error {
	stats := FetchStats{FetchID: uuid.NewString(), Kind: kind}
	start := time.Now()
	logger := logging.WithFields(ctx, "fetch_id", stats.FetchID, "kind", kind)

	rows, n, err := f.retrieve(ctx, kind, location)
	stats.Bytes = n
	if err == nil {
		if len(rows) > 0 {
			stats.Rows = len(rows) - 1
		}
		stats.Accepted = normalize(rows)
		stats.Dropped = stats.Rows - stats.Accepted
	}
	stats.Duration = time.Since(start)
	stats.Err = err

	if f.observer != nil {
		f.observer.ObserveFetch(stats)
	}

	if err != nil {
		logger.Warn("catalog fetch failed", "error", err, "duration_ms", stats.Duration.Milliseconds())
		return err
	}

	logger.Debug("catalog fetched",
		"location", RedactLocation(location),
		"rows", stats.Rows,
		"accepted", stats.Accepted,
		"dropped", stats.Dropped,
		"bytes", stats.Bytes,
		"duration_ms", stats.Duration.Milliseconds(),
	)
	return nil
}

func (f *Fetcher) retrieve(ctx context.Context, kind Kind, location string) ([][]string, int64, error) {
	if location == "" {
		return nil, 0, fmt.Errorf("%s: %w", kind, ErrSourceNotConfigured)
	}
	if f.source == nil {
		return nil, 0, &RetrievalError{Kind: kind, Location: location, Err: fmt.Errorf("no source backend")}
	}

	body, err := f.source.Fetch(ctx, location)
	if err != nil {
		return nil, 0, &RetrievalError{Kind: kind, Location: location, Err: err}
	}
	defer body.Close()

	counter := sheet.NewCountingReader(body)
	rows, err := sheet.ParseReader(counter)
	if err != nil {
		return nil, counter.BytesRead, &RetrievalError{Kind: kind, Location: location, Err: err}
	}
	return rows, counter.BytesRead, nil
}
