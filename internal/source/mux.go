package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/JonMunkholm/gamestore/internal/catalog"
)

// ErrUnsupportedLocation is returned when no backend handles a location.
var ErrUnsupportedLocation = errors.New("unsupported catalog location")

// Mux routes a location to the backend registered for its scheme.
// Locations without a scheme are handled by the "file" backend.
type Mux struct {
	backends map[string]catalog.Source
}

// NewMux creates an empty Mux.
func NewMux() *Mux {
	return &Mux{backends: make(map[string]catalog.Source)}
}

// Handle registers src for the given schemes.
func (m *Mux) Handle(src catalog.Source, schemes ...string) *Mux {
	for _, scheme := range schemes {
		m.backends[strings.ToLower(scheme)] = src
	}
	return m
}

// Fetch implements catalog.Source.
func (m *Mux) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	scheme := Scheme(location)
	src, ok := m.backends[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedLocation, scheme)
	}
	return src.Fetch(ctx, location)
}

// Scheme returns the lower-cased scheme of a location, or "file" when it
// has none.
func Scheme(location string) string {
	i := strings.Index(location, "://")
	if i <= 0 {
		return "file"
	}
	return strings.ToLower(location[:i])
}

// NewDefaultMux registers the HTTP and file backends, plus S3 when one of
// locations uses the s3 scheme. The AWS configuration comes from the usual
// environment and shared config files.
func NewDefaultMux(ctx context.Context, timeout time.Duration, maxBytes int64, locations ...string) (*Mux, error) {
	mux := NewMux().
		Handle(NewHTTPSource(timeout, maxBytes), "http", "https").
		Handle(FileSource{}, "file")

	for _, loc := range locations {
		if loc == "" || Scheme(loc) != "s3" {
			continue
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		mux.Handle(NewS3SourceFromConfig(cfg, maxBytes), "s3")
		break
	}
	return mux, nil
}
