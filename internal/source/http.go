package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxBytes caps a fetched document when no limit is configured.
const DefaultMaxBytes = 10 << 20

// StatusError reports a non-2xx response from an HTTP source.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// HTTPSource fetches documents over HTTP(S).
type HTTPSource struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPSource creates an HTTPSource. A zero timeout leaves requests bound
// only by their context; maxBytes <= 0 uses DefaultMaxBytes.
func NewHTTPSource(timeout time.Duration, maxBytes int64) *HTTPSource {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPSource{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch issues a GET that bypasses intermediate caches.
func (s *HTTPSource) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return limitBody(resp.Body, s.maxBytes), nil
}

// ErrTooLarge is returned by a limited body once the cap is exceeded.
var ErrTooLarge = errors.New("document exceeds size limit")

type limitedBody struct {
	rc        io.ReadCloser
	remaining int64
}

// limitBody wraps rc so that reading more than max bytes fails with
// ErrTooLarge instead of silently truncating the document.
func limitBody(rc io.ReadCloser, max int64) io.ReadCloser {
	return &limitedBody{rc: rc, remaining: max}
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, ErrTooLarge
	}
	// Allow one byte past the limit so an exact-size document is accepted.
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.rc.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return 0, ErrTooLarge
	}
	return n, err
}

func (l *limitedBody) Close() error {
	return l.rc.Close()
}
