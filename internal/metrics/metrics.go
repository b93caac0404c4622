// Package metrics exposes Prometheus collectors for catalog fetches and the
// HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/gamestore/internal/catalog"
)

const namespace = "gamestore"

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	FetchesTotal  *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	RowsAccepted  *prometheus.CounterVec
	RowsDropped   *prometheus.CounterVec
	FetchBytes    *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetches_total",
			Help:      "Catalog fetches by kind and result.",
		}, []string{"kind", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_duration_seconds",
			Help:      "Time to retrieve and normalize a catalog.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		RowsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_rows_accepted_total",
			Help:      "Data rows turned into records.",
		}, []string{"kind"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_rows_dropped_total",
			Help:      "Data rows rejected by the normalizers.",
		}, []string{"kind"}),
		FetchBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_bytes_total",
			Help:      "Bytes read from catalog sources.",
		}, []string{"kind"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_lookups_total",
			Help:      "Response cache lookups by kind and result (hit, miss, error).",
		}, []string{"kind", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FetchesTotal,
		m.FetchDuration,
		m.RowsAccepted,
		m.RowsDropped,
		m.FetchBytes,
		m.CacheLookups,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFetch implements catalog.Observer.
func (m *Metrics) ObserveFetch(s catalog.FetchStats) {
	kind := string(s.Kind)
	m.FetchesTotal.WithLabelValues(kind, fetchResult(s.Err)).Inc()
	m.FetchDuration.WithLabelValues(kind).Observe(s.Duration.Seconds())
	m.FetchBytes.WithLabelValues(kind).Add(float64(s.Bytes))
	if s.Err != nil {
		return
	}
	m.RowsAccepted.WithLabelValues(kind).Add(float64(s.Accepted))
	m.RowsDropped.WithLabelValues(kind).Add(float64(s.Dropped))
}

// ObserveCache records a response cache lookup.
func (m *Metrics) ObserveCache(kind catalog.Kind, result string) {
	m.CacheLookups.WithLabelValues(string(kind), result).Inc()
}

func fetchResult(err error) string {
	var re *catalog.RetrievalError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, catalog.ErrSourceNotConfigured):
		return "not_configured"
	case errors.As(err, &re):
		return "retrieval_error"
	default:
		return "error"
	}
}

// Middleware records request counts and latency. Routes are labelled by
// their chi pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
