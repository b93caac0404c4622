package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/gamestore/internal/catalog"
)

func TestObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch(catalog.FetchStats{Kind: catalog.KindPacks, Rows: 5, Accepted: 4, Dropped: 1, Bytes: 120, Duration: 30 * time.Millisecond})
	m.ObserveFetch(catalog.FetchStats{Kind: catalog.KindPacks, Err: catalog.ErrSourceNotConfigured})
	m.ObserveFetch(catalog.FetchStats{Kind: catalog.KindUnits, Err: &catalog.RetrievalError{Kind: catalog.KindUnits, Err: errors.New("boom")}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("packs", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("packs", "not_configured")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("units", "retrieval_error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RowsAccepted.WithLabelValues("packs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RowsDropped.WithLabelValues("packs")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.FetchBytes.WithLabelValues("packs")))
}

func TestObserveCache(t *testing.T) {
	m := New()
	m.ObserveCache(catalog.KindUnits, "hit")
	m.ObserveCache(catalog.KindUnits, "hit")
	m.ObserveCache(catalog.KindUnits, "miss")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("units", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("units", "miss")))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/packs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/packs/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/packs/{id}", "404")))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ObserveFetch(catalog.FetchStats{Kind: catalog.KindUnits, Accepted: 2})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `gamestore_catalog_rows_accepted_total{kind="units"} 2`))
}
