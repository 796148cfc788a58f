package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/users/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/def", nil))
	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/users/{id}", "404"))

	assert.Equal(t, 2.0, after-before)
}

func TestRecordOrder(t *testing.T) {
	placed := testutil.ToFloat64(metrics.OrdersPlaced)
	revenue := testutil.ToFloat64(metrics.OrderRevenue)

	metrics.RecordOrder(12.5)

	assert.Equal(t, placed+1, testutil.ToFloat64(metrics.OrdersPlaced))
	assert.InDelta(t, revenue+12.5, testutil.ToFloat64(metrics.OrderRevenue), 1e-9)
}

func TestHandlerExposesRegistry(t *testing.T) {
	metrics.ObserveDBDuration("sql", "query", 0)

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "backoffice_db_query_duration_seconds"))
}
