package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pkordes/tripjournal/internal/metrics"
	"github.com/pkordes/tripjournal/internal/middleware"
)

// TestRequestLogger_logsRequestFields verifies that the request logger writes
// a structured log entry containing method, path, status, duration, and the
// request ID placed in context by chi's RequestID middleware.
func TestRequestLogger_logsRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	h := middleware.NewRequestLogger(zap.New(core))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-request-id")
	req = req.WithContext(ctx)

	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/healthz", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.Equal(t, "test-request-id", fields["request_id"])
	require.Contains(t, fields, "duration_ms")
}

// TestRequestLogger_recordsRoutePattern verifies that the duration histogram
// is labelled with the chi route pattern, not the concrete path.
func TestRequestLogger_recordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.NewRequestLogger(zap.NewNop()))
	r.Get("/trips/{key}", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trips/some-slug-for-metrics", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trips/another-slug", nil))

	// Both requests land in the same series.
	require.Equal(t, before+1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
}
