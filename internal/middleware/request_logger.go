package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/metrics"
)

// NewRequestLogger returns a middleware that logs each request as a structured
// JSON line via log. It captures method, path, HTTP status, duration, and the
// request ID set by chi's RequestID middleware, and records the request in
// metrics.HTTPRequestDuration under its route pattern.
//
// Wire it after chimiddleware.RequestID so the request ID is available.
func NewRequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// WrapResponseWriter intercepts WriteHeader so we can read the
			// status code after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, routePattern(r), strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int64("duration_ms", elapsed.Milliseconds()),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// routePattern keeps metric cardinality bounded: unmatched paths share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
