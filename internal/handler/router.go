package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/handler/gen"
	"github.com/pkordes/tripjournal/internal/middleware"
)

// DefaultMaxBodyBytes caps request bodies when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1 << 20

// Options configures NewRouter.
type Options struct {
	Verifier    auth.Verifier
	CORSOrigins []string
	Logger      *zap.Logger

	// CheckSlugRPS is the per-IP rate on POST /check-slug. Zero disables the limit.
	CheckSlugRPS float64

	// Live serves GET /trips/live. The route is absent when nil.
	Live http.Handler

	MaxBodyBytes int64
}

// NewRouter mounts the generated API handler and the few routes outside the
// OpenAPI document on a chi router.
//
// Middleware is applied in order: RequestID → RealIP → request logger →
// Recoverer → CORS → body limit. Authentication runs per operation, driven by
// the security requirements in openapi.yaml.
func NewRouter(s *Server, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxBody := opts.MaxBodyBytes
	if maxBody == 0 {
		maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBody))

	strict := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestError,
		ResponseErrorHandlerFunc: s.responseError,
	})
	apiHandler := gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		Middlewares:      []gen.MiddlewareFunc{authenticate(opts.Verifier)},
		ErrorHandlerFunc: paramError,
	})

	r.Handle("/metrics", promhttp.Handler())
	if opts.Live != nil {
		r.Get("/trips/live", opts.Live.ServeHTTP)
	}
	if opts.CheckSlugRPS > 0 {
		limiter := middleware.NewRateLimiter(opts.CheckSlugRPS, burstFor(opts.CheckSlugRPS))
		r.With(limiter.Limit).Post("/check-slug", apiHandler.ServeHTTP)
	}
	r.Mount("/", apiHandler)

	return r
}

// authenticate requires a bearer token on operations that declare bearerAuth
// and accepts an optional one on the rest.
func authenticate(v auth.Verifier) gen.MiddlewareFunc {
	requireAuth := middleware.RequireAuth(v)
	optionalAuth := middleware.OptionalAuth(v)
	return func(next http.Handler) http.Handler {
		secured, open := requireAuth(next), optionalAuth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Value(gen.BearerAuthScopes).([]string); ok {
				secured.ServeHTTP(w, r)
				return
			}
			open.ServeHTTP(w, r)
		})
	}
}

// burstFor lets a typing user's first few checks through at once.
func burstFor(rps float64) int {
	return max(1, int(rps*2))
}
