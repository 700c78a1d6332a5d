package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/middleware"
)

func TestRateLimiter_BurstThenReject(t *testing.T) {
	// A near-zero refill rate makes the burst the whole allowance.
	h := middleware.NewRateLimiter(0.0001, 2).Limit(trivialHandler)

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/check-slug", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1:1111").Code)
	require.Equal(t, http.StatusOK, send("10.0.0.1:2222").Code)

	rec := send("10.0.0.1:3333")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate-limited", decodeError(t, rec).Error)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Another client has its own bucket.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1111").Code)
}
