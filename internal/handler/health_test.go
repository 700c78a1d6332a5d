package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, nil, nil), http.MethodGet, "/healthz", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body gen.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI_servesDocument(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, nil, nil), http.MethodGet, "/openapi.yaml", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(api.OpenAPI), rec.Body.String())
}

func TestMetrics_exposed(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil)
	do(t, h, http.MethodGet, "/healthz", nil, "")

	rec := do(t, h, http.MethodGet, "/metrics", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tripjournal_http_request_duration_seconds")
}
