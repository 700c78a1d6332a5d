// Package handler: health.go implements the unauthenticated service endpoints.
// Each handler implements gen.StrictServerInterface, which is generated from openapi.yaml.
package handler

import (
	"bytes"
	"context"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(_ context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(_ context.Context, _ gen.GetOpenAPIRequestObject) (gen.GetOpenAPIResponseObject, error) {
	return gen.GetOpenAPI200ApplicationyamlResponse{
		Body:          bytes.NewReader(api.OpenAPI),
		ContentLength: int64(len(api.OpenAPI)),
	}, nil
}
