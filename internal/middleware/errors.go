package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// WriteError writes the API's standard error body for responses that do not
// go through a generated response type.
func WriteError(w http.ResponseWriter, status int, body gen.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code domain.Code, message string) {
	WriteError(w, status, gen.ErrorResponse{Error: string(code), Message: message})
}
