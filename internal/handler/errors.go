package handler

import (
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/conflict"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
	"github.com/pkordes/tripjournal/internal/middleware"
)

// statusFor maps a wire code to its HTTP status. Handlers answer these codes
// with typed responses; the map covers errors that reach responseError.
var statusFor = map[domain.Code]int{
	domain.CodeMissingSlug:      http.StatusBadRequest,
	domain.CodeInvalidArgument:  http.StatusBadRequest,
	domain.CodeAlreadyExists:    http.StatusConflict,
	domain.CodeDateConflict:     http.StatusConflict,
	domain.CodeNotFound:         http.StatusNotFound,
	domain.CodeUnauthenticated:  http.StatusUnauthorized,
	domain.CodePermissionDenied: http.StatusForbidden,
}

// errorBody translates a classified service error into the API error body.
func errorBody(err error) gen.ErrorResponse {
	code := domain.CodeOf(err)
	body := gen.ErrorResponse{Error: string(code), Message: errorMessage(code, err)}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		body.Conflicts = api.ConflictsFromDomain(ce.Conflicts)
	}
	return body
}

// invalidBody reports a request rejected before reaching the service layer.
func invalidBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: string(domain.CodeInvalidArgument), Message: message}
}

// responseError handles errors a strict handler returned instead of a typed
// response. Unclassified errors are logged and reported as internal without
// detail.
func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.CodeOf(err)
	if status, ok := statusFor[code]; ok {
		middleware.WriteError(w, status, errorBody(err))
		return
	}
	s.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	middleware.WriteError(w, http.StatusInternalServerError, gen.ErrorResponse{
		Error:   string(domain.CodeInternal),
		Message: "internal server error",
	})
}

// requestError answers a body the strict handler could not decode.
// A body cut off by the size limit is a 413.
func requestError(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, invalidBody("request body too large"))
		return
	}
	middleware.WriteError(w, http.StatusBadRequest, invalidBody("malformed request body"))
}

// paramError answers a path or query parameter that failed to bind.
func paramError(w http.ResponseWriter, _ *http.Request, err error) {
	var pe *gen.InvalidParamFormatError
	if errors.As(err, &pe) {
		if pe.ParamName == "key" {
			middleware.WriteError(w, http.StatusBadRequest, invalidBody("invalid trip id"))
			return
		}
		middleware.WriteError(w, http.StatusBadRequest, invalidBody("invalid "+pe.ParamName))
		return
	}
	middleware.WriteError(w, http.StatusBadRequest, invalidBody(err.Error()))
}

func errorMessage(code domain.Code, err error) string {
	switch code {
	case domain.CodeAlreadyExists:
		return "Slug already taken"
	case domain.CodeNotFound:
		return "trip not found"
	case domain.CodePermissionDenied:
		return "only the owner may change this trip"
	case domain.CodeUnauthenticated:
		return "sign in required"
	case domain.CodeDateConflict:
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			return "Trip dates overlap " + strings.Join(conflict.Titles(ce.Conflicts), ", ")
		}
	}
	return unwrapMessage(err)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
