// Package handler implements the HTTP handlers for the Trip Journal API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into domain-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	CheckAvailability(ctx context.Context, raw string) (string, bool, error)
	Create(ctx context.Context, ownerID, rawSlug string, trip domain.Trip) (domain.Trip, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)
	GetBySlug(ctx context.Context, viewerID, slug string) (domain.Trip, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Search(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Trip, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, ownerID string) ([]domain.ExportRow, error)
}

// MediaServicer issues presigned upload URLs for trip media.
type MediaServicer interface {
	PresignUpload(ctx context.Context, ownerID string, tripID uuid.UUID, filename, contentType string) (domain.MediaUpload, error)
}

// Server implements gen.StrictServerInterface for all generated endpoints.
// NewRouter wires it behind gen.NewStrictHandlerWithOptions.
type Server struct {
	trips  TripServicer
	export ExportServicer
	media  MediaServicer
	log    *zap.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil log discards handler logging.
func NewServer(trips TripServicer, export ExportServicer, media MediaServicer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{trips: trips, export: export, media: media, log: log}
}

var _ gen.StrictServerInterface = (*Server)(nil)
