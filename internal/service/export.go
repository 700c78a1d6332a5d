package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tripjournal/internal/daterange"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
)

// ExportService assembles a flat export of an owner's trips.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per trip owned by ownerID, most recent first.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, ownerID string) ([]domain.ExportRow, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("service.ExportService.Export: %w", domain.ErrUnauthenticated)
	}
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, domain.ExportRow{
			TripID:        t.ID.String(),
			Slug:          t.Slug,
			Title:         t.Title,
			StartLocation: t.StartLocation,
			Destination:   t.Destination,
			StartDate:     daterange.Format(t.StartDate),
			EndDate:       daterange.Format(t.EndDate),
			Visibility:    string(t.Visibility),
			AllowedUsers:  t.AllowedUsers,
		})
	}
	return rows, nil
}
