package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/metrics"
	"github.com/pkordes/tripjournal/internal/repo"
)

// AutoStopService turns off live sharing on trips that have ended.
type AutoStopService struct {
	trips  repo.TripRepo
	events TripEventPublisher
	loc    *time.Location
	log    *zap.Logger
}

// NewAutoStopService constructs an AutoStopService. loc decides which
// calendar day "now" falls on.
func NewAutoStopService(trips repo.TripRepo, events TripEventPublisher, loc *time.Location, log *zap.Logger) *AutoStopService {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &AutoStopService{trips: trips, events: events, loc: loc, log: log}
}

// Run stops every live trip whose end date is before the calendar day of now
// and returns how many it stopped. Each stop is audit-logged and published
// to the owner's feed.
func (s *AutoStopService) Run(ctx context.Context, now time.Time) (int, error) {
	y, m, d := now.In(s.loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	stopped, err := s.trips.StopExpiredLive(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("service.AutoStopService.Run: %w", err)
	}

	for _, t := range stopped {
		s.log.Info("live trip auto-stopped",
			zap.String("trip_id", t.ID.String()),
			zap.String("owner_id", t.OwnerID),
			zap.String("slug", t.Slug),
			zap.Time("end_date", t.EndDate),
		)
		metrics.AutoStoppedTotal.Inc()

		if s.events == nil {
			continue
		}
		ev := domain.TripEvent{Type: domain.EventTripStopped, OwnerID: t.OwnerID, TripID: t.ID, At: now.UTC()}
		if err := s.events.PublishTripEvent(ctx, ev); err != nil {
			s.log.Warn("publish trip event failed", zap.String("trip_id", t.ID.String()), zap.Error(err))
		}
	}
	return len(stopped), nil
}
