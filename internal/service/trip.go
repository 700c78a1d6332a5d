// Package service contains the business logic for the Trip Journal API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/conflict"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/metrics"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/slug"
)

// TripEventPublisher fans out committed trip changes to live subscribers.
type TripEventPublisher interface {
	PublishTripEvent(ctx context.Context, ev domain.TripEvent) error
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips  repo.TripRepo
	slugs  repo.SlugRepo
	events TripEventPublisher
	loc    *time.Location
	log    *zap.Logger
	now    func() time.Time
}

// NewTripService constructs a TripService. events may be nil when nothing
// listens for changes. loc is the zone used for the day-span rule.
func NewTripService(trips repo.TripRepo, slugs repo.SlugRepo, events TripEventPublisher, loc *time.Location, log *zap.Logger) *TripService {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &TripService{trips: trips, slugs: slugs, events: events, loc: loc, log: log, now: time.Now}
}

// CheckAvailability normalizes raw and reports whether no trip holds that slug.
// The answer is advisory: nothing is reserved.
// Returns domain.ErrMissingSlug if raw normalizes to an empty slug.
func (s *TripService) CheckAvailability(ctx context.Context, raw string) (string, bool, error) {
	normalized := slug.Normalize(raw)
	if normalized == "" {
		metrics.SlugChecksTotal.WithLabelValues("invalid").Inc()
		return "", false, fmt.Errorf("service.TripService.CheckAvailability: %w", domain.ErrMissingSlug)
	}
	if slug.Reserved(normalized) {
		metrics.SlugChecksTotal.WithLabelValues("taken").Inc()
		return normalized, false, nil
	}

	taken, err := s.slugs.Exists(ctx, normalized)
	if err != nil {
		return normalized, false, fmt.Errorf("service.TripService.CheckAvailability: %w", err)
	}
	if taken {
		metrics.SlugChecksTotal.WithLabelValues("taken").Inc()
	} else {
		metrics.SlugChecksTotal.WithLabelValues("available").Inc()
	}
	return normalized, !taken, nil
}

// Create claims the normalized slug and persists trip for ownerID in one
// transaction. The owner's existing trips are re-checked for date collisions
// inside that transaction.
//
// Errors: domain.ErrUnauthenticated without an owner, domain.ErrMissingSlug,
// domain.ErrValidation (also for a reserved slug), domain.ErrAlreadyExists, or *domain.ConflictError.
func (s *TripService) Create(ctx context.Context, ownerID, rawSlug string, trip domain.Trip) (domain.Trip, error) {
	if ownerID == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", domain.ErrUnauthenticated)
	}

	trip.Slug = slug.Normalize(rawSlug)
	if trip.Slug == "" {
		metrics.TripCreationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", domain.ErrMissingSlug)
	}
	if slug.Reserved(trip.Slug) {
		metrics.TripCreationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: slug %q is reserved", domain.ErrValidation, trip.Slug)
	}

	trip.ID = uuid.Nil
	trip.OwnerID = ownerID
	trip.Title = strings.TrimSpace(trip.Title)
	if trip.Visibility == "" {
		trip.Visibility = domain.VisibilityPrivate
	}
	trip.AllowedUsers = withOwner(trip.AllowedUsers, ownerID)

	if err := validateTrip(trip); err != nil {
		metrics.TripCreationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.trips.CreateWithSlug(ctx, trip, s.conflictGuard(trip, uuid.Nil))
	if err != nil {
		metrics.TripCreationsTotal.WithLabelValues(creationOutcome(err)).Inc()
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	metrics.TripCreationsTotal.WithLabelValues(metrics.OutcomeCreated).Inc()

	s.log.Info("trip created",
		zap.String("trip_id", created.ID.String()),
		zap.String("slug", created.Slug),
		zap.String("owner_id", created.OwnerID),
	)
	s.publish(ctx, domain.EventTripCreated, created)
	return created, nil
}

// ListByOwner returns the owner's trips, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("service.TripService.ListByOwner: %w", domain.ErrUnauthenticated)
	}
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByOwner: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// GetBySlug returns the trip with that slug if viewerID may see it.
// A trip the viewer may not see is reported as domain.ErrNotFound so its
// existence is not leaked.
func (s *TripService) GetBySlug(ctx context.Context, viewerID, tripSlug string) (domain.Trip, error) {
	trip, err := s.trips.GetBySlug(ctx, tripSlug)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetBySlug: %w", err)
	}
	if !trip.VisibleTo(viewerID) {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetBySlug: %w", domain.ErrNotFound)
	}
	return trip, nil
}

// Update applies patch to the owner's trip. The patch is applied to the row
// as locked inside the write transaction, so concurrent patches of one trip
// never overwrite each other. Moving the dates re-runs the collision check
// against the owner's other trips.
func (s *TripService) Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if ownerID == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrUnauthenticated)
	}

	updated, err := s.trips.Update(ctx, id, func(current domain.Trip) (domain.Trip, repo.Guard, error) {
		if current.OwnerID != ownerID {
			return domain.Trip{}, nil, domain.ErrForbidden
		}

		next := patch.Apply(current)
		next.Title = strings.TrimSpace(next.Title)
		next.AllowedUsers = withOwner(next.AllowedUsers, ownerID)
		if err := validateTrip(next); err != nil {
			return domain.Trip{}, nil, err
		}

		if patch.ChangesDates() {
			return next, s.conflictGuard(next, id), nil
		}
		return next, nil, nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	s.publish(ctx, domain.EventTripUpdated, updated)
	return updated, nil
}

// Delete removes the owner's trip and frees its slug.
func (s *TripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	trip, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.log.Info("trip deleted", zap.String("trip_id", id.String()), zap.String("slug", trip.Slug))
	s.publish(ctx, domain.EventTripDeleted, trip)
	return nil
}

// Search returns public trips whose title starts with q as typed or with
// its first letter upper-cased. A blank query matches nothing.
func (s *TripService) Search(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Trip, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Trip{}, nil
	}

	prefixes := []string{q}
	if c := capitalize(q); c != q {
		prefixes = append(prefixes, c)
	}

	trips, err := s.trips.SearchPublic(ctx, prefixes, p)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Search: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// owned loads a trip and checks that ownerID owns it.
func (s *TripService) owned(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	if ownerID == "" {
		return domain.Trip{}, domain.ErrUnauthenticated
	}
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.OwnerID != ownerID {
		return domain.Trip{}, domain.ErrForbidden
	}
	return trip, nil
}

// conflictGuard builds the in-transaction collision check for candidate.
// self is excluded from the comparison when re-validating an edit.
func (s *TripService) conflictGuard(candidate domain.Trip, self uuid.UUID) repo.Guard {
	return func(existing []domain.Trip) error {
		if self != uuid.Nil {
			existing = conflict.Exclude(existing, self)
		}
		hits := conflict.Find(candidate.OwnerID, candidate.StartDate, candidate.EndDate, existing, s.loc)
		if len(hits) > 0 {
			return &domain.ConflictError{Conflicts: hits}
		}
		return nil
	}
}

func (s *TripService) publish(ctx context.Context, eventType string, trip domain.Trip) {
	if s.events == nil {
		return
	}
	ev := domain.TripEvent{Type: eventType, OwnerID: trip.OwnerID, TripID: trip.ID, At: s.now().UTC()}
	if err := s.events.PublishTripEvent(ctx, ev); err != nil {
		// The write already committed; subscribers catch up on their next snapshot.
		s.log.Warn("publish trip event failed",
			zap.String("type", eventType),
			zap.String("trip_id", trip.ID.String()),
			zap.Error(err),
		)
	}
}

// validateTrip enforces business rules common to both Create and Update.
func validateTrip(t domain.Trip) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if t.StartDate.After(t.EndDate) {
		return fmt.Errorf("%w: start date must not be after end date", domain.ErrValidation)
	}
	if !t.Visibility.Valid() {
		return fmt.Errorf("%w: unknown visibility %q", domain.ErrValidation, t.Visibility)
	}
	return nil
}

// withOwner returns users with ownerID present, defaulting to just the owner.
func withOwner(users []string, ownerID string) []string {
	if slices.Contains(users, ownerID) {
		return users
	}
	return append(slices.Clone(users), ownerID)
}

func creationOutcome(err error) string {
	var ce *domain.ConflictError
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		return metrics.OutcomeAlreadyExists
	case errors.As(err, &ce), errors.Is(err, domain.ErrDateConflict):
		return metrics.OutcomeDateConflict
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
