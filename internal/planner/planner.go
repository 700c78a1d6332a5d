// Package planner is the client-side trip creation flow: it validates a
// form, derives and checks the slug, rejects date collisions against the
// user's own trips and only then asks the server to create the trip.
package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/conflict"
	"github.com/pkordes/tripjournal/internal/daterange"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
	"github.com/pkordes/tripjournal/internal/slug"
	"github.com/pkordes/tripjournal/internal/tripclient"
)

// Backend is the part of the API the planner uses. *tripclient.Client implements it.
type Backend interface {
	CheckSlug(ctx context.Context, slug string) (gen.CheckSlugResponse, error)
	CreateTrip(ctx context.Context, slug string, data gen.TripData) (gen.CreateTripResponse, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	WatchTrips(ctx context.Context, fn func(event string, trips []domain.Trip)) error
}

var _ Backend = (*tripclient.Client)(nil)

// Input is the trip form as the user filled it in. Dates are "2006-01-02"
// (RFC 3339 is accepted too).
type Input struct {
	Slug          string
	Title         string
	StartLocation string
	Destination   string
	Description   string
	StartDate     string
	EndDate       string
	Visibility    domain.Visibility
	AllowedUsers  []string
	IsLive        bool
}

// Created identifies the trip the server stored.
type Created struct {
	ID   uuid.UUID
	Slug string
}

// Planner runs the creation flow for one signed-in user.
type Planner struct {
	backend Backend
	ownerID string
	loc     *time.Location

	snapshot atomic.Pointer[[]domain.Trip]
}

// New returns a Planner acting for ownerID. loc is the zone used for the
// day-span rule; nil means time.Local.
func New(backend Backend, ownerID string, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.Local
	}
	return &Planner{backend: backend, ownerID: ownerID, loc: loc}
}

// Submit validates in and creates the trip. in is never modified, so a form
// can stay populated after a failure.
//
// Errors, in the order they are checked: *FieldError wrapping ErrMissingField
// or daterange.ErrInvalidDate, ErrStartAfterEnd, ErrNoSlug, ErrSlugTaken,
// ErrCannotValidate, *ConflictError, then ErrCreateFailed wrapping the cause.
// The server can still answer ErrSlugTaken or *ConflictError on create.
func (p *Planner) Submit(ctx context.Context, in Input) (Created, error) {
	start, end, err := validate(in)
	if err != nil {
		return Created{}, err
	}

	s := slug.Derive(in.Slug, in.Title, in.StartLocation, in.Destination, daterange.Format(start))
	if s == "" {
		return Created{}, ErrNoSlug
	}

	// Advisory only: when the check itself fails, create decides.
	if res, err := p.backend.CheckSlug(ctx, s); err == nil && !res.Available {
		return Created{}, ErrSlugTaken
	}

	own, err := p.backend.ListTrips(ctx)
	if err != nil {
		return Created{}, fmt.Errorf("%w: %w", ErrCannotValidate, err)
	}
	if hits := conflict.Find(p.ownerID, start, end, own, p.loc); len(hits) > 0 {
		return Created{}, &ConflictError{Titles: conflict.Titles(hits)}
	}

	resp, err := p.backend.CreateTrip(ctx, s, tripData(in, start, end))
	if err != nil {
		return Created{}, createError(err)
	}
	return Created{ID: resp.Id, Slug: resp.Slug}, nil
}

// PreviewConflicts checks a date range against the last snapshot received
// from the live feed. It is optimistic: Submit re-checks against a fresh list.
func (p *Planner) PreviewConflicts(start, end time.Time) []domain.Trip {
	snap := p.snapshot.Load()
	if snap == nil {
		return nil
	}
	return conflict.Find(p.ownerID, start, end, *snap, p.loc)
}

// ApplySnapshot replaces the trips PreviewConflicts checks against.
func (p *Planner) ApplySnapshot(trips []domain.Trip) {
	cp := slices.Clone(trips)
	p.snapshot.Store(&cp)
}

// Watch keeps the snapshot current from the live feed until ctx is done.
func (p *Planner) Watch(ctx context.Context) error {
	return p.backend.WatchTrips(ctx, func(_ string, trips []domain.Trip) {
		p.ApplySnapshot(trips)
	})
}

func validate(in Input) (start, end time.Time, err error) {
	required := []struct{ field, value string }{
		{"title", in.Title},
		{"startLocation", in.StartLocation},
		{"destination", in.Destination},
		{"startDate", in.StartDate},
		{"endDate", in.EndDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return time.Time{}, time.Time{}, &FieldError{Field: r.field, Err: ErrMissingField}
		}
	}

	if start, err = daterange.ParseDate(in.StartDate); err != nil {
		return time.Time{}, time.Time{}, &FieldError{Field: "startDate", Err: err}
	}
	if end, err = daterange.ParseDate(in.EndDate); err != nil {
		return time.Time{}, time.Time{}, &FieldError{Field: "endDate", Err: err}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrStartAfterEnd
	}
	return start, end, nil
}

func tripData(in Input, start, end time.Time) gen.TripData {
	return api.TripDataFromDomain(domain.Trip{
		Title:         strings.TrimSpace(in.Title),
		StartLocation: strings.TrimSpace(in.StartLocation),
		Destination:   strings.TrimSpace(in.Destination),
		Description:   in.Description,
		StartDate:     start,
		EndDate:       end,
		Visibility:    in.Visibility,
		AllowedUsers:  slices.Clone(in.AllowedUsers),
		IsLive:        in.IsLive,
	})
}

// createError maps a failed create to the planner's errors.
func createError(err error) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return ErrSlugTaken
	}
	var apiErr *tripclient.APIError
	if errors.As(err, &apiErr) && apiErr.Code == domain.CodeDateConflict {
		titles := make([]string, len(apiErr.Conflicts))
		for i, c := range apiErr.Conflicts {
			titles[i] = c.Title
		}
		return &ConflictError{Titles: titles}
	}
	return fmt.Errorf("%w: %w", ErrCreateFailed, err)
}
