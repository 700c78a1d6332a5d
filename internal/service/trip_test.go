package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	createWithSlug  func(ctx context.Context, trip domain.Trip, guard repo.Guard) (domain.Trip, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getBySlug       func(ctx context.Context, slug string) (domain.Trip, error)
	listByOwner     func(ctx context.Context, ownerID string) ([]domain.Trip, error)
	update          func(ctx context.Context, id uuid.UUID, mutate repo.Mutation) (domain.Trip, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	searchPublic    func(ctx context.Context, prefixes []string, p domain.PaginationParams) ([]domain.Trip, error)
	stopExpiredLive func(ctx context.Context, before time.Time) ([]domain.Trip, error)
}

func (m *mockTripRepo) CreateWithSlug(ctx context.Context, trip domain.Trip, guard repo.Guard) (domain.Trip, error) {
	return m.createWithSlug(ctx, trip, guard)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockTripRepo) Update(ctx context.Context, id uuid.UUID, mutate repo.Mutation) (domain.Trip, error) {
	return m.update(ctx, id, mutate)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) SearchPublic(ctx context.Context, prefixes []string, p domain.PaginationParams) ([]domain.Trip, error) {
	return m.searchPublic(ctx, prefixes, p)
}
func (m *mockTripRepo) StopExpiredLive(ctx context.Context, before time.Time) ([]domain.Trip, error) {
	return m.stopExpiredLive(ctx, before)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockSlugRepo struct {
	get    func(ctx context.Context, slug string) (domain.SlugEntry, error)
	exists func(ctx context.Context, slug string) (bool, error)
}

func (m *mockSlugRepo) Get(ctx context.Context, slug string) (domain.SlugEntry, error) {
	return m.get(ctx, slug)
}
func (m *mockSlugRepo) Exists(ctx context.Context, slug string) (bool, error) {
	return m.exists(ctx, slug)
}

var _ repo.SlugRepo = (*mockSlugRepo)(nil)

// recordingPublisher collects published events.
type recordingPublisher struct {
	events []domain.TripEvent
	err    error
}

func (p *recordingPublisher) PublishTripEvent(_ context.Context, ev domain.TripEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

var _ service.TripEventPublisher = (*recordingPublisher)(nil)

// ---- helpers ---------------------------------------------------------------

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validTrip() domain.Trip {
	return domain.Trip{
		Title:         "Leh Ride",
		StartLocation: "Delhi",
		Destination:   "Leh",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 15),
	}
}

func newTripService(trips repo.TripRepo, slugs repo.SlugRepo, pub service.TripEventPublisher) *service.TripService {
	return service.NewTripService(trips, slugs, pub, time.UTC, nil)
}

// persistingCreate simulates the repo: runs guard against existing, then
// returns the trip with an id.
func persistingCreate(existing []domain.Trip) func(context.Context, domain.Trip, repo.Guard) (domain.Trip, error) {
	return func(_ context.Context, trip domain.Trip, guard repo.Guard) (domain.Trip, error) {
		if guard != nil {
			if err := guard(existing); err != nil {
				return domain.Trip{}, err
			}
		}
		trip.ID = uuid.New()
		return trip, nil
	}
}

// ---- CheckAvailability -----------------------------------------------------

func TestTripService_CheckAvailability_NormalizesBeforeLookup(t *testing.T) {
	var looked string
	svc := newTripService(nil, &mockSlugRepo{
		exists: func(_ context.Context, slug string) (bool, error) {
			looked = slug
			return false, nil
		},
	}, nil)

	normalized, available, err := svc.CheckAvailability(context.Background(), "  Leh Ride!! ")

	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, "leh-ride", normalized)
	assert.Equal(t, "leh-ride", looked)
}

func TestTripService_CheckAvailability_Taken(t *testing.T) {
	svc := newTripService(nil, &mockSlugRepo{
		exists: func(context.Context, string) (bool, error) { return true, nil },
	}, nil)

	_, available, err := svc.CheckAvailability(context.Background(), "leh-ride")

	require.NoError(t, err)
	assert.False(t, available)
}

func TestTripService_CheckAvailability_EmptySlug(t *testing.T) {
	svc := newTripService(nil, &mockSlugRepo{}, nil)

	_, _, err := svc.CheckAvailability(context.Background(), "🏔️")

	assert.ErrorIs(t, err, domain.ErrMissingSlug)
}

func TestTripService_CheckAvailability_ReservedIsUnavailable(t *testing.T) {
	svc := newTripService(nil, &mockSlugRepo{}, nil)

	got, available, err := svc.CheckAvailability(context.Background(), "Export")

	require.NoError(t, err)
	assert.Equal(t, "export", got)
	assert.False(t, available)
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_OK(t *testing.T) {
	pub := &recordingPublisher{}
	var stored domain.Trip
	svc := newTripService(&mockTripRepo{
		createWithSlug: func(ctx context.Context, trip domain.Trip, guard repo.Guard) (domain.Trip, error) {
			stored = trip
			return persistingCreate(nil)(ctx, trip, guard)
		},
	}, nil, pub)

	got, err := svc.Create(context.Background(), "u1", "Leh Ride", validTrip())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "leh-ride", stored.Slug)
	assert.Equal(t, "u1", stored.OwnerID)
	assert.Equal(t, domain.VisibilityPrivate, stored.Visibility, "visibility defaults to private")
	assert.Equal(t, []string{"u1"}, stored.AllowedUsers, "allowed users default to the owner")

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventTripCreated, pub.events[0].Type)
	assert.Equal(t, "u1", pub.events[0].OwnerID)
}

func TestTripService_Create_OwnerAddedToAllowedUsers(t *testing.T) {
	var stored domain.Trip
	svc := newTripService(&mockTripRepo{
		createWithSlug: func(_ context.Context, trip domain.Trip, _ repo.Guard) (domain.Trip, error) {
			stored = trip
			return trip, nil
		},
	}, nil, nil)

	in := validTrip()
	in.Visibility = domain.VisibilityRestricted
	in.AllowedUsers = []string{"friend"}
	_, err := svc.Create(context.Background(), "u1", "leh", in)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"friend", "u1"}, stored.AllowedUsers)
	assert.Equal(t, []string{"friend"}, in.AllowedUsers, "caller's slice must not be mutated")
}

func TestTripService_Create_MissingSlug(t *testing.T) {
	svc := newTripService(&mockTripRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), "u1", "   ", validTrip())

	assert.ErrorIs(t, err, domain.ErrMissingSlug)
}

func TestTripService_Create_ReservedSlug(t *testing.T) {
	svc := newTripService(&mockTripRepo{}, nil, nil)

	for _, raw := range []string{"live", "Export", "  LIVE  "} {
		_, err := svc.Create(context.Background(), "u1", raw, validTrip())

		assert.ErrorIs(t, err, domain.ErrValidation, raw)
		assert.NotErrorIs(t, err, domain.ErrMissingSlug, raw)
		assert.Contains(t, err.Error(), "reserved", raw)
	}
}

func TestTripService_Create_Unauthenticated(t *testing.T) {
	svc := newTripService(&mockTripRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), "", "leh", validTrip())

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTripService_Create_Validation(t *testing.T) {
	cases := map[string]func(*domain.Trip){
		"blank title":     func(tr *domain.Trip) { tr.Title = "   " },
		"missing start":   func(tr *domain.Trip) { tr.StartDate = time.Time{} },
		"start after end": func(tr *domain.Trip) { tr.StartDate = day(2025, 7, 1) },
		"bad visibility":  func(tr *domain.Trip) { tr.Visibility = "friends" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTripService(&mockTripRepo{}, nil, nil)
			in := validTrip()
			mutate(&in)

			_, err := svc.Create(context.Background(), "u1", "leh", in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.NotErrorIs(t, err, domain.ErrMissingSlug)
		})
	}
}

func TestTripService_Create_DateConflictNamesTrips(t *testing.T) {
	existing := []domain.Trip{
		{ID: uuid.New(), OwnerID: "u1", Title: "Goa", StartDate: day(2025, 5, 25), EndDate: day(2025, 6, 1)},
		{ID: uuid.New(), OwnerID: "u1", Title: "Spiti", StartDate: day(2025, 8, 1), EndDate: day(2025, 8, 5)},
	}
	pub := &recordingPublisher{}
	svc := newTripService(&mockTripRepo{createWithSlug: persistingCreate(existing)}, nil, pub)

	_, err := svc.Create(context.Background(), "u1", "leh", validTrip())

	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	require.Len(t, ce.Conflicts, 1)
	assert.Equal(t, "Goa", ce.Conflicts[0].Title)
	assert.Empty(t, pub.events, "nothing is published for a rejected trip")
}

func TestTripService_Create_SlugTaken(t *testing.T) {
	svc := newTripService(&mockTripRepo{
		createWithSlug: func(context.Context, domain.Trip, repo.Guard) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrAlreadyExists
		},
	}, nil, nil)

	_, err := svc.Create(context.Background(), "u1", "leh", validTrip())

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestTripService_Create_PublishFailureDoesNotFailCreate(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	svc := newTripService(&mockTripRepo{createWithSlug: persistingCreate(nil)}, nil, pub)

	_, err := svc.Create(context.Background(), "u1", "leh", validTrip())

	assert.NoError(t, err)
}

// ---- GetBySlug -------------------------------------------------------------

func TestTripService_GetBySlug_HidesInvisibleTrips(t *testing.T) {
	svc := newTripService(&mockTripRepo{
		getBySlug: func(_ context.Context, slug string) (domain.Trip, error) {
			return domain.Trip{Slug: slug, OwnerID: "u1", Visibility: domain.VisibilityPrivate}, nil
		},
	}, nil, nil)

	_, err := svc.GetBySlug(context.Background(), "stranger", "leh")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetBySlug(context.Background(), "u1", "leh")
	require.NoError(t, err)
	assert.Equal(t, "leh", got.Slug)
}

// ---- ListByOwner -----------------------------------------------------------

func TestTripService_ListByOwner_NonNil(t *testing.T) {
	svc := newTripService(&mockTripRepo{
		listByOwner: func(context.Context, string) ([]domain.Trip, error) { return nil, nil },
	}, nil, nil)

	got, err := svc.ListByOwner(context.Background(), "u1")

	require.NoError(t, err)
	assert.NotNil(t, got)
}

// ---- Update ----------------------------------------------------------------

func storedTrip(owner string) domain.Trip {
	tr := validTrip()
	tr.ID = uuid.New()
	tr.OwnerID = owner
	tr.Slug = "leh-ride"
	tr.Visibility = domain.VisibilityPrivate
	tr.AllowedUsers = []string{owner}
	return tr
}

// lockedRow simulates the repo's row lock: every mutation runs against the
// latest stored state, one at a time, and its guard sees existing.
type lockedRow struct {
	mu       sync.Mutex
	trip     domain.Trip
	existing []domain.Trip
	guarded  int
}

func (l *lockedRow) update(_ context.Context, _ uuid.UUID, mutate repo.Mutation) (domain.Trip, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, guard, err := mutate(l.trip)
	if err != nil {
		return domain.Trip{}, err
	}
	if guard != nil {
		l.guarded++
		if err := guard(append([]domain.Trip{l.trip}, l.existing...)); err != nil {
			return domain.Trip{}, err
		}
	}
	l.trip = next
	return next, nil
}

func TestTripService_Update_ChecksDatesExcludingItself(t *testing.T) {
	current := storedTrip("u1")
	other := domain.Trip{ID: uuid.New(), OwnerID: "u1", Title: "Goa", StartDate: day(2025, 6, 20), EndDate: day(2025, 6, 25)}
	row := &lockedRow{trip: current, existing: []domain.Trip{other}}

	svc := newTripService(&mockTripRepo{update: row.update}, nil, nil)

	shorter := day(2025, 6, 10)
	_, err := svc.Update(context.Background(), "u1", current.ID, domain.TripPatch{EndDate: &shorter})
	require.NoError(t, err, "a trip never collides with itself")

	longer := day(2025, 6, 21)
	_, err = svc.Update(context.Background(), "u1", current.ID, domain.TripPatch{EndDate: &longer})
	assert.ErrorIs(t, err, domain.ErrDateConflict)
	assert.Equal(t, 2, row.guarded, "date changes must be guarded")
}

func TestTripService_Update_TitleOnlySkipsGuard(t *testing.T) {
	row := &lockedRow{trip: storedTrip("u1")}
	pub := &recordingPublisher{}
	svc := newTripService(&mockTripRepo{update: row.update}, nil, pub)

	title := "  Leh Ride 2  "
	got, err := svc.Update(context.Background(), "u1", row.trip.ID, domain.TripPatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Leh Ride 2", got.Title)
	assert.Zero(t, row.guarded)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventTripUpdated, pub.events[0].Type)
}

func TestTripService_Update_Forbidden(t *testing.T) {
	row := &lockedRow{trip: storedTrip("u1")}
	svc := newTripService(&mockTripRepo{update: row.update}, nil, nil)

	title := "mine now"
	_, err := svc.Update(context.Background(), "u2", row.trip.ID, domain.TripPatch{Title: &title})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Leh Ride", row.trip.Title)
}

func TestTripService_Update_Unauthenticated(t *testing.T) {
	svc := newTripService(&mockTripRepo{}, nil, nil)

	title := "anyone"
	_, err := svc.Update(context.Background(), "", uuid.New(), domain.TripPatch{Title: &title})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// TestTripService_Update_ConcurrentPatchesKeepEachField runs patches touching
// different fields at once. Each applies to the row as last written, so
// every field ends up set.
func TestTripService_Update_ConcurrentPatchesKeepEachField(t *testing.T) {
	row := &lockedRow{trip: storedTrip("u1")}
	svc := newTripService(&mockTripRepo{update: row.update}, nil, nil)

	title := "Leh Ride (monsoon)"
	description := "two passes, one puncture"
	destination := "Kargil"
	patches := []domain.TripPatch{
		{Title: &title},
		{Description: &description},
		{Destination: &destination},
	}

	id := row.trip.ID
	var wg sync.WaitGroup
	for _, p := range patches {
		wg.Add(1)
		go func(p domain.TripPatch) {
			defer wg.Done()
			_, err := svc.Update(context.Background(), "u1", id, p)
			assert.NoError(t, err)
		}(p)
	}
	wg.Wait()

	assert.Equal(t, title, row.trip.Title)
	assert.Equal(t, description, row.trip.Description)
	assert.Equal(t, destination, row.trip.Destination)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_OK(t *testing.T) {
	current := storedTrip("u1")
	pub := &recordingPublisher{}
	var deleted uuid.UUID
	svc := newTripService(&mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return current, nil },
		delete: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}, nil, pub)

	err := svc.Delete(context.Background(), "u1", current.ID)

	require.NoError(t, err)
	assert.Equal(t, current.ID, deleted)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventTripDeleted, pub.events[0].Type)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	svc := newTripService(&mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}, nil, nil)

	err := svc.Delete(context.Background(), "u1", uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Search ----------------------------------------------------------------

func TestTripService_Search_TriesCapitalizedVariant(t *testing.T) {
	var got []string
	svc := newTripService(&mockTripRepo{
		searchPublic: func(_ context.Context, prefixes []string, _ domain.PaginationParams) ([]domain.Trip, error) {
			got = prefixes
			return nil, nil
		},
	}, nil, nil)

	trips, err := svc.Search(context.Background(), " leh ", domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Equal(t, []string{"leh", "Leh"}, got)
}

func TestTripService_Search_BlankQuery(t *testing.T) {
	svc := newTripService(&mockTripRepo{}, nil, nil)

	trips, err := svc.Search(context.Background(), "  ", domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Empty(t, trips)
}
