package repo_test

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
	"github.com/pkordes/tripjournal/testutil"
)

// newTestRepos opens a transaction against the test database and returns
// repos backed by it. The transaction is rolled back when the test finishes.
func newTestRepos(t *testing.T) (repo.TripRepo, repo.SlugRepo) {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewTripRepo(tx), repo.NewSlugRepo(tx)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(owner, slug string) domain.Trip {
	return domain.Trip{
		Slug:          slug,
		OwnerID:       owner,
		Title:         "Leh Ride",
		StartLocation: "Delhi",
		Destination:   "Leh",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 15),
		Visibility:    domain.VisibilityPrivate,
		AllowedUsers:  []string{owner},
	}
}

func TestTripRepo_CreateWithSlug(t *testing.T) {
	trips, slugs := newTestRepos(t)
	ctx := context.Background()

	got, err := trips.CreateWithSlug(ctx, tripFixture("u1", "leh-ride"), nil)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, "leh-ride", got.Slug)
	assert.True(t, got.StartDate.Equal(day(2025, 6, 1)), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(day(2025, 6, 15)), "EndDate mismatch")
	assert.Equal(t, []string{"u1"}, got.AllowedUsers)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")

	entry, err := slugs.Get(ctx, "leh-ride")
	require.NoError(t, err)
	assert.Equal(t, got.ID, entry.TripID)
	assert.Equal(t, "u1", entry.OwnerID)
}

func TestTripRepo_CreateWithSlug_SlugTaken(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := trips.CreateWithSlug(ctx, tripFixture("u1", "leh-ride"), nil)
	require.NoError(t, err)

	other := tripFixture("u2", "leh-ride")
	other.StartDate, other.EndDate = day(2026, 1, 1), day(2026, 1, 2)
	_, err = trips.CreateWithSlug(ctx, other, nil)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestTripRepo_CreateWithSlug_GuardAbortsWithoutWrites(t *testing.T) {
	trips, slugs := newTestRepos(t)
	ctx := context.Background()
	_, err := trips.CreateWithSlug(ctx, tripFixture("u1", "first"), nil)
	require.NoError(t, err)

	var seen []domain.Trip
	guardErr := &domain.ConflictError{}
	_, err = trips.CreateWithSlug(ctx, tripFixture("u1", "second"), func(existing []domain.Trip) error {
		seen = existing
		return guardErr
	})

	assert.ErrorIs(t, err, domain.ErrDateConflict)
	require.Len(t, seen, 1, "guard sees the owner's existing trips")
	assert.Equal(t, "first", seen[0].Slug)

	exists, err := slugs.Exists(ctx, "second")
	require.NoError(t, err)
	assert.False(t, exists, "no slug index entry after an aborted create")
	_, err = trips.GetBySlug(ctx, "second")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	trips, _ := newTestRepos(t)

	_, err := trips.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByOwner(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()

	older := tripFixture("u1", "older")
	older.StartDate, older.EndDate = day(2024, 1, 1), day(2024, 1, 3)
	_, err := trips.CreateWithSlug(ctx, older, nil)
	require.NoError(t, err)
	_, err = trips.CreateWithSlug(ctx, tripFixture("u1", "newer"), nil)
	require.NoError(t, err)
	_, err = trips.CreateWithSlug(ctx, tripFixture("u2", "not-mine"), nil)
	require.NoError(t, err)

	got, err := trips.ListByOwner(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Slug)
	assert.Equal(t, "older", got[1].Slug)
}

func TestTripRepo_Update(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()
	created, err := trips.CreateWithSlug(ctx, tripFixture("u1", "leh-ride"), nil)
	require.NoError(t, err)

	var seen domain.Trip
	got, err := trips.Update(ctx, created.ID, func(current domain.Trip) (domain.Trip, repo.Guard, error) {
		seen = current
		current.Title = "Leh Ride (extended)"
		current.EndDate = day(2025, 6, 20)
		current.Visibility = domain.VisibilityPublic
		current.Slug = "renamed"
		return current, nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, seen.ID)
	assert.Equal(t, "Leh Ride", seen.Title, "mutate sees the stored row")
	assert.Equal(t, "Leh Ride (extended)", got.Title)
	assert.True(t, got.EndDate.Equal(day(2025, 6, 20)))
	assert.Equal(t, domain.VisibilityPublic, got.Visibility)
	assert.Equal(t, "leh-ride", got.Slug, "slug never changes")
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	trips, _ := newTestRepos(t)

	called := false
	_, err := trips.Update(context.Background(), uuid.New(), func(current domain.Trip) (domain.Trip, repo.Guard, error) {
		called = true
		return current, nil, nil
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, called)
}

func TestTripRepo_Update_MutationErrorAbortsWrite(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()
	created, err := trips.CreateWithSlug(ctx, tripFixture("u1", "leh-ride"), nil)
	require.NoError(t, err)

	_, err = trips.Update(ctx, created.ID, func(domain.Trip) (domain.Trip, repo.Guard, error) {
		return domain.Trip{}, nil, domain.ErrForbidden
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = trips.Update(ctx, created.ID, func(current domain.Trip) (domain.Trip, repo.Guard, error) {
		current.Title = "guarded"
		return current, func([]domain.Trip) error { return domain.ErrDateConflict }, nil
	})
	assert.ErrorIs(t, err, domain.ErrDateConflict)

	got, err := trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leh Ride", got.Title)
}

// TestTripRepo_Update_ConcurrentMutationsSerialize runs read-modify-write
// updates against the pool directly, so they really race. Each appends to the
// description it read; with the row locked, no append is lost.
func TestTripRepo_Update_ConcurrentMutationsSerialize(t *testing.T) {
	pool := testutil.NewPool(t)
	trips := repo.NewTripRepo(pool)
	ctx := context.Background()

	created, err := trips.CreateWithSlug(ctx, tripFixture(uuid.NewString(), "patch-"+uuid.NewString()), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM trips WHERE id = $1`, created.ID)
	})

	const writers = 8
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := trips.Update(ctx, created.ID, func(current domain.Trip) (domain.Trip, repo.Guard, error) {
				current.Description += "x"
				return current, nil, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Description, writers)
}

func TestTripRepo_Delete_RemovesSlugIndex(t *testing.T) {
	trips, slugs := newTestRepos(t)
	ctx := context.Background()
	created, err := trips.CreateWithSlug(ctx, tripFixture("u1", "leh-ride"), nil)
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, created.ID))

	exists, err := slugs.Exists(ctx, "leh-ride")
	require.NoError(t, err)
	assert.False(t, exists)

	// The slug is free again.
	_, err = trips.CreateWithSlug(ctx, tripFixture("u2", "leh-ride"), nil)
	assert.NoError(t, err)
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	trips, _ := newTestRepos(t)

	err := trips.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_SearchPublic(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()

	for i, tc := range []struct {
		slug, title string
		vis         domain.Visibility
	}{
		{"a", "Leh Ride", domain.VisibilityPublic},
		{"b", "leh loop", domain.VisibilityPublic},
		{"c", "Leh Secret", domain.VisibilityPrivate},
		{"d", "Goa", domain.VisibilityPublic},
		{"e", "Le_h literal", domain.VisibilityPublic},
	} {
		tr := tripFixture("owner", tc.slug)
		tr.OwnerID = uuid.NewString()
		tr.Title = tc.title
		tr.Visibility = tc.vis
		tr.StartDate = day(2025, 1, 1+i)
		tr.EndDate = tr.StartDate
		_, err := trips.CreateWithSlug(ctx, tr, nil)
		require.NoError(t, err)
	}

	got, err := trips.SearchPublic(ctx, []string{"leh", "Leh"}, domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	var titles []string
	for _, tr := range got {
		titles = append(titles, tr.Title)
	}
	assert.ElementsMatch(t, []string{"Leh Ride", "leh loop"}, titles)
}

func TestTripRepo_StopExpiredLive(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()

	ended := tripFixture("u1", "ended")
	ended.StartDate, ended.EndDate = day(2025, 1, 1), day(2025, 1, 5)
	ended.IsLive = true
	_, err := trips.CreateWithSlug(ctx, ended, nil)
	require.NoError(t, err)

	ongoing := tripFixture("u1", "ongoing")
	ongoing.StartDate, ongoing.EndDate = day(2025, 1, 6), day(2025, 1, 20)
	ongoing.IsLive = true
	_, err = trips.CreateWithSlug(ctx, ongoing, nil)
	require.NoError(t, err)

	stopped, err := trips.StopExpiredLive(ctx, day(2025, 1, 10))

	require.NoError(t, err)
	require.Len(t, stopped, 1)
	assert.Equal(t, "ended", stopped[0].Slug)
	assert.False(t, stopped[0].IsLive)
}

// TestTripRepo_CreateWithSlug_ConcurrentSameSlug runs two creations for the
// same slug from different owners against the pool directly (no wrapping
// transaction, so they really race). Exactly one must win.
func TestTripRepo_CreateWithSlug_ConcurrentSameSlug(t *testing.T) {
	pool := testutil.NewPool(t)
	trips := repo.NewTripRepo(pool)
	ctx := context.Background()

	slug := "race-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM trips WHERE slug = $1`, slug)
	})

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = trips.CreateWithSlug(ctx, tripFixture(uuid.NewString(), slug), nil)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrAlreadyExists):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	var entries int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM slug_index WHERE slug = $1`, slug).Scan(&entries))
	assert.Equal(t, 1, entries)
}
