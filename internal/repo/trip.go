// Package repo contains all database access logic for the Trip Journal API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL, transactions and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripjournal/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so the repo's own transactions nest cleanly.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Guard is called inside a write transaction with every trip the owner has,
// read after the owner's lock is taken. A non-nil error aborts the write and
// is returned unchanged.
type Guard func(ownerTrips []domain.Trip) error

// Mutation turns the row locked by an update into the row to write. A
// non-nil guard is run against the owner's trips before the write; a non-nil
// error aborts the transaction and is returned unchanged.
type Mutation func(current domain.Trip) (next domain.Trip, guard Guard, err error)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// CreateWithSlug inserts trip and claims its slug in one transaction.
	// Returns domain.ErrAlreadyExists if the slug is taken, or whatever guard
	// returns. On success both rows exist; on failure neither does.
	CreateWithSlug(ctx context.Context, trip domain.Trip, guard Guard) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetBySlug retrieves a single trip by slug.
	// Returns domain.ErrNotFound if no trip has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.Trip, error)

	// ListByOwner returns the owner's trips ordered by start_date descending.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)

	// Update locks the trip row, hands it to mutate and writes back the
	// mutable fields of the result, all in one transaction. Concurrent
	// updates of the same trip therefore apply one after the other.
	// Slug and owner never change.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, id uuid.UUID, mutate Mutation) (domain.Trip, error)

	// Delete removes a trip and its slug index entry together.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchPublic returns public trips whose title starts with any of prefixes,
	// ordered by title.
	SearchPublic(ctx context.Context, prefixes []string, p domain.PaginationParams) ([]domain.Trip, error)

	// StopExpiredLive clears is_live on every live trip whose end date is
	// before the given date and returns the trips it changed.
	StopExpiredLive(ctx context.Context, before time.Time) ([]domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, slug, owner_id, title, start_location, destination, description,
	start_date, end_date, visibility, allowed_users, is_live, created_at, updated_at`

// CreateWithSlug runs the creation transaction:
// lock the owner, check the slug index, run guard, insert trip, insert index entry.
func (r *pgTripRepo) CreateWithSlug(ctx context.Context, trip domain.Trip, guard Guard) (domain.Trip, error) {
	var created domain.Trip
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, trip.OwnerID); err != nil {
			return err
		}

		var taken bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM slug_index WHERE slug = @slug)`,
			pgx.NamedArgs{"slug": trip.Slug},
		).Scan(&taken); err != nil {
			return fmt.Errorf("read slug index: %w", err)
		}
		if taken {
			return domain.ErrAlreadyExists
		}

		if guard != nil {
			existing, err := listByOwner(ctx, tx, trip.OwnerID)
			if err != nil {
				return err
			}
			if err := guard(existing); err != nil {
				return err
			}
		}

		const insertTrip = `
			INSERT INTO trips (slug, owner_id, title, start_location, destination, description,
			                   start_date, end_date, visibility, allowed_users, is_live)
			VALUES (@slug, @owner_id, @title, @start_location, @destination, @description,
			        @start_date, @end_date, @visibility, @allowed_users, @is_live)
			RETURNING ` + tripColumns

		var err error
		created, err = scanTrip(tx.QueryRow(ctx, insertTrip, tripArgs(trip)))
		if err != nil {
			return fmt.Errorf("insert trip: %w", err)
		}

		const insertSlug = `
			INSERT INTO slug_index (slug, trip_id, owner_id)
			VALUES (@slug, @trip_id, @owner_id)`
		if _, err := tx.Exec(ctx, insertSlug, pgx.NamedArgs{
			"slug":     created.Slug,
			"trip_id":  created.ID,
			"owner_id": created.OwnerID,
		}); err != nil {
			return fmt.Errorf("insert slug index: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithSlug: %w", mapUniqueViolation(err))
	}
	return created, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a trip by its unique slug.
func (r *pgTripRepo) GetBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE slug = @slug`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// ListByOwner returns the owner's trips, most recent first.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	trips, err := listByOwner(ctx, r.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	return trips, nil
}

// Update reads the trip FOR UPDATE, applies mutate and writes the result.
// The owner lock is taken only when mutate asks for a guard.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, mutate Mutation) (domain.Trip, error) {
	var updated domain.Trip
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanTrip(tx.QueryRow(ctx,
			`SELECT `+tripColumns+` FROM trips WHERE id = @id FOR UPDATE`,
			pgx.NamedArgs{"id": id}))
		if err != nil {
			return err
		}

		next, guard, err := mutate(current)
		if err != nil {
			return err
		}

		if guard != nil {
			if err := lockOwner(ctx, tx, current.OwnerID); err != nil {
				return err
			}
			existing, err := listByOwner(ctx, tx, current.OwnerID)
			if err != nil {
				return err
			}
			if err := guard(existing); err != nil {
				return err
			}
		}

		const q = `
			UPDATE trips
			SET title          = @title,
			    start_location = @start_location,
			    destination    = @destination,
			    description    = @description,
			    start_date     = @start_date,
			    end_date       = @end_date,
			    visibility     = @visibility,
			    allowed_users  = @allowed_users,
			    is_live        = @is_live,
			    updated_at     = now()
			WHERE id = @id
			RETURNING ` + tripColumns

		args := tripArgs(next)
		args["id"] = current.ID

		updated, err = scanTrip(tx.QueryRow(ctx, q, args))
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return updated, nil
}

// Delete removes the slug index entry and the trip in one transaction.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM slug_index WHERE trip_id = @id`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("delete slug index: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
		if err != nil {
			return fmt.Errorf("delete trip: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// SearchPublic runs a case-sensitive prefix match on public trip titles.
func (r *pgTripRepo) SearchPublic(ctx context.Context, prefixes []string, p domain.PaginationParams) ([]domain.Trip, error) {
	patterns := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		if prefix != "" {
			patterns = append(patterns, escapeLike(prefix)+"%")
		}
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE visibility = 'public' AND title LIKE ANY (@patterns)
		ORDER BY title, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"patterns": patterns,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.SearchPublic: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.SearchPublic: %w", err)
	}
	return trips, nil
}

// StopExpiredLive flips is_live off for finished trips in a single statement.
func (r *pgTripRepo) StopExpiredLive(ctx context.Context, before time.Time) ([]domain.Trip, error) {
	q := `
		UPDATE trips
		SET is_live = false, updated_at = now()
		WHERE is_live AND end_date < @before
		RETURNING ` + tripColumns

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"before": pgtype.Date{Time: before, Valid: true}})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.StopExpiredLive: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.StopExpiredLive: %w", err)
	}
	return trips, nil
}

// lockOwner serializes writes per owner for the rest of the transaction, so
// two requests for the same owner cannot both pass the date-conflict guard.
func lockOwner(ctx context.Context, tx pgx.Tx, ownerID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext(@owner_id))`,
		pgx.NamedArgs{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("lock owner: %w", err)
	}
	return nil
}

func listByOwner(ctx context.Context, conn db, ownerID string) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY start_date DESC, created_at DESC`

	rows, err := conn.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	return collectTrips(rows)
}

func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

func tripArgs(t domain.Trip) pgx.NamedArgs {
	allowed := t.AllowedUsers
	if allowed == nil {
		allowed = []string{}
	}
	visibility := t.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPrivate
	}
	return pgx.NamedArgs{
		"slug":           t.Slug,
		"owner_id":       t.OwnerID,
		"title":          t.Title,
		"start_location": t.StartLocation,
		"destination":    t.Destination,
		"description":    t.Description,
		"start_date":     pgtype.Date{Time: t.StartDate, Valid: !t.StartDate.IsZero()},
		"end_date":       pgtype.Date{Time: t.EndDate, Valid: !t.EndDate.IsZero()},
		"visibility":     string(visibility),
		"allowed_users":  allowed,
		"is_live":        t.IsLive,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		start, end pgtype.Date
		visibility string
	)

	err := s.Scan(&id, &t.Slug, &t.OwnerID, &t.Title, &t.StartLocation, &t.Destination, &t.Description,
		&start, &end, &visibility, &t.AllowedUsers, &t.IsLive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	t.Visibility = domain.Visibility(visibility)
	return t, nil
}

// mapUniqueViolation turns a unique-constraint failure from a concurrent
// committer into domain.ErrAlreadyExists.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}

// escapeLike escapes LIKE metacharacters so a prefix is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
