package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripjournal/internal/domain"
)

// SlugRepo reads the slug uniqueness index. Entries are written and removed
// only by TripRepo, together with the trip they point at.
type SlugRepo interface {
	// Get returns the index entry for slug, or domain.ErrNotFound.
	Get(ctx context.Context, slug string) (domain.SlugEntry, error)

	// Exists reports whether slug is claimed.
	Exists(ctx context.Context, slug string) (bool, error)
}

type pgSlugRepo struct {
	db db
}

// NewSlugRepo constructs a SlugRepo backed by the provided db connection.
func NewSlugRepo(db db) SlugRepo {
	return &pgSlugRepo{db: db}
}

func (r *pgSlugRepo) Get(ctx context.Context, slug string) (domain.SlugEntry, error) {
	const q = `SELECT slug, trip_id, owner_id, created_at FROM slug_index WHERE slug = @slug`

	var (
		e  domain.SlugEntry
		id pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}).Scan(&e.Slug, &id, &e.OwnerID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SlugEntry{}, fmt.Errorf("repo.SlugRepo.Get: %w", domain.ErrNotFound)
		}
		return domain.SlugEntry{}, fmt.Errorf("repo.SlugRepo.Get: %w", err)
	}
	e.TripID = uuid.UUID(id.Bytes)
	return e, nil
}

func (r *pgSlugRepo) Exists(ctx context.Context, slug string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM slug_index WHERE slug = @slug)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.SlugRepo.Exists: %w", err)
	}
	return exists, nil
}
