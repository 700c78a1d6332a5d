// Package conflict finds an owner's trips whose dates collide with a candidate range.
package conflict

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripjournal/internal/daterange"
	"github.com/pkordes/tripjournal/internal/domain"
)

// Find returns every trip in trips that belongs to ownerID and whose
// [StartDate, EndDate] overlaps [start, end] under the day-span rule in loc.
//
// Trips with a missing date are skipped, and a trip ID seen twice is reported
// once. The result keeps the input order. Find never fails: a zero candidate
// date simply yields no conflicts.
func Find(ownerID string, start, end time.Time, trips []domain.Trip, loc *time.Location) []domain.Trip {
	var out []domain.Trip
	seen := make(map[uuid.UUID]struct{})
	for _, t := range trips {
		if t.OwnerID != ownerID {
			continue
		}
		if t.StartDate.IsZero() || t.EndDate.IsZero() {
			continue
		}
		if !daterange.OverlapsDays(start, end, t.StartDate, t.EndDate, loc) {
			continue
		}
		if t.ID != uuid.Nil {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
		}
		out = append(out, t)
	}
	return out
}

// Exclude returns trips without the one whose ID is id.
// Used when re-checking an edited trip against its siblings.
func Exclude(trips []domain.Trip, id uuid.UUID) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Titles lists the titles of trips in order.
func Titles(trips []domain.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.Title
	}
	return out
}
