package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// TripFromDomain converts a stored trip to its wire form.
func TripFromDomain(t domain.Trip) gen.Trip {
	allowed := t.AllowedUsers
	if allowed == nil {
		allowed = []string{}
	}
	return gen.Trip{
		Id:            t.ID,
		Slug:          t.Slug,
		OwnerId:       t.OwnerID,
		Title:         t.Title,
		StartLocation: t.StartLocation,
		Destination:   t.Destination,
		Description:   t.Description,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		Visibility:    gen.Visibility(t.Visibility),
		AllowedUsers:  allowed,
		IsLive:        t.IsLive,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// TripsFromDomain converts a list, never returning nil.
func TripsFromDomain(trips []domain.Trip) []gen.Trip {
	out := make([]gen.Trip, len(trips))
	for i, t := range trips {
		out[i] = TripFromDomain(t)
	}
	return out
}

// TripToDomain converts a wire trip back to the domain type.
func TripToDomain(t gen.Trip) domain.Trip {
	return domain.Trip{
		ID:            t.Id,
		Slug:          t.Slug,
		OwnerID:       t.OwnerId,
		Title:         t.Title,
		StartLocation: t.StartLocation,
		Destination:   t.Destination,
		Description:   t.Description,
		StartDate:     t.StartDate.Time,
		EndDate:       t.EndDate.Time,
		Visibility:    domain.Visibility(t.Visibility),
		AllowedUsers:  t.AllowedUsers,
		IsLive:        t.IsLive,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// TripsToDomain converts a wire list back to domain trips.
func TripsToDomain(trips []gen.Trip) []domain.Trip {
	out := make([]domain.Trip, len(trips))
	for i, t := range trips {
		out[i] = TripToDomain(t)
	}
	return out
}

// TripDataToDomain converts client-supplied trip data. Missing dates stay zero
// and a missing visibility is left empty for the service to default.
func TripDataToDomain(d gen.TripData) domain.Trip {
	t := domain.Trip{
		Title:         d.Title,
		StartLocation: d.StartLocation,
		Destination:   d.Destination,
		Description:   d.Description,
		StartDate:     d.StartDate.Time,
		EndDate:       d.EndDate.Time,
		AllowedUsers:  d.AllowedUsers,
		IsLive:        d.IsLive,
	}
	if d.Visibility != nil {
		t.Visibility = domain.Visibility(*d.Visibility)
	}
	return t
}

// TripDataFromDomain is the inverse of TripDataToDomain, used by clients.
func TripDataFromDomain(t domain.Trip) gen.TripData {
	d := gen.TripData{
		Title:         t.Title,
		StartLocation: t.StartLocation,
		Destination:   t.Destination,
		Description:   t.Description,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		AllowedUsers:  t.AllowedUsers,
		IsLive:        t.IsLive,
	}
	if t.Visibility != "" {
		v := gen.Visibility(t.Visibility)
		d.Visibility = &v
	}
	return d
}

// PatchFromUpdate converts an update body to a domain patch. An explicit
// empty allowedUsers list clears the list; an absent one leaves it alone.
func PatchFromUpdate(r gen.UpdateTripRequest) domain.TripPatch {
	p := domain.TripPatch{
		Title:         r.Title,
		StartLocation: r.StartLocation,
		Destination:   r.Destination,
		Description:   r.Description,
		IsLive:        r.IsLive,
	}
	if r.StartDate != nil {
		d := r.StartDate.Time
		p.StartDate = &d
	}
	if r.EndDate != nil {
		d := r.EndDate.Time
		p.EndDate = &d
	}
	if r.Visibility != nil {
		v := domain.Visibility(*r.Visibility)
		p.Visibility = &v
	}
	if r.AllowedUsers != nil {
		p.AllowedUsers = *r.AllowedUsers
		if p.AllowedUsers == nil {
			p.AllowedUsers = []string{}
		}
	}
	return p
}

// ConflictsFromDomain summarizes colliding trips for an error body.
func ConflictsFromDomain(trips []domain.Trip) []gen.ConflictSummary {
	if len(trips) == 0 {
		return nil
	}
	out := make([]gen.ConflictSummary, len(trips))
	for i, t := range trips {
		out[i] = gen.ConflictSummary{
			Id:        t.ID,
			Slug:      t.Slug,
			Title:     t.Title,
			StartDate: openapi_types.Date{Time: t.StartDate},
			EndDate:   openapi_types.Date{Time: t.EndDate},
		}
	}
	return out
}

// ConflictsToDomain turns conflict summaries back into partial trips.
func ConflictsToDomain(cs []gen.ConflictSummary) []domain.Trip {
	out := make([]domain.Trip, len(cs))
	for i, c := range cs {
		out[i] = domain.Trip{
			ID:        c.Id,
			Slug:      c.Slug,
			Title:     c.Title,
			StartDate: c.StartDate.Time,
			EndDate:   c.EndDate.Time,
		}
	}
	return out
}

// ExportRowFromDomain converts an export row to its JSON form.
func ExportRowFromDomain(r domain.ExportRow) gen.ExportRow {
	allowed := r.AllowedUsers
	if allowed == nil {
		allowed = []string{}
	}
	return gen.ExportRow{
		TripId:        r.TripID,
		Slug:          r.Slug,
		Title:         r.Title,
		StartLocation: r.StartLocation,
		Destination:   r.Destination,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Visibility:    r.Visibility,
		AllowedUsers:  allowed,
	}
}

// Date wraps a calendar date for a request body.
func Date(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}
