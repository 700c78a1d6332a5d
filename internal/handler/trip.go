package handler

import (
	"context"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

// CheckSlug handles POST /check-slug.
// The answer is advisory; a later create can still lose the slug.
func (s *Server) CheckSlug(ctx context.Context, req gen.CheckSlugRequestObject) (gen.CheckSlugResponseObject, error) {
	normalized, available, err := s.trips.CheckAvailability(ctx, req.Body.Slug)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeMissingSlug, domain.CodeInvalidArgument:
			return gen.CheckSlug400JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.CheckSlug200JSONResponse{Available: available, Slug: normalized}, nil
}

// CreateTrip handles POST /create-trip.
// The slug is claimed and the trip stored in one transaction; a lost race
// for the slug is a 409 already-exists.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	created, err := s.trips.Create(ctx, auth.UserID(ctx), req.Body.Slug, api.TripDataToDomain(req.Body.TripData))
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeMissingSlug, domain.CodeInvalidArgument:
			return gen.CreateTrip400JSONResponse(errorBody(err)), nil
		case domain.CodeUnauthenticated:
			return gen.CreateTrip401JSONResponse(errorBody(err)), nil
		case domain.CodeAlreadyExists, domain.CodeDateConflict:
			return gen.CreateTrip409JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.CreateTrip200JSONResponse{Id: created.ID, Slug: created.Slug}, nil
}

// ListTrips handles GET /trips: the caller's own trips.
func (s *Server) ListTrips(ctx context.Context, _ gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	trips, err := s.trips.ListByOwner(ctx, auth.UserID(ctx))
	if err != nil {
		if domain.CodeOf(err) == domain.CodeUnauthenticated {
			return gen.ListTrips401JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.ListTrips200JSONResponse{Data: api.TripsFromDomain(trips)}, nil
}

// GetTripBySlug handles GET /trips/{key}, where key is a slug.
// Trips the caller may not read are reported as missing.
func (s *Server) GetTripBySlug(ctx context.Context, req gen.GetTripBySlugRequestObject) (gen.GetTripBySlugResponseObject, error) {
	trip, err := s.trips.GetBySlug(ctx, auth.UserID(ctx), req.Key)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeNotFound {
			return gen.GetTripBySlug404JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.GetTripBySlug200JSONResponse(api.TripFromDomain(trip)), nil
}

// UpdateTrip handles PATCH /trips/{key}, where key is a trip id.
func (s *Server) UpdateTrip(ctx context.Context, req gen.UpdateTripRequestObject) (gen.UpdateTripResponseObject, error) {
	updated, err := s.trips.Update(ctx, auth.UserID(ctx), req.Key, api.PatchFromUpdate(*req.Body))
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeMissingSlug, domain.CodeInvalidArgument:
			return gen.UpdateTrip400JSONResponse(errorBody(err)), nil
		case domain.CodeUnauthenticated:
			return gen.UpdateTrip401JSONResponse(errorBody(err)), nil
		case domain.CodePermissionDenied:
			return gen.UpdateTrip403JSONResponse(errorBody(err)), nil
		case domain.CodeNotFound:
			return gen.UpdateTrip404JSONResponse(errorBody(err)), nil
		case domain.CodeAlreadyExists, domain.CodeDateConflict:
			return gen.UpdateTrip409JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.UpdateTrip200JSONResponse(api.TripFromDomain(updated)), nil
}

// DeleteTrip handles DELETE /trips/{key}, where key is a trip id.
func (s *Server) DeleteTrip(ctx context.Context, req gen.DeleteTripRequestObject) (gen.DeleteTripResponseObject, error) {
	if err := s.trips.Delete(ctx, auth.UserID(ctx), req.Key); err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeUnauthenticated:
			return gen.DeleteTrip401JSONResponse(errorBody(err)), nil
		case domain.CodePermissionDenied:
			return gen.DeleteTrip403JSONResponse(errorBody(err)), nil
		case domain.CodeNotFound:
			return gen.DeleteTrip404JSONResponse(errorBody(err)), nil
		}
		return nil, err
	}
	return gen.DeleteTrip204Response{}, nil
}

// SearchTrips handles GET /search?q=&page=&limit=.
// Only public trips are searched; a blank q matches nothing.
func (s *Server) SearchTrips(ctx context.Context, req gen.SearchTripsRequestObject) (gen.SearchTripsResponseObject, error) {
	p := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	var q string
	if req.Params.Q != nil {
		q = *req.Params.Q
	}

	trips, err := s.trips.Search(ctx, q, p)
	if err != nil {
		return nil, err
	}
	return gen.SearchTrips200JSONResponse{Data: api.TripsFromDomain(trips), Page: p.Page, Limit: p.Limit}, nil
}
