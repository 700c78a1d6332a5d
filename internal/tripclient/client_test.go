package tripclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/api"
	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler/gen"
	"github.com/pkordes/tripjournal/internal/realtime"
	"github.com/pkordes/tripjournal/internal/tripclient"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCheckSlug_SendsBodyAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/check-slug", r.URL.Path)
		var req gen.CheckSlugRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Leh Ride", req.Slug)
		writeJSON(w, http.StatusOK, gen.CheckSlugResponse{Available: false, Slug: "leh-ride"})
	}))
	defer srv.Close()

	got, err := tripclient.New(srv.URL).CheckSlug(context.Background(), "Leh Ride")

	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "leh-ride", got.Slug)
}

func TestCreateTrip_SendsBearerToken(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var req gen.CreateTripRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Leh", req.TripData.Title)
		writeJSON(w, http.StatusOK, gen.CreateTripResponse{Id: id, Slug: req.Slug})
	}))
	defer srv.Close()

	got, err := tripclient.New(srv.URL, tripclient.WithToken("tok")).
		CreateTrip(context.Background(), "leh", gen.TripData{Title: "Leh"})

	require.NoError(t, err)
	assert.Equal(t, id, got.Id)
}

func TestCreateTrip_ConflictMapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		body     gen.ErrorResponse
		sentinel error
	}{
		{"slug taken", gen.ErrorResponse{Error: "already-exists", Message: "Slug already taken"}, domain.ErrAlreadyExists},
		{"date conflict", gen.ErrorResponse{Error: "date-conflict", Conflicts: []gen.ConflictSummary{{Title: "Goa"}}}, domain.ErrDateConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusConflict, tt.body)
			}))
			defer srv.Close()

			_, err := tripclient.New(srv.URL).CreateTrip(context.Background(), "x", gen.TripData{})

			require.ErrorIs(t, err, tt.sentinel)
			var apiErr *tripclient.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusConflict, apiErr.Status)
			assert.Len(t, apiErr.Conflicts, len(tt.body.Conflicts))
		})
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := tripclient.New(srv.URL).ListTrips(context.Background())

	var apiErr *tripclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, domain.CodeInternal, apiErr.Code)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := tripclient.New(srv.URL, tripclient.WithTimeout(50*time.Millisecond)).ListTrips(context.Background())

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestListTrips_DecodesDates(t *testing.T) {
	trip := domain.Trip{
		ID:        uuid.New(),
		Title:     "Goa",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, gen.TripList{Data: []gen.Trip{api.TripFromDomain(trip)}})
	}))
	defer srv.Close()

	got, err := tripclient.New(srv.URL).ListTrips(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, trip.StartDate, got[0].StartDate)
	assert.Equal(t, trip.EndDate, got[0].EndDate)
}

func TestSearch_EncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "new york", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, gen.TripList{Data: []gen.Trip{}})
	}))
	defer srv.Close()

	got, err := tripclient.New(srv.URL).Search(context.Background(), "new york", 2, 0)

	require.NoError(t, err)
	assert.Empty(t, got)
}

// ---- WatchTrips ------------------------------------------------------------

type staticLister struct {
	mu    sync.Mutex
	trips []domain.Trip
}

func (s *staticLister) ListByOwner(_ context.Context, _ string) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Trip(nil), s.trips...), nil
}

func TestWatchTrips_ReceivesSnapshotAndChanges(t *testing.T) {
	const secret = "watch-secret"
	verifier := auth.NewJWTVerifier(secret)
	token, err := verifier.Issue("alice", time.Hour)
	require.NoError(t, err)

	lister := &staticLister{trips: []domain.Trip{{ID: uuid.New(), OwnerID: "alice", Title: "Goa"}}}
	broker := realtime.NewLocalBroker()
	srv := httptest.NewServer(realtime.NewFeed(lister, broker, verifier, nil, nil))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := make(chan []domain.Trip, 4)
	done := make(chan error, 1)
	go func() {
		done <- tripclient.New(srv.URL, tripclient.WithToken(token)).
			WatchTrips(ctx, func(_ string, trips []domain.Trip) { frames <- trips })
	}()

	select {
	case got := <-frames:
		require.Len(t, got, 1)
	case <-time.After(3 * time.Second):
		t.Fatal("no snapshot")
	}

	lister.mu.Lock()
	lister.trips = append(lister.trips, domain.Trip{ID: uuid.New(), OwnerID: "alice", Title: "Leh"})
	lister.mu.Unlock()
	require.NoError(t, broker.PublishTripEvent(ctx, domain.TripEvent{Type: domain.EventTripCreated, OwnerID: "alice"}))

	select {
	case got := <-frames:
		assert.Len(t, got, 2)
	case <-time.After(3 * time.Second):
		t.Fatal("no update")
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("WatchTrips did not return after cancel")
	}
}

func TestWatchTrips_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(realtime.NewFeed(&staticLister{}, realtime.NewLocalBroker(), auth.NewJWTVerifier("s"), nil, nil))
	defer srv.Close()

	err := tripclient.New(srv.URL).WatchTrips(context.Background(), func(string, []domain.Trip) {})

	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
