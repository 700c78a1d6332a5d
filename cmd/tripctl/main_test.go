package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fakeAPI answers check-slug, list and create like an empty account.
func fakeAPI(t *testing.T, created *[]gen.CreateTripRequest) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /check-slug", func(w http.ResponseWriter, r *http.Request) {
		var req gen.CheckSlugRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, gen.CheckSlugResponse{Available: req.Slug != "taken", Slug: req.Slug})
	})
	mux.HandleFunc("GET /trips", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, gen.TripList{Data: []gen.Trip{}})
	})
	mux.HandleFunc("POST /create-trip", func(w http.ResponseWriter, r *http.Request) {
		var req gen.CreateTripRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*created = append(*created, req)
		writeJSON(w, http.StatusOK, gen.CreateTripResponse{Id: uuid.New(), Slug: req.Slug})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func token(t *testing.T, user string) string {
	t.Helper()
	tok, err := auth.NewJWTVerifier("cli-test").Issue(user, time.Hour)
	require.NoError(t, err)
	return tok
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_UnknownCommand(t *testing.T) {
	_, err := runCLI(t, "teleport")
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t)
	require.ErrorIs(t, err, errUsage)
}

func TestToken_IssuesVerifiableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := runCLI(t, "token", "-user", "user-9")

	require.NoError(t, err)
	sub, err := auth.NewJWTVerifier("cli-secret").Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-9", sub)
}

func TestCheck(t *testing.T) {
	var created []gen.CreateTripRequest
	srv := fakeAPI(t, &created)

	out, err := runCLI(t, "-url", srv.URL, "check", "leh")
	require.NoError(t, err)
	assert.Equal(t, "leh\tavailable\n", out)

	out, err = runCLI(t, "-url", srv.URL, "check", "taken")
	require.NoError(t, err)
	assert.Equal(t, "taken\ttaken\n", out)
}

func TestCreate_SubmitsThroughPlanner(t *testing.T) {
	var created []gen.CreateTripRequest
	srv := fakeAPI(t, &created)

	out, err := runCLI(t, "-url", srv.URL, "-token", token(t, "user-1"), "-tz", "UTC",
		"create", "-title", "Ladakh Loop", "-from", "Manali", "-to", "Leh",
		"-start", "2025-07-01", "-end", "2025-07-10", "-visibility", "restricted", "-allow", "a, b")

	require.NoError(t, err)
	assert.Contains(t, out, "ladakh-loop-manali-leh-2025-07-01")
	require.Len(t, created, 1)
	assert.Equal(t, []string{"a", "b"}, created[0].TripData.AllowedUsers)
}

func TestCreate_RequiresToken(t *testing.T) {
	var created []gen.CreateTripRequest
	srv := fakeAPI(t, &created)

	_, err := runCLI(t, "-url", srv.URL, "-token", "", "create", "-title", "x")

	require.ErrorContains(t, err, "token")
	assert.Empty(t, created)
}

func TestImport_CanonicalizesLegacyDates(t *testing.T) {
	var created []gen.CreateTripRequest
	srv := fakeAPI(t, &created)
	path := filepath.Join(t.TempDir(), "trips.json")
	docs := `[
		{"title":"Spiti","startLocation":"Shimla","destination":"Kaza","start_date":"2023-06-01","end":1686009600000},
		{"title":"Broken","destination":"Nowhere","startDate":"2023-07-01"},
		{"title":"Theirs","uid":"user-2","startLocation":"A","destination":"B","startDate":"2023-08-01","endDate":"2023-08-02"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(docs), 0o600))

	out, err := runCLI(t, "-url", srv.URL, "-token", token(t, "user-1"), "-tz", "UTC", "import", "-file", path)

	require.ErrorContains(t, err, "2 of 3 documents failed")
	assert.Contains(t, out, "1\tcreated\tspiti-shimla-kaza-2023-06-01")
	assert.Contains(t, out, "2\tskipped")
	assert.Contains(t, out, "3\tskipped\towned by user-2")
	require.Len(t, created, 1)
	assert.Equal(t, "2023-06-06", created[0].TripData.EndDate.Time.Format("2006-01-02"))
}
