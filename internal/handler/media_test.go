package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/handler"
	"github.com/pkordes/tripjournal/internal/handler/gen"
)

type mockMediaServicer struct {
	presignUpload func(ctx context.Context, ownerID string, tripID uuid.UUID, filename, contentType string) (domain.MediaUpload, error)
}

func (m *mockMediaServicer) PresignUpload(ctx context.Context, ownerID string, tripID uuid.UUID, filename, contentType string) (domain.MediaUpload, error) {
	return m.presignUpload(ctx, ownerID, tripID, filename, contentType)
}

var _ handler.MediaServicer = (*mockMediaServicer)(nil)

func TestCreateMediaUpload_200(t *testing.T) {
	tripID := uuid.New()
	expires := time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC)
	svc := &mockMediaServicer{
		presignUpload: func(_ context.Context, ownerID string, id uuid.UUID, filename, contentType string) (domain.MediaUpload, error) {
			assert.Equal(t, testOwner, ownerID)
			assert.Equal(t, tripID, id)
			assert.Equal(t, "beach.jpg", filename)
			assert.Equal(t, "image/jpeg", contentType)
			return domain.MediaUpload{Key: "trips/x/beach.jpg", URL: "https://s3.example/put", ExpiresAt: expires}, nil
		},
	}

	rec := do(t, newHTTPHandler(nil, nil, svc), http.MethodPost, "/trips/"+tripID.String()+"/media",
		map[string]any{"filename": "beach.jpg", "contentType": "image/jpeg"}, testOwner)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp gen.MediaUploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "https://s3.example/put", resp.Url)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestCreateMediaUpload_400_UnsupportedType(t *testing.T) {
	svc := &mockMediaServicer{
		presignUpload: func(_ context.Context, _ string, _ uuid.UUID, _, _ string) (domain.MediaUpload, error) {
			return domain.MediaUpload{}, fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, "text/plain")
		},
	}

	rec := do(t, newHTTPHandler(nil, nil, svc), http.MethodPost, "/trips/"+uuid.NewString()+"/media",
		map[string]any{"filename": "notes.txt", "contentType": "text/plain"}, testOwner)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "unsupported content type")
}
