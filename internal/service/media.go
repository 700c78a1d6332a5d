package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/repo"
	"github.com/pkordes/tripjournal/internal/slug"
)

// MediaUploadTTL is how long a presigned upload URL stays valid.
const MediaUploadTTL = 15 * time.Minute

var allowedMediaTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"video/mp4":  ".mp4",
}

// Presigner issues time-limited upload URLs for object keys.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (url string, err error)
}

// MediaService hands out upload slots for trip photos and videos.
type MediaService struct {
	trips     repo.TripRepo
	presigner Presigner
	now       func() time.Time
}

// NewMediaService constructs a MediaService. A nil presigner disables uploads.
func NewMediaService(trips repo.TripRepo, presigner Presigner) *MediaService {
	return &MediaService{trips: trips, presigner: presigner, now: time.Now}
}

// PresignUpload returns an upload slot for a file attached to the owner's trip.
// Returns domain.ErrValidation for an unsupported content type and
// domain.ErrForbidden when ownerID does not own the trip.
func (s *MediaService) PresignUpload(ctx context.Context, ownerID string, tripID uuid.UUID, filename, contentType string) (domain.MediaUpload, error) {
	if s.presigner == nil {
		return domain.MediaUpload{}, fmt.Errorf("service.MediaService.PresignUpload: %w: media uploads are not configured", domain.ErrValidation)
	}
	if ownerID == "" {
		return domain.MediaUpload{}, fmt.Errorf("service.MediaService.PresignUpload: %w", domain.ErrUnauthenticated)
	}
	ext, ok := allowedMediaTypes[strings.ToLower(contentType)]
	if !ok {
		return domain.MediaUpload{}, fmt.Errorf("service.MediaService.PresignUpload: %w: unsupported content type %q", domain.ErrValidation, contentType)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.MediaUpload{}, fmt.Errorf("service.MediaService.PresignUpload: %w", err)
	}
	if trip.OwnerID != ownerID {
		return domain.MediaUpload{}, fmt.Errorf("service.MediaService.PresignUpload: %w", domain.ErrForbidden)
	}

	key := MediaKey(tripID, filename, ext)
	url, err := s.presigner.PresignPut(ctx, key, contentType, MediaUploadTTL)
	if err != nil {
		return domain.MediaUpload{}, fmt.Errorf("service.MediaService.PresignUpload: %w", err)
	}
	return domain.MediaUpload{Key: key, URL: url, ExpiresAt: s.now().Add(MediaUploadTTL).UTC()}, nil
}

// MediaKey builds the object key for an upload:
// trips/<trip id>/<random>-<slugged file name><ext>.
func MediaKey(tripID uuid.UUID, filename, ext string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	name := slug.Normalize(base)
	if name == "" {
		name = "media"
	}
	return fmt.Sprintf("trips/%s/%s-%s%s", tripID, uuid.NewString()[:8], name, ext)
}
