package storage_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/service"
	"github.com/pkordes/tripjournal/internal/storage"
)

var _ service.Presigner = (*storage.S3)(nil)

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := storage.NewS3(context.Background(), storage.S3Config{Region: "us-east-1"}, nil)
	require.Error(t, err)
}

// Presigning is a local computation, so no S3 endpoint needs to be reachable.
func TestS3_PresignPut_PathStyleEndpoint(t *testing.T) {
	s, err := storage.NewS3(context.Background(), storage.S3Config{
		Bucket:          "trip-media",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
	}, nil)
	require.NoError(t, err)

	raw, err := s.PresignPut(context.Background(), "trips/abc/1234-beach.jpg", "image/jpeg", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/trip-media/trips/abc/1234-beach.jpg", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-Credential"), "minio/")
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
}
