package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client for the server named by TEST_REDIS_URL, skipping
// the test when it is not set. The client is closed when the test finishes.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping integration test")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("testutil.NewRedis: parse url: %v", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("testutil.NewRedis: ping: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}
