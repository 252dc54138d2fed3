package testsupport

import (
	"testing"

	"murmur/internal/config"
	"murmur/internal/queue"
)

// MustOpenStore opens a queue store for the test config, failing the test
// on error.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()
	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open queue store: %v", err)
	}
	return store
}
