package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"murmur/internal/queue"
)

// SeedItem writes an item file directly into a queue directory, bypassing
// Store.Create, for tests that need precise initial state.
func SeedItem(t testing.TB, store *queue.Store, location queue.Location, id, content string) {
	t.Helper()
	path := filepath.Join(store.Dir(location), id)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed %s/%s: %v", location, id, err)
	}
}

// SeedItemAt seeds an item and forces its modification time, useful for
// deterministic done-history ordering.
func SeedItemAt(t testing.TB, store *queue.Store, location queue.Location, id, content string, modified time.Time) {
	t.Helper()
	SeedItem(t, store, location, id, content)
	path := filepath.Join(store.Dir(location), id)
	if err := os.Chtimes(path, modified, modified); err != nil {
		t.Fatalf("set mtime %s/%s: %v", location, id, err)
	}
}
