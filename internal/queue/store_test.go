package queue_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"murmur/internal/queue"
	"murmur/internal/testsupport"
)

func TestOpenCreatesQueueDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	for _, location := range queue.Locations() {
		info, err := os.Stat(store.Dir(location))
		if err != nil {
			t.Fatalf("stat %s directory: %v", location, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", store.Dir(location))
		}
	}
}

func TestCreateAndRead(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	id, err := store.Create(queue.LocationTodo, "tts_100.txt", []byte("hello world"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != "tts_100.txt" {
		t.Fatalf("expected requested id back, got %q", id)
	}

	content, err := store.Read(queue.LocationTodo, id)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(content) != "hello world" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestCreateCollisionAddsSuffix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationTodo, "note.txt", "first")

	id, err := store.Create(queue.LocationTodo, "note.txt", []byte("second"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "note.txt" {
		t.Fatalf("expected a disambiguated id, got the original")
	}
	if !strings.HasPrefix(id, "note_") || !strings.HasSuffix(id, ".txt") {
		t.Fatalf("suffix should sit before the extension, got %q", id)
	}

	original, err := store.Read(queue.LocationTodo, "note.txt")
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	if string(original) != "first" {
		t.Fatalf("original item clobbered: %q", original)
	}
}

func TestCreateRejectsInvalidIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	for _, id := range []string{"", "  ", ".", "..", "a/b.txt", `a\b.txt`, "nul\x00.txt"} {
		if _, err := store.Create(queue.LocationTodo, id, []byte("x")); err == nil {
			t.Fatalf("expected error for id %q", id)
		}
	}
}

func TestReadMissingItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.Read(queue.LocationTodo, "missing.txt")
	if !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatReturnsMetadata(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_1.txt", "some text")

	item, err := store.Stat(queue.LocationWorking, "tts_1.txt")
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if item.ID != "tts_1.txt" || item.Location != queue.LocationWorking {
		t.Fatalf("unexpected item identity: %+v", item)
	}
	if item.Size != int64(len("some text")) {
		t.Fatalf("unexpected size %d", item.Size)
	}
}

func TestListOrdersTodoAlphabetically(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationTodo, "b.txt", "b")
	testsupport.SeedItem(t, store, queue.LocationTodo, "a.txt", "a")
	testsupport.SeedItem(t, store, queue.LocationTodo, "c.txt", "c")

	items, err := store.List(queue.LocationTodo)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := ids(items)
	want := []string{"a.txt", "b.txt", "c.txt"}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListOrdersDoneNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	base := time.Now().Add(-time.Hour)
	testsupport.SeedItemAt(t, store, queue.LocationDone, "oldest.txt", "1", base)
	testsupport.SeedItemAt(t, store, queue.LocationDone, "newest.txt", "3", base.Add(2*time.Minute))
	testsupport.SeedItemAt(t, store, queue.LocationDone, "middle.txt", "2", base.Add(time.Minute))

	items, err := store.List(queue.LocationDone)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := ids(items)
	want := []string{"newest.txt", "middle.txt", "oldest.txt"}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCountSkipsSubdirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationTodo, "a.txt", "a")
	if err := os.Mkdir(filepath.Join(store.Dir(queue.LocationTodo), "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	count, err := store.Count(queue.LocationTodo)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item, got %d", count)
	}
}

func TestMoveRelocatesItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_1.txt", "payload")

	if err := store.Move("tts_1.txt", queue.LocationTodo, queue.LocationWorking); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	if _, err := store.Stat(queue.LocationTodo, "tts_1.txt"); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected item gone from todo, got %v", err)
	}
	content, err := store.Read(queue.LocationWorking, "tts_1.txt")
	if err != nil {
		t.Fatalf("read after move: %v", err)
	}
	if string(content) != "payload" {
		t.Fatalf("content changed across move: %q", content)
	}
}

func TestMoveMissingSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.Move("missing.txt", queue.LocationTodo, queue.LocationWorking)
	if !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveRefusesToClobber(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_1.txt", "src")
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_1.txt", "dst")

	err := store.Move("tts_1.txt", queue.LocationTodo, queue.LocationWorking)
	if !errors.Is(err, queue.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	content, err := store.Read(queue.LocationWorking, "tts_1.txt")
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(content) != "dst" {
		t.Fatalf("destination clobbered: %q", content)
	}
}

func TestImportCopiesExternalFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	source := filepath.Join(t.TempDir(), "speech.txt")
	if err := os.WriteFile(source, []byte("imported text"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	id, err := store.Import(queue.LocationTodo, "speech.txt", source)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	content, err := store.Read(queue.LocationTodo, id)
	if err != nil {
		t.Fatalf("read imported item: %v", err)
	}
	if string(content) != "imported text" {
		t.Fatalf("unexpected content %q", content)
	}

	// The source file stays in place.
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source removed by import: %v", err)
	}
}

func TestImportCollisionAddsSuffix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationTodo, "speech.txt", "existing")

	source := filepath.Join(t.TempDir(), "speech.txt")
	if err := os.WriteFile(source, []byte("incoming"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	id, err := store.Import(queue.LocationTodo, "speech.txt", source)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if id == "speech.txt" {
		t.Fatalf("expected a disambiguated id")
	}
	if !strings.HasPrefix(id, "speech_") || !strings.HasSuffix(id, ".txt") {
		t.Fatalf("suffix should sit before the extension, got %q", id)
	}
}

func TestParseLocation(t *testing.T) {
	for _, value := range []string{"todo", "Working", " DONE "} {
		if _, err := queue.ParseLocation(value); err != nil {
			t.Fatalf("ParseLocation(%q) returned error: %v", value, err)
		}
	}
	if _, err := queue.ParseLocation("archive"); err == nil {
		t.Fatal("expected error for unknown location")
	}
}

func ids(items []queue.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
