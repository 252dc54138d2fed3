package control_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"murmur/internal/control"
	"murmur/internal/queue"
	"murmur/internal/testsupport"
	"murmur/internal/views"
)

func newMutator(t *testing.T) (*control.Mutator, *queue.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	inspector := views.NewInspector(store, cfg.Workflow.PreviewChars)
	return control.NewMutator(store, inspector, nil, nil), store
}

func TestEnqueueWritesToTodo(t *testing.T) {
	mutator, store := newMutator(t)

	id, err := mutator.Enqueue(context.Background(), "read this aloud")
	if err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if !strings.HasPrefix(id, "tts_") || !strings.HasSuffix(id, ".txt") {
		t.Fatalf("unexpected filename %q", id)
	}

	content, err := store.Read(queue.LocationTodo, id)
	if err != nil {
		t.Fatalf("read enqueued item: %v", err)
	}
	if string(content) != "read this aloud" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestEnqueueRejectsBlankContent(t *testing.T) {
	mutator, _ := newMutator(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := mutator.Enqueue(context.Background(), content)
		if !errors.Is(err, queue.ErrEmptyContent) {
			t.Fatalf("expected ErrEmptyContent for %q, got %v", content, err)
		}
	}
}

func TestIngestFileCopiesIntoTodo(t *testing.T) {
	mutator, store := newMutator(t)

	source := filepath.Join(t.TempDir(), "speech.txt")
	if err := os.WriteFile(source, []byte("from a file"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	id, err := mutator.IngestFile(context.Background(), source)
	if err != nil {
		t.Fatalf("IngestFile returned error: %v", err)
	}
	if id != "speech.txt" {
		t.Fatalf("expected base filename, got %q", id)
	}

	content, err := store.Read(queue.LocationTodo, id)
	if err != nil {
		t.Fatalf("read ingested item: %v", err)
	}
	if string(content) != "from a file" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestIngestFileRejectsDirectory(t *testing.T) {
	mutator, _ := newMutator(t)

	if _, err := mutator.IngestFile(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for directory source")
	}
}

func TestPromoteAndComplete(t *testing.T) {
	mutator, store := newMutator(t)
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_1.txt", "text")

	if err := mutator.Promote(context.Background(), "tts_1.txt"); err != nil {
		t.Fatalf("Promote returned error: %v", err)
	}
	if _, err := store.Stat(queue.LocationWorking, "tts_1.txt"); err != nil {
		t.Fatalf("item not in working: %v", err)
	}

	if err := mutator.Complete(context.Background(), "tts_1.txt"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if _, err := store.Stat(queue.LocationDone, "tts_1.txt"); err != nil {
		t.Fatalf("item not in done: %v", err)
	}
}

func TestCancelNamedItem(t *testing.T) {
	mutator, store := newMutator(t)
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_1.txt", "text")

	id, err := mutator.Cancel(context.Background(), "tts_1.txt")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if id != "tts_1.txt" {
		t.Fatalf("unexpected cancelled id %q", id)
	}
	if _, err := store.Stat(queue.LocationDone, "tts_1.txt"); err != nil {
		t.Fatalf("cancelled item not in done: %v", err)
	}
}

func TestCancelResolvesCurrentItem(t *testing.T) {
	mutator, store := newMutator(t)
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_2.txt", "b")
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_1.txt", "a")

	id, err := mutator.Cancel(context.Background(), "")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if id != "tts_1.txt" {
		t.Fatalf("expected the first working item, got %q", id)
	}
	if _, err := store.Stat(queue.LocationWorking, "tts_2.txt"); err != nil {
		t.Fatalf("other working item disturbed: %v", err)
	}
}

func TestCancelWithNothingProcessing(t *testing.T) {
	mutator, _ := newMutator(t)

	_, err := mutator.Cancel(context.Background(), "")
	if !errors.Is(err, queue.ErrNothingToCancel) {
		t.Fatalf("expected ErrNothingToCancel, got %v", err)
	}
}

func TestCancelMissingNamedItem(t *testing.T) {
	mutator, _ := newMutator(t)

	_, err := mutator.Cancel(context.Background(), "missing.txt")
	if !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelAllDrainsWorking(t *testing.T) {
	mutator, store := newMutator(t)
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_1.txt", "a")
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_2.txt", "b")
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_3.txt", "c")
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_4.txt", "d")

	moved, err := mutator.CancelAll(context.Background())
	if err != nil {
		t.Fatalf("CancelAll returned error: %v", err)
	}
	if moved != 3 {
		t.Fatalf("expected 3 moved, got %d", moved)
	}

	remaining, err := store.Count(queue.LocationWorking)
	if err != nil {
		t.Fatalf("count working: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("working not drained, %d left", remaining)
	}
	todo, err := store.Count(queue.LocationTodo)
	if err != nil {
		t.Fatalf("count todo: %v", err)
	}
	if todo != 1 {
		t.Fatalf("todo disturbed, got %d", todo)
	}
}

func TestCancelAllEmptyWorking(t *testing.T) {
	mutator, _ := newMutator(t)

	moved, err := mutator.CancelAll(context.Background())
	if err != nil {
		t.Fatalf("CancelAll returned error: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected 0 moved, got %d", moved)
	}
}

func TestReplayReturnsItemToTodo(t *testing.T) {
	mutator, store := newMutator(t)
	testsupport.SeedItem(t, store, queue.LocationDone, "tts_1.txt", "again")

	if err := mutator.Replay(context.Background(), "tts_1.txt"); err != nil {
		t.Fatalf("Replay returned error: %v", err)
	}

	content, err := store.Read(queue.LocationTodo, "tts_1.txt")
	if err != nil {
		t.Fatalf("read replayed item: %v", err)
	}
	if string(content) != "again" {
		t.Fatalf("content changed across replay: %q", content)
	}
}

func TestReplayMissingItem(t *testing.T) {
	mutator, _ := newMutator(t)

	err := mutator.Replay(context.Background(), "missing.txt")
	if !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplayConflictsWithPendingDuplicate(t *testing.T) {
	mutator, store := newMutator(t)
	testsupport.SeedItem(t, store, queue.LocationDone, "tts_1.txt", "done copy")
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_1.txt", "todo copy")

	err := mutator.Replay(context.Background(), "tts_1.txt")
	if !errors.Is(err, queue.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
