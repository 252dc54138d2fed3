package views_test

import (
	"strings"
	"testing"
	"time"

	"murmur/internal/queue"
	"murmur/internal/testsupport"
	"murmur/internal/views"
)

func TestSummarizeIdle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	inspector := views.NewInspector(store, cfg.Workflow.PreviewChars)

	summary := inspector.Summarize()
	if summary.Processing {
		t.Fatal("expected idle summary")
	}
	if summary.CurrentItem != "" {
		t.Fatalf("expected no current item, got %q", summary.CurrentItem)
	}
	if summary.QueuedCount != 0 {
		t.Fatalf("expected empty backlog, got %d", summary.QueuedCount)
	}
}

func TestSummarizeActive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_2.txt", "b")
	testsupport.SeedItem(t, store, queue.LocationWorking, "tts_1.txt", "a")
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_3.txt", "c")
	testsupport.SeedItem(t, store, queue.LocationTodo, "tts_4.txt", "d")
	inspector := views.NewInspector(store, cfg.Workflow.PreviewChars)

	summary := inspector.Summarize()
	if !summary.Processing {
		t.Fatal("expected processing summary")
	}
	if summary.CurrentItem != "tts_1.txt" {
		t.Fatalf("expected first working item, got %q", summary.CurrentItem)
	}
	if summary.QueuedCount != 2 {
		t.Fatalf("expected 2 queued, got %d", summary.QueuedCount)
	}
}

func TestPreviewShortContent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationDone, "tts_1.txt", "short text")
	inspector := views.NewInspector(store, 50)

	preview := inspector.Preview(queue.LocationDone, "tts_1.txt", 50)
	if preview != "short text" {
		t.Fatalf("unexpected preview %q", preview)
	}
}

func TestPreviewTruncatesLongContent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationDone, "tts_1.txt", strings.Repeat("a", 80))
	inspector := views.NewInspector(store, 50)

	preview := inspector.Preview(queue.LocationDone, "tts_1.txt", 50)
	want := strings.Repeat("a", 50) + views.TruncationMarker
	if preview != want {
		t.Fatalf("expected %q, got %q", want, preview)
	}
}

func TestPreviewMarksExactCapContent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationDone, "tts_1.txt", strings.Repeat("a", 50))
	inspector := views.NewInspector(store, 50)

	preview := inspector.Preview(queue.LocationDone, "tts_1.txt", 50)
	if !strings.HasSuffix(preview, views.TruncationMarker) {
		t.Fatalf("content at the cap should carry the marker, got %q", preview)
	}
}

func TestPreviewCollapsesNewlines(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationDone, "tts_1.txt", "line one\nline two\n")
	inspector := views.NewInspector(store, 50)

	preview := inspector.Preview(queue.LocationDone, "tts_1.txt", 50)
	if preview != "line one line two" {
		t.Fatalf("unexpected preview %q", preview)
	}
}

func TestPreviewMissingItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	inspector := views.NewInspector(store, 50)

	if preview := inspector.Preview(queue.LocationDone, "missing.txt", 50); preview != "" {
		t.Fatalf("expected empty preview, got %q", preview)
	}
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	base := time.Now().Add(-time.Hour)
	testsupport.SeedItemAt(t, store, queue.LocationDone, "first.txt", "first content", base)
	testsupport.SeedItemAt(t, store, queue.LocationDone, "second.txt", "second content", base.Add(time.Minute))
	testsupport.SeedItemAt(t, store, queue.LocationDone, "third.txt", "third content", base.Add(2*time.Minute))
	inspector := views.NewInspector(store, 50)

	entries := inspector.History(2)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "third.txt" || entries[1].ID != "second.txt" {
		t.Fatalf("unexpected order: %q, %q", entries[0].ID, entries[1].ID)
	}
	if entries[0].Preview != "third content" {
		t.Fatalf("unexpected preview %q", entries[0].Preview)
	}
}

func TestHistoryUnlimited(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedItem(t, store, queue.LocationDone, "a.txt", "a")
	testsupport.SeedItem(t, store, queue.LocationDone, "b.txt", "b")
	inspector := views.NewInspector(store, 50)

	if entries := inspector.History(0); len(entries) != 2 {
		t.Fatalf("expected all entries, got %d", len(entries))
	}
}
