package views

import (
	"strings"
	"time"

	"murmur/internal/queue"
)

// TruncationMarker is appended to previews that filled the character cap.
const TruncationMarker = "..."

// Summary is a point-in-time snapshot of queue state.
type Summary struct {
	Processing  bool
	CurrentItem string
	QueuedCount int
}

// HistoryEntry describes one completed item, newest first.
type HistoryEntry struct {
	ID         string
	ModifiedAt time.Time
	Size       int64
	Preview    string
}

// Inspector computes derived views over a queue store without mutating it.
type Inspector struct {
	store        *queue.Store
	previewChars int
}

// NewInspector builds an inspector. previewChars caps history previews;
// non-positive values fall back to 50.
func NewInspector(store *queue.Store, previewChars int) *Inspector {
	if previewChars <= 0 {
		previewChars = 50
	}
	return &Inspector{store: store, previewChars: previewChars}
}

// Summarize reports whether synthesis is active, the current working item,
// and the todo backlog size. Errors degrade to an idle, empty summary.
func (i *Inspector) Summarize() Summary {
	var summary Summary

	working, err := i.store.List(queue.LocationWorking)
	if err == nil && len(working) > 0 {
		summary.Processing = true
		summary.CurrentItem = working[0].ID
	}

	if count, err := i.store.Count(queue.LocationTodo); err == nil {
		summary.QueuedCount = count
	}
	return summary
}

// Preview returns up to maxChars characters of an item's content with
// newlines collapsed to spaces. The truncation marker is appended whenever
// the read filled the cap exactly, so content of exactly maxChars also
// carries the marker. Read failures return an empty string.
func (i *Inspector) Preview(location queue.Location, id string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = i.previewChars
	}
	content, err := i.store.Read(location, id)
	if err != nil {
		return ""
	}

	runes := []rune(string(content))
	filled := len(runes) >= maxChars
	if filled {
		runes = runes[:maxChars]
	}
	preview := strings.ReplaceAll(strings.TrimSpace(string(runes)), "\n", " ")
	if filled {
		preview += TruncationMarker
	}
	return preview
}

// History lists completed items newest first, with previews. A
// non-positive limit returns everything. Errors degrade to an empty list.
func (i *Inspector) History(limit int) []HistoryEntry {
	items, err := i.store.List(queue.LocationDone)
	if err != nil {
		return nil
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	entries := make([]HistoryEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, HistoryEntry{
			ID:         item.ID,
			ModifiedAt: item.ModifiedAt,
			Size:       item.Size,
			Preview:    i.Preview(queue.LocationDone, item.ID, i.previewChars),
		})
	}
	return entries
}

// List returns item metadata for a location, or nil when the listing
// fails.
func (i *Inspector) List(location queue.Location) []queue.Item {
	items, err := i.store.List(location)
	if err != nil {
		return nil
	}
	return items
}
