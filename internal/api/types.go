package api

import (
	"time"

	"murmur/internal/queue"
	"murmur/internal/views"
)

// Result values used in command responses.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Status is the snapshot pushed to observers and served by /api/status.
// CurrentFile is null when nothing is processing.
type Status struct {
	Connected   bool    `json:"connected"`
	Processing  bool    `json:"processing"`
	CurrentFile *string `json:"current_file"`
	QueueCount  int     `json:"queue_count"`
}

// FromSummary converts an inspector summary into the wire snapshot.
func FromSummary(summary views.Summary) Status {
	status := Status{
		Connected:  true,
		Processing: summary.Processing,
		QueueCount: summary.QueuedCount,
	}
	if summary.CurrentItem != "" {
		current := summary.CurrentItem
		status.CurrentFile = &current
	}
	return status
}

// HistoryFile describes one completed item. Timestamp is milliseconds
// since the epoch.
type HistoryFile struct {
	Filename  string `json:"filename"`
	Timestamp int64  `json:"timestamp"`
	Size      int64  `json:"size"`
}

// HistoryResponse lists completed items newest first.
type HistoryResponse struct {
	Files []HistoryFile `json:"files"`
}

// QueueItem describes a queue entry in a transport-friendly format.
type QueueItem struct {
	Filename   string `json:"filename"`
	Location   string `json:"location"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// FromItem converts store metadata into the wire format.
func FromItem(item queue.Item) QueueItem {
	return QueueItem{
		Filename:   item.ID,
		Location:   string(item.Location),
		Size:       item.Size,
		ModifiedAt: item.ModifiedAt.UTC().Format(time.RFC3339),
	}
}

// QueueListResponse lists the items at one location.
type QueueListResponse struct {
	Items []QueueItem `json:"items"`
}

// ItemContentResponse carries the full content of one item.
type ItemContentResponse struct {
	Filename string `json:"filename"`
	Location string `json:"location"`
	Content  string `json:"content"`
}

// ControlRequest is the body of POST /api/control. File is optional and
// only meaningful for cancel and replay.
type ControlRequest struct {
	Command string `json:"command"`
	File    string `json:"file,omitempty"`
}

// ControlResponse reports the outcome of a control command.
type ControlResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EnqueueRequest is the body of POST /api/enqueue.
type EnqueueRequest struct {
	Text string `json:"text"`
}

// EnqueueResponse reports the filename created for enqueued text.
type EnqueueResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

// HealthResponse is served by /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
