package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"murmur/internal/logging"
	"murmur/internal/notifications"
	"murmur/internal/queue"
	"murmur/internal/views"
)

// Mutator performs queue state transitions on behalf of the operator and
// the synthesis worker.
type Mutator struct {
	store    *queue.Store
	views    *views.Inspector
	notifier notifications.Service
	logger   *slog.Logger
}

// NewMutator wires a mutator. logger and notifier may be nil.
func NewMutator(store *queue.Store, inspector *views.Inspector, notifier notifications.Service, logger *slog.Logger) *Mutator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewServiceNoop()
	}
	return &Mutator{
		store:    store,
		views:    inspector,
		notifier: notifier,
		logger:   logger.With(logging.String("component", "mutator")),
	}
}

// Enqueue writes new text content into todo and returns the filename
// used. Blank content (after trimming) is a hard precondition failure.
func (m *Mutator) Enqueue(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", queue.ErrEmptyContent
	}

	id := fmt.Sprintf("tts_%d.txt", time.Now().Unix())
	used, err := m.store.Create(queue.LocationTodo, id, []byte(content))
	if err != nil {
		m.notifyError(ctx, err, "enqueue")
		return "", err
	}

	m.logger.Info("enqueued item", logging.String("file", used), logging.Int("bytes", len(content)))
	if err := m.notifier.NotifyEnqueued(ctx, used); err != nil {
		m.logger.Warn("enqueue notification failed", logging.Error(err))
	}
	return used, nil
}

// IngestFile copies an existing text file into todo, disambiguating the
// filename on collision, and returns the filename used.
func (m *Mutator) IngestFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat source file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s is a directory", path)
	}

	used, err := m.store.Import(queue.LocationTodo, filepath.Base(path), path)
	if err != nil {
		m.notifyError(ctx, err, "ingest")
		return "", err
	}

	m.logger.Info("ingested file", logging.String("file", used), logging.String("source", path))
	if err := m.notifier.NotifyEnqueued(ctx, used); err != nil {
		m.logger.Warn("ingest notification failed", logging.Error(err))
	}
	return used, nil
}

// Promote moves an item from todo to working. This is the worker's move;
// it lives here so the move contract stays in one place.
func (m *Mutator) Promote(ctx context.Context, id string) error {
	if err := m.store.Move(id, queue.LocationTodo, queue.LocationWorking); err != nil {
		return err
	}
	m.logger.Info("promoted item", logging.String("file", id))
	return nil
}

// Complete moves an item from working to done after successful synthesis.
func (m *Mutator) Complete(ctx context.Context, id string) error {
	if err := m.store.Move(id, queue.LocationWorking, queue.LocationDone); err != nil {
		return err
	}
	m.logger.Info("completed item", logging.String("file", id))
	return nil
}

// Cancel moves an item from working to done without synthesis. An empty
// id resolves to the current working item at call time; when nothing is
// processing the call fails with NothingToCancel.
func (m *Mutator) Cancel(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		summary := m.views.Summarize()
		if !summary.Processing {
			return "", queue.ErrNothingToCancel
		}
		id = summary.CurrentItem
	}

	if err := m.store.Move(id, queue.LocationWorking, queue.LocationDone); err != nil {
		m.notifyError(ctx, err, "cancel")
		return "", err
	}

	m.logger.Info("cancelled item", logging.String("file", id))
	if err := m.notifier.NotifyCancelled(ctx, id); err != nil {
		m.logger.Warn("cancel notification failed", logging.Error(err))
	}
	return id, nil
}

// CancelAll moves every item currently in working to done and reports the
// count actually moved. The working set may shrink or grow mid-loop when
// the worker races a promote; items that vanish are skipped rather than
// failing the bulk stop.
func (m *Mutator) CancelAll(ctx context.Context) (int, error) {
	items, err := m.store.List(queue.LocationWorking)
	if err != nil {
		m.notifyError(ctx, err, "stop")
		return 0, err
	}

	moved := 0
	for _, item := range items {
		if err := m.store.Move(item.ID, queue.LocationWorking, queue.LocationDone); err != nil {
			if errors.Is(err, queue.ErrNotFound) {
				continue
			}
			m.notifyError(ctx, err, "stop")
			return moved, err
		}
		moved++
	}

	m.logger.Info("stopped processing", logging.Int("moved", moved))
	if moved > 0 {
		if err := m.notifier.NotifyStopped(ctx, moved); err != nil {
			m.logger.Warn("stop notification failed", logging.Error(err))
		}
	}
	return moved, nil
}

// Replay moves a completed item from done back to todo unchanged.
func (m *Mutator) Replay(ctx context.Context, id string) error {
	if err := m.store.Move(id, queue.LocationDone, queue.LocationTodo); err != nil {
		m.notifyError(ctx, err, "replay")
		return err
	}

	m.logger.Info("replayed item", logging.String("file", id))
	if err := m.notifier.NotifyReplayed(ctx, id); err != nil {
		m.logger.Warn("replay notification failed", logging.Error(err))
	}
	return nil
}

func (m *Mutator) notifyError(ctx context.Context, err error, operation string) {
	if notifyErr := m.notifier.NotifyError(ctx, err, operation); notifyErr != nil {
		m.logger.Warn("error notification failed", logging.Error(notifyErr))
	}
}
