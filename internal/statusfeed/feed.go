package statusfeed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"murmur/internal/api"
	"murmur/internal/logging"
	"murmur/internal/views"
)

// observerBuffer bounds how far an observer may fall behind before it is
// dropped from the set.
const observerBuffer = 8

// Feed polls the queue and fans status snapshots out to observers.
type Feed struct {
	inspector *views.Inspector
	logger    *slog.Logger
	interval  time.Duration
	watchDirs []string

	mu        sync.Mutex
	observers map[uuid.UUID]chan api.Status
	closed    bool
}

// New builds a feed broadcasting every interval. Intervals below one
// second are clamped to one second.
func New(inspector *views.Inspector, interval time.Duration, logger *slog.Logger) *Feed {
	if interval < time.Second {
		interval = time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Feed{
		inspector: inspector,
		logger:    logger.With(logging.String("component", "statusfeed")),
		interval:  interval,
		observers: make(map[uuid.UUID]chan api.Status),
	}
}

// WatchDirs enables filesystem-triggered broadcasts for the given
// directories. Must be called before Run.
func (f *Feed) WatchDirs(dirs ...string) {
	f.watchDirs = append(f.watchDirs, dirs...)
}

// Subscribe registers a new observer and delivers the current snapshot
// into its channel before returning. The channel is closed by
// Unsubscribe, by a stalled-observer eviction, or on feed shutdown.
func (f *Feed) Subscribe() (uuid.UUID, <-chan api.Status) {
	snapshot := f.Snapshot()

	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan api.Status, observerBuffer)
	if f.closed {
		close(ch)
		return uuid.Nil, ch
	}
	id := uuid.New()
	ch <- snapshot
	f.observers[id] = ch
	return id, ch
}

// Unsubscribe removes an observer and closes its channel.
func (f *Feed) Unsubscribe(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.observers[id]; ok {
		delete(f.observers, id)
		close(ch)
	}
}

// Observers returns the current observer count.
func (f *Feed) Observers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.observers)
}

// Snapshot derives the current wire snapshot from the queue.
func (f *Feed) Snapshot() api.Status {
	return api.FromSummary(f.inspector.Summarize())
}

// Broadcast delivers a fresh snapshot to every observer. Sends never
// block: an observer whose buffer is full has stopped draining and is
// removed so it cannot delay the others.
func (f *Feed) Broadcast() {
	snapshot := f.Snapshot()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	for id, ch := range f.observers {
		select {
		case ch <- snapshot:
		default:
			delete(f.observers, id)
			close(ch)
			f.logger.Warn("dropped stalled observer", logging.String("observer", id.String()))
		}
	}
}

// Run drives the periodic broadcast until ctx is cancelled, then shuts
// the feed down. When directory watching is configured, queue changes
// trigger an immediate extra broadcast.
func (f *Feed) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	var errs chan error
	watcher := f.openWatcher()
	if watcher != nil {
		defer watcher.Close()
		events = watcher.Events
		errs = watcher.Errors
	}

	for {
		select {
		case <-ctx.Done():
			f.Close()
			return nil
		case <-ticker.C:
			f.Broadcast()
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			f.Broadcast()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			f.logger.Warn("queue watch error", logging.Error(err))
		}
	}
}

// Close removes every observer and closes their channels. Further
// broadcasts and subscriptions become no-ops.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.observers {
		delete(f.observers, id)
		close(ch)
	}
}

func (f *Feed) openWatcher() *fsnotify.Watcher {
	if len(f.watchDirs) == 0 {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.logger.Warn("queue watch unavailable", logging.Error(err))
		return nil
	}
	for _, dir := range f.watchDirs {
		if err := watcher.Add(dir); err != nil {
			f.logger.Warn("queue watch skipped directory",
				logging.String("dir", dir), logging.Error(err))
		}
	}
	return watcher
}
