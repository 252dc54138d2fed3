package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"murmur/internal/config"
	"murmur/internal/control"
	"murmur/internal/logging"
	"murmur/internal/preflight"
	"murmur/internal/queue"
	"murmur/internal/statusfeed"
	"murmur/internal/views"
)

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *queue.Store
	inspector *views.Inspector
	mutator   *control.Mutator
	feed      *statusfeed.Feed
	api       *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, inspector *views.Inspector, mutator *control.Mutator, feed *statusfeed.Feed, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || inspector == nil || mutator == nil || feed == nil {
		return nil, errors.New("daemon requires config, store, inspector, mutator, and feed")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "murmurd.lock")
	return &Daemon{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		inspector: inspector,
		mutator:   mutator,
		feed:      feed,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, launches the status feed, and begins
// serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another murmur daemon instance is already running")
	}

	for _, result := range preflight.RunAll(d.cfg) {
		if !result.Passed {
			d.logger.Warn("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	srv, err := newAPIServer(d.cfg, d.store, d.inspector, d.mutator, d.feed, d.logger)
	if err != nil {
		_ = d.lock.Unlock()
		cancel()
		return err
	}
	d.api = srv
	if err := d.api.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return err
	}

	if d.cfg.Workflow.WatchFilesystem {
		for _, location := range queue.Locations() {
			d.feed.WatchDirs(d.store.Dir(location))
		}
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = d.feed.Run(runCtx)
	}()

	d.running.Store(true)
	d.logger.Info("murmur daemon started",
		logging.String("lock", d.lockPath),
		logging.String("data", d.store.Root()))
	return nil
}

// APIAddr returns the bound API address, or empty when the API server is
// disabled or not started. With a ":0" bind this reports the real port.
func (d *Daemon) APIAddr() string {
	return d.api.addr()
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	d.feed.Close()
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("murmur daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}
