package main

import (
	"log/slog"

	"murmur/internal/config"
	"murmur/internal/control"
	"murmur/internal/daemon"
	"murmur/internal/notifications"
	"murmur/internal/queue"
	"murmur/internal/statusfeed"
	"murmur/internal/views"
)

// buildDaemon wires the queue store, inspector, mutator, and status feed
// into a daemon ready to start.
func buildDaemon(cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, error) {
	store, err := queue.Open(cfg)
	if err != nil {
		return nil, err
	}

	inspector := views.NewInspector(store, cfg.Workflow.PreviewChars)
	notifier := notifications.NewService(cfg)
	mutator := control.NewMutator(store, inspector, notifier, logger)
	feed := statusfeed.New(inspector, cfg.StatusInterval(), logger)

	return daemon.New(cfg, store, inspector, mutator, feed, logger)
}
