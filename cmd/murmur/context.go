package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"murmur/internal/api"
	"murmur/internal/config"
	"murmur/internal/control"
	"murmur/internal/logging"
	"murmur/internal/notifications"
	"murmur/internal/queue"
	"murmur/internal/views"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withQueue resolves the daemon API when reachable, falling back to
// direct store access. Exactly one of client and store is non-nil in the
// callback: the daemon owns the queue while it runs.
func (c *commandContext) withQueue(ctx context.Context, fn func(client *api.Client, store *queue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	client, err := api.NewClient(cfg.Paths.APIBind)
	if err != nil {
		return err
	}
	if client != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Health(probeCtx)
		cancel()
		if err == nil {
			return fn(client, nil)
		}
		if !api.IsAPIUnavailable(err) {
			return err
		}
	}

	store, err := queue.Open(cfg)
	if err != nil {
		return err
	}
	return fn(nil, store)
}

// openStore opens the queue store directly, for read-only commands that
// do not need the daemon.
func (c *commandContext) openStore() (*queue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return queue.Open(cfg)
}

// inspector builds an inspector over a direct store.
func (c *commandContext) inspector() (*views.Inspector, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return nil, err
	}
	return views.NewInspector(store, cfg.Workflow.PreviewChars), nil
}

// mutator builds a mutator over a direct store for commands that run
// without a daemon.
func (c *commandContext) mutator(store *queue.Store) (*control.Mutator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	inspector := views.NewInspector(store, cfg.Workflow.PreviewChars)
	notifier := notifications.NewService(cfg)
	return control.NewMutator(store, inspector, notifier, logging.NewNop()), nil
}
