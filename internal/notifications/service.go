package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"murmur/internal/config"
)

const userAgent = "Murmur/0.1.0"

// Service defines the notification surface exposed to queue components.
type Service interface {
	NotifyEnqueued(ctx context.Context, filename string) error
	NotifyCancelled(ctx context.Context, filename string) error
	NotifyStopped(ctx context.Context, count int) error
	NotifyReplayed(ctx context.Context, filename string) error
	NotifyError(ctx context.Context, err error, operation string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		settings: cfg.Notifications,
	}
}

// NewServiceNoop returns a service that drops every notification.
func NewServiceNoop() Service {
	return noopService{}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	settings config.Notifications
}

func (n *ntfyService) NotifyEnqueued(ctx context.Context, filename string) error {
	if !n.settings.Enqueue {
		return nil
	}
	data := payload{
		title:   "Murmur - Queued",
		message: fmt.Sprintf("Queued for synthesis: %s", filename),
		tags:    []string{"murmur", "queue", "enqueued"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyCancelled(ctx context.Context, filename string) error {
	if !n.settings.Cancel {
		return nil
	}
	data := payload{
		title:   "Murmur - Cancelled",
		message: fmt.Sprintf("Cancelled: %s (moved to done)", filename),
		tags:    []string{"murmur", "queue", "cancelled"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyStopped(ctx context.Context, count int) error {
	if !n.settings.Cancel {
		return nil
	}
	data := payload{
		title:    "Murmur - Stopped",
		message:  fmt.Sprintf("Emergency stop moved %d item(s) to done", count),
		tags:     []string{"murmur", "queue", "stopped"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReplayed(ctx context.Context, filename string) error {
	if !n.settings.Replay {
		return nil
	}
	data := payload{
		title:   "Murmur - Replayed",
		message: fmt.Sprintf("Replayed to queue: %s", filename),
		tags:    []string{"murmur", "queue", "replayed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, operation string) error {
	if !n.settings.Errors || err == nil {
		return nil
	}
	data := payload{
		title:    "Murmur - Error",
		message:  fmt.Sprintf("%s failed: %v", operation, err),
		tags:     []string{"murmur", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Murmur - Test",
		message: "Test notification from murmur",
		tags:    []string{"murmur", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyEnqueued(context.Context, string) error     { return nil }
func (noopService) NotifyCancelled(context.Context, string) error    { return nil }
func (noopService) NotifyStopped(context.Context, int) error         { return nil }
func (noopService) NotifyReplayed(context.Context, string) error     { return nil }
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
