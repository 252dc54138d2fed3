package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAPIUnavailable indicates the daemon API could not be reached at all.
// CLI commands fall back to direct store access when they see it.
var ErrAPIUnavailable = errors.New("daemon API unavailable")

// IsAPIUnavailable reports whether err stems from an unreachable daemon.
func IsAPIUnavailable(err error) bool {
	return errors.Is(err, ErrAPIUnavailable)
}

// Client talks to a running murmur daemon over HTTP.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a client for the given bind address ("host:port" or a
// full URL). An empty bind returns nil without error.
func NewClient(bind string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, nil
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, err
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// SocketURL returns the WebSocket endpoint for the status feed.
func (c *Client) SocketURL() string {
	socket := *c.base
	switch socket.Scheme {
	case "https":
		socket.Scheme = "wss"
	default:
		socket.Scheme = "ws"
	}
	socket.Path = "/ws"
	return socket.String()
}

// Status fetches the current queue snapshot.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var out Status
	err := c.get(ctx, "/api/status", nil, &out)
	return out, err
}

// History fetches the completed-item list, newest first.
func (c *Client) History(ctx context.Context) (HistoryResponse, error) {
	var out HistoryResponse
	err := c.get(ctx, "/api/history", nil, &out)
	return out, err
}

// Queue fetches item metadata for one location.
func (c *Client) Queue(ctx context.Context, location string) (QueueListResponse, error) {
	var out QueueListResponse
	err := c.get(ctx, "/api/queue", url.Values{"location": []string{location}}, &out)
	return out, err
}

// Show fetches the full content of one item.
func (c *Client) Show(ctx context.Context, location, id string) (ItemContentResponse, error) {
	var out ItemContentResponse
	err := c.get(ctx, "/api/queue/"+url.PathEscape(location)+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Enqueue submits new text for synthesis.
func (c *Client) Enqueue(ctx context.Context, text string) (EnqueueResponse, error) {
	var out EnqueueResponse
	err := c.post(ctx, "/api/enqueue", EnqueueRequest{Text: text}, &out)
	return out, err
}

// Control issues a control command (stop, cancel, replay, pause, resume).
func (c *Client) Control(ctx context.Context, command, file string) (ControlResponse, error) {
	var out ControlResponse
	err := c.post(ctx, "/api/control", ControlRequest{Command: command, File: file}, &out)
	return out, err
}

// Health probes the daemon health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out HealthResponse
	return c.get(ctx, "/api/health", nil, &out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil {
		return ErrAPIUnavailable
	}

	endpoint := *c.base
	endpoint.Path = path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New(extractErrorMessage(payload, resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractErrorMessage(payload []byte, statusCode int) string {
	var control ControlResponse
	if err := json.Unmarshal(payload, &control); err == nil && control.Message != "" {
		return control.Message
	}
	var generic map[string]string
	if err := json.Unmarshal(payload, &generic); err == nil && generic["error"] != "" {
		return generic["error"]
	}
	return fmt.Sprintf("daemon returned HTTP %d", statusCode)
}
