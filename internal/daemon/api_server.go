package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"murmur/internal/api"
	"murmur/internal/config"
	"murmur/internal/control"
	"murmur/internal/logging"
	"murmur/internal/queue"
	"murmur/internal/statusfeed"
	"murmur/internal/views"
)

type apiServer struct {
	bind      string
	logger    *slog.Logger
	store     *queue.Store
	inspector *views.Inspector
	mutator   *control.Mutator
	feed      *statusfeed.Feed
	upgrader  websocket.Upgrader

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, store *queue.Store, inspector *views.Inspector, mutator *control.Mutator, feed *statusfeed.Feed, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:      bind,
		logger:    logger,
		store:     store,
		inspector: inspector,
		mutator:   mutator,
		feed:      feed,
		upgrader: websocket.Upgrader{
			// The dashboard may be served from any origin; the API binds
			// to loopback by default.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/history", srv.handleHistory)
	mux.HandleFunc("/api/queue", srv.handleQueue)
	mux.HandleFunc("/api/queue/", srv.handleQueueItem)
	mux.HandleFunc("/api/control", srv.handleControl)
	mux.HandleFunc("/api/enqueue", srv.handleEnqueue)
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/ws", srv.handleSocket)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// addr returns the bound address once start has succeeded.
func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromSummary(s.inspector.Summarize()))
}

func (s *apiServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries := s.inspector.History(0)
	files := make([]api.HistoryFile, 0, len(entries))
	for _, entry := range entries {
		files = append(files, api.HistoryFile{
			Filename:  entry.ID,
			Timestamp: entry.ModifiedAt.UnixMilli(),
			Size:      entry.Size,
		})
	}
	s.writeJSON(w, http.StatusOK, api.HistoryResponse{Files: files})
}

func (s *apiServer) handleQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	locations := queue.Locations()
	if value := strings.TrimSpace(r.URL.Query().Get("location")); value != "" {
		location, err := queue.ParseLocation(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		locations = []queue.Location{location}
	}

	items := make([]api.QueueItem, 0)
	for _, location := range locations {
		for _, item := range s.inspector.List(location) {
			items = append(items, api.FromItem(item))
		}
	}
	s.writeJSON(w, http.StatusOK, api.QueueListResponse{Items: items})
}

func (s *apiServer) handleQueueItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/queue/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		s.writeError(w, http.StatusNotFound, "queue item not found")
		return
	}
	location, err := queue.ParseLocation(parts[0])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := s.store.Read(location, parts[1])
	if err != nil {
		if errors.Is(err, queue.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "queue item not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.ItemContentResponse{
		Filename: parts[1],
		Location: string(location),
		Content:  string(content),
	})
}

func (s *apiServer) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req api.ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeControlError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch strings.ToLower(strings.TrimSpace(req.Command)) {
	case "stop":
		count, err := s.mutator.CancelAll(r.Context())
		if err != nil {
			s.writeControlError(w, failureCode(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.ControlResponse{
			Status:  api.ResultSuccess,
			Message: fmt.Sprintf("Stopped %d files", count),
		})
	case "cancel":
		id, err := s.mutator.Cancel(r.Context(), req.File)
		if err != nil {
			s.writeControlError(w, failureCode(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.ControlResponse{
			Status:  api.ResultSuccess,
			Message: fmt.Sprintf("Cancelled %s", id),
		})
	case "replay":
		if strings.TrimSpace(req.File) == "" {
			s.writeControlError(w, http.StatusBadRequest, "replay requires a file")
			return
		}
		if err := s.mutator.Replay(r.Context(), req.File); err != nil {
			s.writeControlError(w, failureCode(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.ControlResponse{
			Status:  api.ResultSuccess,
			Message: fmt.Sprintf("Moved %s to todo", req.File),
		})
	case "pause":
		// Not implemented in the synthesis worker yet; accepted so
		// clients do not need to special-case it.
		s.writeJSON(w, http.StatusOK, api.ControlResponse{
			Status:  api.ResultSuccess,
			Message: "Pause not yet implemented",
		})
	case "resume":
		s.writeJSON(w, http.StatusOK, api.ControlResponse{
			Status:  api.ResultSuccess,
			Message: "Resume not yet implemented",
		})
	default:
		s.writeControlError(w, http.StatusBadRequest, "Unknown command")
	}
}

func (s *apiServer) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req api.EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeControlError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filename, err := s.mutator.Enqueue(r.Context(), req.Text)
	if err != nil {
		s.writeControlError(w, failureCode(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.EnqueueResponse{
		Status:   api.ResultSuccess,
		Filename: filename,
	})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "healthy"})
}

// handleSocket upgrades the connection and streams status snapshots until
// the observer disconnects or the feed shuts down. Client messages are
// consumed only as a liveness signal.
func (s *apiServer) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log().Warn("websocket upgrade failed", logging.Error(err))
		return
	}
	defer conn.Close()

	id, updates := s.feed.Subscribe()
	defer s.feed.Unsubscribe(id)

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

// failureCode maps queue errors onto HTTP status codes. Unrecognized
// errors are treated as internal failures.
func failureCode(err error) int {
	switch {
	case errors.Is(err, queue.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, queue.ErrConflict), errors.Is(err, queue.ErrNothingToCancel):
		return http.StatusConflict
	case errors.Is(err, queue.ErrEmptyContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeControlError reports command failures in the structured
// status/message shape dashboard clients expect.
func (s *apiServer) writeControlError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ControlResponse{Status: api.ResultError, Message: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
