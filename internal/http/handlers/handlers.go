package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
	"github.com/preston-bernstein/scoreboard-service/internal/keymap"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/scheduler"
)

const (
	maxBodyBytes        = 1 << 16
	defaultStreamBuffer = 16
	pathScoreboard      = "/scoreboard"
	pathCommands        = "/scoreboard/commands"
	pathKeys            = "/scoreboard/keys"
	pathSettings        = "/scoreboard/settings"
	pathStream          = "/scoreboard/stream"
)

// Scoreboard is the slice of the scoreboard service the HTTP surface needs.
type Scoreboard interface {
	Do(ctx context.Context, cmd match.Command) (match.Snapshot, error)
	Snapshot() match.Snapshot
	Subscribe(buffer int) (string, <-chan match.Snapshot, func())
}

// Options configure the optional parts of Handler.
type Options struct {
	ControlToken     string
	SubscriberBuffer int
	Metrics          *metrics.Recorder
}

// Handler wires HTTP routes to the scoreboard service.
type Handler struct {
	svc      Scoreboard
	logger   *slog.Logger
	statusFn func() scheduler.Status
	auth     *ControlAuth
	buffer   int
	metrics  *metrics.Recorder
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc Scoreboard, logger *slog.Logger, statusFn func() scheduler.Status, opts Options) *Handler {
	buffer := opts.SubscriberBuffer
	if buffer <= 0 {
		buffer = defaultStreamBuffer
	}
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
		auth:     NewControlAuth(opts.ControlToken, logger),
		buffer:   buffer,
		metrics:  opts.Metrics,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == pathScoreboard:
		h.Scoreboard(w, r)
	case r.URL.Path == pathCommands:
		h.Commands(w, r)
	case r.URL.Path == pathKeys:
		h.Keys(w, r)
	case strings.HasPrefix(r.URL.Path, pathKeys+"/"):
		h.Key(w, r)
	case r.URL.Path == pathSettings:
		h.Settings(w, r)
	case r.URL.Path == pathStream:
		h.Stream(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the clock scheduler is ticking.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Scoreboard returns the latest snapshot.
func (h *Handler) Scoreboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.svc.Snapshot(), h.logger)
}

// Commands applies one JSON-encoded command.
func (h *Handler) Commands(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	if !h.auth.Allow(w, r) {
		return
	}
	var cmd match.Command
	if err := decodeBody(w, r, &cmd); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid command body", h.logger)
		return
	}
	h.apply(w, r, cmd)
}

// Keys lists the hotkey bindings.
func (h *Handler) Keys(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, keymap.Bindings(), h.logger)
}

// Key presses one hotkey: POST /scoreboard/keys/{key}.
func (h *Handler) Key(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	if !h.auth.Allow(w, r) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, pathKeys+"/")
	key, err := url.PathUnescape(raw)
	if err != nil || key == "" || strings.Contains(key, "/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid key", h.logger)
		return
	}
	cmd, ok := keymap.Lookup(key)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "unknown key", h.logger)
		return
	}
	logging.Debug(logging.FromContext(r.Context(), h.logger), "hotkey", logging.FieldKey, keymap.Normalize(key))
	h.apply(w, r, cmd)
}

// Settings reads (GET) or submits (PUT) the edit form.
func (h *Handler) Settings(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		snap := h.svc.Snapshot()
		writeJSON(w, nethttp.StatusOK, match.SettingsFrom(&snap.State), h.logger)
	case nethttp.MethodPut:
		if !h.auth.Allow(w, r) {
			return
		}
		var form match.Settings
		if err := decodeBody(w, r, &form); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid settings body", h.logger)
			return
		}
		h.apply(w, r, match.Command{Type: match.CmdConfigure, Settings: &form})
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) apply(w nethttp.ResponseWriter, r *nethttp.Request, cmd match.Command) {
	snap, err := h.svc.Do(r.Context(), cmd)
	if err != nil {
		status, msg := commandErrorStatus(err)
		logging.Warn(logging.FromContext(r.Context(), h.logger), "command failed",
			logging.FieldCommand, string(cmd.Type),
			logging.FieldStatusCode, status,
			"error", err,
		)
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// commandErrorStatus maps service errors onto HTTP status codes and client-safe messages.
func commandErrorStatus(err error) (int, string) {
	if fe, ok := match.AsFormatError(err); ok {
		return nethttp.StatusBadRequest, fe.Error()
	}
	switch {
	case errors.Is(err, match.ErrInvalidSide), errors.Is(err, match.ErrUnsupportedCommand):
		return nethttp.StatusBadRequest, err.Error()
	case errors.Is(err, scoreboard.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return nethttp.StatusServiceUnavailable, "scoreboard unavailable"
	default:
		return nethttp.StatusInternalServerError, "internal error"
	}
}

func decodeBody(w nethttp.ResponseWriter, r *nethttp.Request, dest any) error {
	body := nethttp.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func requireMethod(w nethttp.ResponseWriter, r *nethttp.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}
