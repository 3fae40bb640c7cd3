package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const bearerPrefix = "Bearer "

// ControlAuth guards mutating endpoints. With an empty token every caller may
// control the board; otherwise callers must present it as a bearer token.
type ControlAuth struct {
	token  string
	logger *slog.Logger
}

// NewControlAuth constructs a ControlAuth for token.
func NewControlAuth(token string, logger *slog.Logger) *ControlAuth {
	return &ControlAuth{token: strings.TrimSpace(token), logger: logger}
}

// Enabled reports whether a control token is configured.
func (a *ControlAuth) Enabled() bool {
	return a != nil && a.token != ""
}

// Authorized checks the Authorization header. WebSocket clients, which cannot
// set headers from a browser, may pass the token as the "token" query parameter.
func (a *ControlAuth) Authorized(r *http.Request) bool {
	if !a.Enabled() {
		return true
	}
	presented := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		presented = strings.TrimPrefix(header, bearerPrefix)
	} else if r.URL != nil {
		presented = r.URL.Query().Get("token")
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(a.token)) == 1
}

// Allow writes 401 and returns false when r is not authorized.
func (a *ControlAuth) Allow(w http.ResponseWriter, r *http.Request) bool {
	if a.Authorized(r) {
		return true
	}
	logging.Warn(logging.FromContext(r.Context(), a.logger), "control unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", a.logger)
	return false
}
