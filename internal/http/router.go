package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/scoreboard-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/scoreboard", handler.Scoreboard)
	mux.HandleFunc("/scoreboard/commands", handler.Commands)
	mux.HandleFunc("/scoreboard/keys", handler.Keys)
	mux.HandleFunc("/scoreboard/keys/", handler.Key)
	mux.HandleFunc("/scoreboard/settings", handler.Settings)
	mux.HandleFunc("/scoreboard/stream", handler.Stream)
	return mux
}
