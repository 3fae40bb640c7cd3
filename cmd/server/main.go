package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "scoreboard-service",
		Version: appVersion,
		Output:  logOutput(cfg),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

// logOutput keeps stdout for the board when the console owns the terminal.
func logOutput(cfg config.Config) io.Writer {
	if cfg.Scoreboard.ConsoleEnabled {
		return os.Stderr
	}
	return os.Stdout
}
