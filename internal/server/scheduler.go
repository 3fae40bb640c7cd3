package server

import (
	"context"

	"github.com/preston-bernstein/scoreboard-service/internal/scheduler"
)

// Scheduler defines the minimal tick driver behavior needed by the server.
type Scheduler interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() scheduler.Status
}
