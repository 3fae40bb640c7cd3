package testutil

import (
	"context"
	"testing"

	"github.com/preston-bernstein/scoreboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/store"
)

// NewScoreboardService starts a scoreboard service backed by an in-memory store and
// closes it when the test ends.
func NewScoreboardService(t testing.TB, rec *metrics.Recorder) *scoreboard.Service {
	t.Helper()
	logger, _ := NewBufferLogger()
	svc := scoreboard.NewService(context.Background(), store.NewMemoryStore(), logger, rec)
	t.Cleanup(svc.Close)
	return svc
}
