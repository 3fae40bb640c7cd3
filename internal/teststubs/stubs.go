package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
)

// StubScoreboard is a test double for the scoreboard service.
type StubScoreboard struct {
	Snap  match.Snapshot
	Err   error
	Calls atomic.Int32

	mu       sync.Mutex
	commands []match.Command
}

// Do records cmd and returns the configured snapshot or error.
func (s *StubScoreboard) Do(ctx context.Context, cmd match.Command) (match.Snapshot, error) {
	_ = ctx
	s.Calls.Add(1)
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
	if s.Err != nil {
		return match.Snapshot{}, s.Err
	}
	return s.Snap, nil
}

// Snapshot returns the configured snapshot.
func (s *StubScoreboard) Snapshot() match.Snapshot {
	return s.Snap
}

// Subscribe returns a feed primed with the configured snapshot.
func (s *StubScoreboard) Subscribe(buffer int) (string, <-chan match.Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan match.Snapshot, buffer)
	ch <- s.Snap
	var once sync.Once
	return "stub", ch, func() { once.Do(func() { close(ch) }) }
}

// Commands returns the commands received so far.
func (s *StubScoreboard) Commands() []match.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]match.Command, len(s.commands))
	copy(out, s.commands)
	return out
}

// StubTicker is a test double for scheduler.Ticker.
type StubTicker struct {
	Result match.TickResult
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Tick returns the configured result and error while tracking calls.
func (s *StubTicker) Tick(ctx context.Context) (match.TickResult, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Result, s.Err
}
