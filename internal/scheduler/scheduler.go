package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
)

const (
	defaultInterval = time.Second
	maxFailures     = 3
)

// Ticker advances the scoreboard clocks by one second.
type Ticker interface {
	Tick(ctx context.Context) (match.TickResult, error)
}

// Scheduler drives a Ticker on a fixed interval. It never ticks on start:
// the first second elapses before the first tick.
type Scheduler struct {
	ticker   Ticker
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	clock    *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the tick loop.
type Status struct {
	Running             bool
	Ticks               int
	ConsecutiveFailures int
	LastError           string
	LastTick            time.Time
	LastEvent           match.TickResult
}

// IsReady reports whether the loop is running and not failing repeatedly.
func (s Status) IsReady() bool {
	return s.Running && s.ConsecutiveFailures < maxFailures
}

// New constructs a Scheduler with sane defaults.
func New(ticker Ticker, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		ticker:   ticker,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start begins ticking until the context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.clock = time.NewTicker(s.interval)
	s.setRunning(true)

	go func() {
		defer close(s.exited)
		defer s.setRunning(false)
		logging.Info(s.logger, "scheduler started", logging.FieldDurationMS, s.interval.Milliseconds())

		for {
			select {
			case <-ctx.Done():
				s.stopClock()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.done:
				s.stopClock()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.clock.C:
				s.tickOnce(ctx)
			}
		}
	}()
}

// Stop halts the tick loop and waits for it to exit or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-s.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) tickOnce(ctx context.Context) {
	start := time.Now()
	res, err := s.ticker.Tick(ctx)
	s.metrics.RecordTick(time.Since(start), err)
	if err != nil {
		logging.Error(s.logger, "scheduler tick failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		s.recordFailure(err)
		return
	}
	s.recordSuccess(res)
}

func (s *Scheduler) stopClock() {
	if s.clock != nil {
		s.clock.Stop()
	}
}

func (s *Scheduler) setRunning(running bool) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Running = running
}

func (s *Scheduler) recordSuccess(res match.TickResult) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Ticks++
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastTick = s.now()
	s.status.LastEvent = res
}

func (s *Scheduler) recordFailure(err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastTick = s.now()
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
