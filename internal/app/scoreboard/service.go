package scoreboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
)

// ErrClosed is returned by Do and Tick once the service has stopped.
var ErrClosed = errors.New("scoreboard service closed")

const (
	inboxSize           = 64
	minSubscriberBuffer = 1
	clockGame           = "game"
	clockShot           = "shot"
)

// Store defines the contract for publishing and reading the latest snapshot.
type Store interface {
	Save(snap match.Snapshot) bool
	Latest() (match.Snapshot, bool)
}

type msg interface{ isMsg() }

type applyMsg struct {
	cmd   match.Command
	reply chan applyReply
}

type applyReply struct {
	snap match.Snapshot
	err  error
}

type tickMsg struct {
	reply chan match.TickResult
}

type joinMsg struct {
	id     string
	outbox chan match.Snapshot
	joined chan struct{}
}

type leaveMsg struct{ id string }

func (applyMsg) isMsg() {}
func (tickMsg) isMsg()  {}
func (joinMsg) isMsg()  {}
func (leaveMsg) isMsg() {}

// Service owns the match state. Every mutation and tick runs on one goroutine,
// so readers only ever see whole snapshots.
type Service struct {
	inbox   chan msg
	store   Store
	logger  *slog.Logger
	metrics *metrics.Recorder

	state      *match.State
	possession match.Possession
	version    int
	clients    map[string]chan match.Snapshot

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewService starts the state loop. It stops when ctx is cancelled or Close is called.
func NewService(ctx context.Context, store Store, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	loopCtx, cancel := context.WithCancel(ctx)

	state := match.New()
	// The board evaluates the timeout-minutes rule once on power-up.
	state.ApplyTimeoutRules()

	s := &Service{
		inbox:   make(chan msg, inboxSize),
		store:   store,
		logger:  logger,
		metrics: recorder,
		state:   state,
		clients: make(map[string]chan match.Snapshot),
		ctx:     loopCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.publish(nil)

	go s.loop()
	return s
}

// Do applies one command and returns the snapshot it produced.
func (s *Service) Do(ctx context.Context, cmd match.Command) (match.Snapshot, error) {
	reply := make(chan applyReply, 1)
	if err := s.send(ctx, applyMsg{cmd: cmd, reply: reply}); err != nil {
		return match.Snapshot{}, err
	}
	select {
	case r := <-reply:
		return r.snap, r.err
	case <-ctx.Done():
		return match.Snapshot{}, ctx.Err()
	case <-s.done:
		return match.Snapshot{}, ErrClosed
	}
}

// Tick advances the game clock then the shot clock by one second.
func (s *Service) Tick(ctx context.Context) (match.TickResult, error) {
	reply := make(chan match.TickResult, 1)
	if err := s.send(ctx, tickMsg{reply: reply}); err != nil {
		return match.TickResult{}, err
	}
	select {
	case r := <-reply:
		return r, nil
	case <-ctx.Done():
		return match.TickResult{}, ctx.Err()
	case <-s.done:
		return match.TickResult{}, ErrClosed
	}
}

// Subscribe registers a snapshot feed. The current snapshot is delivered first.
// The channel is closed on cancel, on Close, or when the subscriber falls
// buffer snapshots behind.
func (s *Service) Subscribe(buffer int) (string, <-chan match.Snapshot, func()) {
	if buffer < minSubscriberBuffer {
		buffer = minSubscriberBuffer
	}
	id := uuid.NewString()
	outbox := make(chan match.Snapshot, buffer)

	joined := make(chan struct{}, 1)
	if err := s.send(context.Background(), joinMsg{id: id, outbox: outbox, joined: joined}); err != nil {
		close(outbox)
		return id, outbox, func() {}
	}
	select {
	case <-joined:
	case <-s.done:
		// The loop exits after acknowledging, so a join it handled is visible here.
		select {
		case <-joined:
		default:
			close(outbox)
			return id, outbox, func() {}
		}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = s.send(context.Background(), leaveMsg{id: id})
		})
	}
	return id, outbox, cancel
}

// Snapshot returns the latest published snapshot without touching the state loop.
func (s *Service) Snapshot() match.Snapshot {
	if snap, ok := s.store.Latest(); ok {
		return snap
	}
	return match.NewSnapshot(0, match.New(), match.PossessionNone, nil)
}

// Close stops the loop and closes every subscriber channel.
func (s *Service) Close() {
	s.closeOnce.Do(s.cancel)
	<-s.done
}

// Done is closed once the loop has exited.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) send(ctx context.Context, m msg) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}

func (s *Service) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return
		case m := <-s.inbox:
			s.handle(m)
		}
	}
}

func (s *Service) handle(m msg) {
	switch v := m.(type) {
	case applyMsg:
		err := match.Apply(s.state, &s.possession, v.cmd)
		s.metrics.RecordCommand(string(v.cmd.Type), err)
		if err != nil {
			logging.Warn(s.logger, "command rejected",
				logging.FieldCommand, string(v.cmd.Type),
				logging.FieldSide, string(v.cmd.Side),
				logging.FieldSnapshot, s.version,
				"error", err,
			)
			v.reply <- applyReply{err: err}
			return
		}
		s.version++
		v.reply <- applyReply{snap: s.publish(nil)}

	case tickMsg:
		res := match.TickResult{
			Game: s.state.TickGameClock(),
			Shot: s.state.TickShotClock(),
		}
		s.recordEvent(clockGame, res.Game)
		s.recordEvent(clockShot, res.Shot)
		s.version++
		s.publish(&res)
		v.reply <- res

	case joinMsg:
		s.clients[v.id] = v.outbox
		snap, _ := s.store.Latest()
		v.outbox <- snap
		v.joined <- struct{}{}
		logging.Debug(s.logger, "subscriber joined", logging.FieldClientID, v.id)

	case leaveMsg:
		if ch, ok := s.clients[v.id]; ok {
			close(ch)
			delete(s.clients, v.id)
			logging.Debug(s.logger, "subscriber left", logging.FieldClientID, v.id)
		}
	}
}

func (s *Service) recordEvent(clock string, ev match.TickEvent) {
	if ev == match.EventNone {
		return
	}
	s.metrics.RecordClockEvent(clock, string(ev))
	args := []any{
		logging.FieldClock, clock,
		logging.FieldEvent, string(ev),
		logging.FieldPeriod, s.state.Period,
	}
	if ev == match.EventExpired {
		logging.Info(s.logger, "clock expired", args...)
		return
	}
	logging.Debug(s.logger, "shot clock warning", args...)
}

func (s *Service) publish(tick *match.TickResult) match.Snapshot {
	snap := match.NewSnapshot(s.version, s.state, s.possession, tick)
	s.store.Save(snap)
	s.broadcast(snap)
	return snap
}

func (s *Service) broadcast(snap match.Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// Slow subscriber: drop it rather than stall the clock.
			close(ch)
			delete(s.clients, id)
			logging.Warn(s.logger, "dropped slow subscriber", logging.FieldClientID, id)
		}
	}
}

func (s *Service) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
}
