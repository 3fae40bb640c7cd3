package metrics

import (
	"sync"
	"time"
)

type commandStats struct {
	calls  int
	errors int
}

// Recorder captures lightweight, in-memory counters about scoreboard activity
// and forwards them to OpenTelemetry instruments when configured.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	mu              sync.Mutex
	commands        map[string]*commandStats
	clockEvents     map[string]int
	ticks           int
	tickErrors      int
	lastTickLatency time.Duration
	streamClients   int
	otel            *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		commands:    make(map[string]*commandStats),
		clockEvents: make(map[string]int),
		otel:        otel,
	}
}

// RecordCommand counts one applied command and whether it was rejected.
func (r *Recorder) RecordCommand(command string, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.commands[command]
	if !ok {
		stats = &commandStats{}
		r.commands[command] = stats
	}
	stats.calls++
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCommand(command, err)
	}
}

// RecordTick tracks one scheduler tick and its latency.
func (r *Recorder) RecordTick(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ticks++
	r.lastTickLatency = duration
	if err != nil {
		r.tickErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTick(duration, err)
	}
}

// RecordClockEvent counts a warning or expiry emitted by the game or shot clock.
func (r *Recorder) RecordClockEvent(clock, event string) {
	if r == nil || event == "" {
		return
	}

	r.mu.Lock()
	r.clockEvents[clock+"/"+event]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordClockEvent(clock, event)
	}
}

// AddStreamClients adjusts the number of connected display clients.
func (r *Recorder) AddStreamClients(delta int) {
	if r == nil || delta == 0 {
		return
	}

	r.mu.Lock()
	r.streamClients += delta
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.addStreamClients(delta)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// CommandCalls returns the total applications recorded for a command type.
func (r *Recorder) CommandCalls(command string) int {
	return r.Snapshot().Commands[command].Calls
}

// CommandErrors returns the rejected applications recorded for a command type.
func (r *Recorder) CommandErrors(command string) int {
	return r.Snapshot().Commands[command].Errors
}

// ClockEvents returns how often clock emitted event.
func (r *Recorder) ClockEvents(clock, event string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clockEvents[clock+"/"+event]
}

// CommandSnapshot is the per-command slice of a Snapshot.
type CommandSnapshot struct {
	Calls  int
	Errors int
}

// Snapshot returns a copy of the current in-memory counters.
type Snapshot struct {
	Commands        map[string]CommandSnapshot
	Ticks           int
	TickErrors      int
	LastTickLatency time.Duration
	StreamClients   int
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	commands := make(map[string]CommandSnapshot, len(r.commands))
	for name, stats := range r.commands {
		commands[name] = CommandSnapshot{Calls: stats.calls, Errors: stats.errors}
	}
	return Snapshot{
		Commands:        commands,
		Ticks:           r.ticks,
		TickErrors:      r.tickErrors,
		LastTickLatency: r.lastTickLatency,
		StreamClients:   r.streamClients,
	}
}
