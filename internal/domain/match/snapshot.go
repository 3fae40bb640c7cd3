package match

// TickResult carries the events of one game-clock tick followed by one shot-clock tick.
type TickResult struct {
	Game TickEvent `json:"game,omitempty"`
	Shot TickEvent `json:"shot,omitempty"`
}

// Empty reports whether neither clock produced an event.
func (r TickResult) Empty() bool {
	return r.Game == EventNone && r.Shot == EventNone
}

// Display holds the formatted strings a board renders.
type Display struct {
	Clock     string `json:"clock"`
	ShotClock string `json:"shotClock"`
	Period    string `json:"period"`
}

// Snapshot is an immutable copy of the board at one version.
type Snapshot struct {
	Version    int         `json:"version"`
	State      State       `json:"state"`
	Display    Display     `json:"display"`
	Possession Possession  `json:"possession"`
	Tick       *TickResult `json:"tick,omitempty"`
}

// NewSnapshot copies s and renders its projections. tick may be nil.
func NewSnapshot(version int, s *State, p Possession, tick *TickResult) Snapshot {
	snap := Snapshot{
		Version: version,
		State:   *s,
		Display: Display{
			Clock:     s.ClockString(),
			ShotClock: s.ShotClockString(),
			Period:    s.PeriodLabel(),
		},
		Possession: p,
	}
	if tick != nil {
		t := *tick
		snap.Tick = &t
	}
	return snap
}
