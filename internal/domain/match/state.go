package match

import "strings"

const (
	// RegulationSeconds is the game clock at the start of every period (10:00).
	RegulationSeconds = 10 * 60
	// ShotClockSeconds is the full shot clock.
	ShotClockSeconds = 24
	// ShortShotClockSeconds is used after offensive rebounds and backcourt resets.
	ShortShotClockSeconds = 14
	// TimeoutShotClockSeconds is loaded into the shot clock when a timeout-minute is taken back.
	TimeoutShotClockSeconds = 60

	MaxScore          = 99
	MaxFouls          = 5
	MaxTimeoutMinutes = 5
	RegulationPeriods = 4

	DefaultLeftName  = "Team 1"
	DefaultRightName = "Team 2"
)

// Side identifies one of the two teams on the board.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

func (s Side) index() (int, bool) {
	switch s {
	case Left:
		return 0, true
	case Right:
		return 1, true
	default:
		return 0, false
	}
}

// Valid reports whether s names a team.
func (s Side) Valid() bool {
	_, ok := s.index()
	return ok
}

// State is the authoritative match state. It is mutated in place by its methods;
// the zero value is not ready for use, call New.
type State struct {
	TeamNames        [2]string `json:"teamNames"`
	Scores           [2]int    `json:"scores"`
	Period           int       `json:"period"`
	TimeLeft         int       `json:"timeLeft"`
	ShotClock        int       `json:"shotClock"`
	Fouls            [2]int    `json:"fouls"`
	TimeoutMinutes   [2]int    `json:"timeoutMinutes"`
	Running          bool      `json:"running"`
	ShotRunning      bool      `json:"shotRunning"`
	MinutesGranted   bool      `json:"minutesGranted"`
	MinutesPenalized bool      `json:"minutesPenalized"`
}

// New returns a match at regulation defaults with both clocks stopped.
func New() *State {
	return &State{
		TeamNames: [2]string{DefaultLeftName, DefaultRightName},
		Period:    1,
		TimeLeft:  RegulationSeconds,
		ShotClock: ShotClockSeconds,
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}

// SetTeamNames trims both names; an empty result falls back to the default for that side.
func (s *State) SetTeamNames(left, right string) {
	left = strings.TrimSpace(left)
	if left == "" {
		left = DefaultLeftName
	}
	right = strings.TrimSpace(right)
	if right == "" {
		right = DefaultRightName
	}
	s.TeamNames = [2]string{left, right}
}

// SetGameTimeFromText replaces the game clock with an M:SS or MM:SS value.
// On a *FormatError the state is left untouched.
func (s *State) SetGameTimeFromText(text string) error {
	secs, err := ParseClock(text)
	if err != nil {
		return err
	}
	s.TimeLeft = secs
	return nil
}

// SetShotClockFromText replaces the shot clock with a one or two digit value up to 24.
func (s *State) SetShotClockFromText(text string) error {
	secs, err := ParseShotClock(text)
	if err != nil {
		return err
	}
	s.ShotClock = secs
	return nil
}

// SetScores sets both scores, each clamped to [0, MaxScore].
func (s *State) SetScores(left, right int) {
	s.Scores = [2]int{clamp(left, 0, MaxScore), clamp(right, 0, MaxScore)}
}

// AddScore adjusts one score. The result never drops below zero and, unlike
// SetScores, is not capped at MaxScore.
func (s *State) AddScore(side Side, delta int) {
	i, ok := side.index()
	if !ok {
		return
	}
	s.Scores[i] = max(0, s.Scores[i]+delta)
}

// AddFouls adjusts one team's foul count within [0, MaxFouls].
func (s *State) AddFouls(side Side, delta int) {
	i, ok := side.index()
	if !ok {
		return
	}
	s.Fouls[i] = clamp(s.Fouls[i]+delta, 0, MaxFouls)
}

// AddTimeoutMinutes adjusts one team's timeout-minutes within [0, MaxTimeoutMinutes].
// A negative delta first loads the shot clock with TimeoutShotClockSeconds, starts
// it and runs one shot-clock tick.
func (s *State) AddTimeoutMinutes(side Side, delta int) {
	i, ok := side.index()
	if !ok {
		return
	}
	if delta < 0 {
		s.ShotClock = TimeoutShotClockSeconds
		s.ShotRunning = true
		s.TickShotClock()
	}
	s.TimeoutMinutes[i] = clamp(s.TimeoutMinutes[i]+delta, 0, MaxTimeoutMinutes)
}

// ResetScores zeroes both scores.
func (s *State) ResetScores() {
	s.Scores = [2]int{}
}

// ResetGameClock restores the regulation game clock and a full shot clock, and stops both.
func (s *State) ResetGameClock() {
	s.TimeLeft = RegulationSeconds
	s.ResetShotClockTo24()
	s.Running = false
	s.ShotRunning = false
}

func (s *State) ResetShotClockTo24() {
	s.ShotClock = ShotClockSeconds
}

func (s *State) ResetShotClockTo14() {
	s.ShotClock = ShortShotClockSeconds
}

// AdvancePeriod moves to the next period, clears team fouls and resets the clocks.
// The timeout-minute latches are left alone.
func (s *State) AdvancePeriod() {
	s.Period++
	s.Fouls = [2]int{}
	s.ResetGameClock()
}

// ResetMatch restores scores, names, period and clocks. Fouls, timeout-minutes
// and the latches are kept.
func (s *State) ResetMatch() {
	s.ResetScores()
	s.TeamNames = [2]string{DefaultLeftName, DefaultRightName}
	s.Period = 1
	s.ResetGameClock()
}

// ToggleGameClock starts or stops the game clock. Starting it also starts a
// stopped shot clock; stopping it leaves the shot clock alone.
func (s *State) ToggleGameClock() {
	s.Running = !s.Running
	if s.Running && !s.ShotRunning {
		s.ShotRunning = true
	}
}

func (s *State) ToggleShotClock() {
	s.ShotRunning = !s.ShotRunning
}
