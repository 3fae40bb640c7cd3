package testutil

import (
	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
)

// SampleState returns a mid-game state with both clocks running.
func SampleState() *match.State {
	s := match.New()
	s.SetTeamNames("Lakers", "Celtics")
	s.SetScores(54, 51)
	s.Period = 3
	s.TimeLeft = 125
	s.ShotClock = 11
	s.Fouls = [2]int{2, 4}
	s.Running = true
	s.ShotRunning = true
	return s
}

// SampleSnapshot wraps SampleState in a snapshot at the given version.
func SampleSnapshot(version int) match.Snapshot {
	return match.NewSnapshot(version, SampleState(), match.Possession(match.Left), nil)
}
