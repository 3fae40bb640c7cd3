package match

import "testing"

func TestNewUsesRegulationDefaults(t *testing.T) {
	s := New()

	if s.TeamNames != [2]string{"Team 1", "Team 2"} {
		t.Fatalf("unexpected team names %v", s.TeamNames)
	}
	if s.Period != 1 || s.TimeLeft != 600 || s.ShotClock != 24 {
		t.Fatalf("unexpected clocks: period=%d time=%d shot=%d", s.Period, s.TimeLeft, s.ShotClock)
	}
	if s.Scores != [2]int{} || s.Fouls != [2]int{} || s.TimeoutMinutes != [2]int{} {
		t.Fatalf("expected zero counters, got %+v", s)
	}
	if s.Running || s.ShotRunning || s.MinutesGranted || s.MinutesPenalized {
		t.Fatalf("expected stopped clocks and clear latches, got %+v", s)
	}
}

func TestSetTeamNamesTrimsAndFallsBack(t *testing.T) {
	cases := []struct {
		name        string
		left, right string
		want        [2]string
	}{
		{"trimmed", "  Lakers ", "\tCeltics\n", [2]string{"Lakers", "Celtics"}},
		{"empty left", "", "Celtics", [2]string{"Team 1", "Celtics"}},
		{"blank right", "Lakers", "   ", [2]string{"Lakers", "Team 2"}},
		{"both blank", " ", "", [2]string{"Team 1", "Team 2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.SetTeamNames(tc.left, tc.right)
			if s.TeamNames != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, s.TeamNames)
			}
		})
	}
}

func TestSetGameTimeFromText(t *testing.T) {
	s := New()
	if err := s.SetGameTimeFromText("7:05"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TimeLeft != 425 {
		t.Fatalf("expected 425 seconds, got %d", s.TimeLeft)
	}

	err := s.SetGameTimeFromText("7:5")
	if _, ok := AsFormatError(err); !ok {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if s.TimeLeft != 425 {
		t.Fatalf("expected state untouched on failure, got %d", s.TimeLeft)
	}
}

func TestSetShotClockFromText(t *testing.T) {
	s := New()
	if err := s.SetShotClockFromText("0"); err != nil {
		t.Fatalf("expected 0 to be valid, got %v", err)
	}
	if s.ShotClock != 0 {
		t.Fatalf("expected shot clock 0, got %d", s.ShotClock)
	}

	for _, in := range []string{"25", "99", "abc", "", "100", "-1", " 5"} {
		err := s.SetShotClockFromText(in)
		if _, ok := AsFormatError(err); !ok {
			t.Fatalf("expected FormatError for %q, got %v", in, err)
		}
		if s.ShotClock != 0 {
			t.Fatalf("expected shot clock untouched after %q, got %d", in, s.ShotClock)
		}
	}
}

func TestSetScoresClamps(t *testing.T) {
	s := New()
	s.SetScores(-4, 150)
	if s.Scores != [2]int{0, 99} {
		t.Fatalf("expected [0 99], got %v", s.Scores)
	}
	s.SetScores(42, 17)
	if s.Scores != [2]int{42, 17} {
		t.Fatalf("expected [42 17], got %v", s.Scores)
	}
}

func TestAddScoreFloorsAtZeroWithoutUpperClamp(t *testing.T) {
	s := New()
	s.AddScore(Left, -1)
	if s.Scores[0] != 0 {
		t.Fatalf("expected floor at 0, got %d", s.Scores[0])
	}

	s.SetScores(99, 0)
	s.AddScore(Left, 3)
	if s.Scores[0] != 102 {
		t.Fatalf("expected increment path to pass 99, got %d", s.Scores[0])
	}

	s.AddScore(Right, 2)
	s.AddScore(Right, -5)
	if s.Scores[1] != 0 {
		t.Fatalf("expected right score floored at 0, got %d", s.Scores[1])
	}
}

func TestAddScoreIgnoresInvalidSide(t *testing.T) {
	s := New()
	s.AddScore(Side("middle"), 3)
	s.AddFouls(Side(""), 1)
	s.AddTimeoutMinutes(Side("x"), -1)
	if s.Scores != [2]int{} || s.Fouls != [2]int{} || s.ShotRunning {
		t.Fatalf("expected invalid side to be a no-op, got %+v", s)
	}
}

func TestAddFoulsStaysWithinBounds(t *testing.T) {
	deltas := []int{1, 1, 1, 1, 1, 1, 1, -1, -3, -4, -1, 2, 10, -20}
	for _, side := range []Side{Left, Right} {
		s := New()
		i, _ := side.index()
		for _, d := range deltas {
			s.AddFouls(side, d)
			if s.Fouls[i] < 0 || s.Fouls[i] > MaxFouls {
				t.Fatalf("fouls out of bounds for %s after %d: %d", side, d, s.Fouls[i])
			}
		}
	}

	s := New()
	for i := 0; i < 7; i++ {
		s.AddFouls(Left, 1)
	}
	if s.Fouls[0] != 5 {
		t.Fatalf("expected fouls capped at 5, got %d", s.Fouls[0])
	}
}

func TestAddTimeoutMinutesStaysWithinBounds(t *testing.T) {
	s := New()
	deltas := []int{1, 1, 1, 1, 1, 1, 1, -1, -2, -9, 3, -1}
	for _, d := range deltas {
		s.AddTimeoutMinutes(Right, d)
		if s.TimeoutMinutes[1] < 0 || s.TimeoutMinutes[1] > MaxTimeoutMinutes {
			t.Fatalf("timeout-minutes out of bounds after %d: %d", d, s.TimeoutMinutes[1])
		}
	}
}

func TestAddTimeoutMinutesNegativeNudgesShotClock(t *testing.T) {
	s := New()
	s.ShotClock = 7
	s.ShotRunning = false

	s.AddTimeoutMinutes(Left, -1)

	if !s.ShotRunning {
		t.Fatalf("expected shot clock running after negative delta")
	}
	if s.ShotClock != 59 {
		t.Fatalf("expected shot clock 59, got %d", s.ShotClock)
	}
	// The embedded tick grants the period 1-2 minutes before the delta is applied.
	if s.TimeoutMinutes != [2]int{1, 2} || !s.MinutesGranted {
		t.Fatalf("expected [1 2] with grant latched, got %v granted=%v", s.TimeoutMinutes, s.MinutesGranted)
	}
}

func TestAddTimeoutMinutesPositiveLeavesShotClock(t *testing.T) {
	s := New()
	s.AddTimeoutMinutes(Left, 1)
	if s.ShotClock != 24 || s.ShotRunning {
		t.Fatalf("expected shot clock untouched, got %d running=%v", s.ShotClock, s.ShotRunning)
	}
	if s.TimeoutMinutes[0] != 1 {
		t.Fatalf("expected 1 timeout-minute, got %d", s.TimeoutMinutes[0])
	}
}

func TestResetGameClock(t *testing.T) {
	s := New()
	s.TimeLeft = 12
	s.ShotClock = 3
	s.Running = true
	s.ShotRunning = true

	s.ResetGameClock()

	if s.TimeLeft != 600 || s.ShotClock != 24 || s.Running || s.ShotRunning {
		t.Fatalf("unexpected state after reset: %+v", s)
	}
}

func TestResetShotClock(t *testing.T) {
	s := New()
	s.ShotRunning = true
	s.ResetShotClockTo14()
	if s.ShotClock != 14 || !s.ShotRunning {
		t.Fatalf("expected 14 and clock still running, got %d running=%v", s.ShotClock, s.ShotRunning)
	}
	s.ResetShotClockTo24()
	if s.ShotClock != 24 {
		t.Fatalf("expected 24, got %d", s.ShotClock)
	}
}

func TestAdvancePeriodFromThird(t *testing.T) {
	s := New()
	s.Period = 3
	s.Fouls = [2]int{4, 3}
	s.TimeLeft = 5
	s.ShotClock = 2
	s.Running = true
	s.ShotRunning = true
	s.MinutesGranted = true

	s.AdvancePeriod()

	if s.Period != 4 {
		t.Fatalf("expected period 4, got %d", s.Period)
	}
	if s.Fouls != [2]int{0, 0} {
		t.Fatalf("expected fouls cleared, got %v", s.Fouls)
	}
	if s.TimeLeft != 600 || s.ShotClock != 24 || s.Running || s.ShotRunning {
		t.Fatalf("expected clocks reset and stopped, got %+v", s)
	}
	if !s.MinutesGranted {
		t.Fatalf("expected latches to survive period advance")
	}
}

func TestResetMatchKeepsFoulsMinutesAndLatches(t *testing.T) {
	s := New()
	s.SetTeamNames("A", "B")
	s.SetScores(10, 20)
	s.Period = 5
	s.Fouls = [2]int{2, 1}
	s.TimeoutMinutes = [2]int{3, 2}
	s.MinutesGranted = true
	s.MinutesPenalized = true
	s.Running = true

	s.ResetMatch()

	if s.Scores != [2]int{} || s.TeamNames != [2]string{"Team 1", "Team 2"} || s.Period != 1 {
		t.Fatalf("expected scores, names and period reset, got %+v", s)
	}
	if s.TimeLeft != 600 || s.ShotClock != 24 || s.Running || s.ShotRunning {
		t.Fatalf("expected clocks reset, got %+v", s)
	}
	if s.Fouls != [2]int{2, 1} || s.TimeoutMinutes != [2]int{3, 2} {
		t.Fatalf("expected fouls and timeout-minutes kept, got %v %v", s.Fouls, s.TimeoutMinutes)
	}
	if !s.MinutesGranted || !s.MinutesPenalized {
		t.Fatalf("expected latches kept")
	}
}

func TestResetMatchPreservesIdentity(t *testing.T) {
	s := New()
	ref := s
	s.ResetMatch()
	if ref != s {
		t.Fatalf("expected reset to mutate in place")
	}
}

func TestToggleGameClockCouplesShotClockOnStart(t *testing.T) {
	s := New()

	s.ToggleGameClock()
	if !s.Running || !s.ShotRunning {
		t.Fatalf("expected both clocks running, got running=%v shot=%v", s.Running, s.ShotRunning)
	}

	s.ToggleGameClock()
	if s.Running {
		t.Fatalf("expected game clock stopped")
	}
	if !s.ShotRunning {
		t.Fatalf("expected shot clock unchanged when stopping game clock")
	}
}

func TestToggleShotClockIsIndependent(t *testing.T) {
	s := New()
	s.ToggleShotClock()
	if !s.ShotRunning || s.Running {
		t.Fatalf("expected only shot clock running, got running=%v shot=%v", s.Running, s.ShotRunning)
	}
	s.ToggleShotClock()
	if s.ShotRunning {
		t.Fatalf("expected shot clock stopped")
	}
}
