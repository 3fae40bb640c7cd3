package match

import "testing"

func TestTickGameClockIsNoopWhenStopped(t *testing.T) {
	s := New()
	if ev := s.TickGameClock(); ev != EventNone {
		t.Fatalf("expected none, got %q", ev)
	}
	if s.TimeLeft != 600 {
		t.Fatalf("expected clock untouched, got %d", s.TimeLeft)
	}
}

func TestTickGameClockRunsDownAndExpiresOnce(t *testing.T) {
	s := New()
	s.Running = true

	for i := 1; i <= 600; i++ {
		ev := s.TickGameClock()
		if ev != EventNone {
			t.Fatalf("tick %d: expected none, got %q", i, ev)
		}
	}
	if s.TimeLeft != 0 || !s.Running {
		t.Fatalf("expected 0 and still running after 600 ticks, got %d running=%v", s.TimeLeft, s.Running)
	}

	// Expiry is reported by the tick that finds the clock already at zero, not the one that reaches it.
	if ev := s.TickGameClock(); ev != EventExpired {
		t.Fatalf("expected expired on the tick observing zero, got %q", ev)
	}
	if s.Running {
		t.Fatalf("expected clock stopped after expiry")
	}
	if ev := s.TickGameClock(); ev != EventNone {
		t.Fatalf("expected none after expiry, got %q", ev)
	}
}

func TestTickShotClockWarningsAndExpiry(t *testing.T) {
	s := New()
	s.ShotRunning = true

	got := map[int]TickEvent{}
	for s.ShotClock > 0 {
		ev := s.TickShotClock()
		if ev != EventNone {
			got[s.ShotClock] = ev
		}
	}
	if len(got) != 2 || got[10] != EventWarning10 || got[5] != EventWarning5 {
		t.Fatalf("expected warnings at 10 and 5, got %v", got)
	}

	if ev := s.TickShotClock(); ev != EventExpired {
		t.Fatalf("expected expired, got %q", ev)
	}
	if s.ShotRunning {
		t.Fatalf("expected shot clock stopped")
	}
	if ev := s.TickShotClock(); ev != EventNone {
		t.Fatalf("expected none after expiry, got %q", ev)
	}
}

func TestTickShotClockGrantsMinutesOnceInFirstHalf(t *testing.T) {
	s := New()
	s.Period = 1

	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{2, 2} || !s.MinutesGranted {
		t.Fatalf("expected [2 2] granted, got %v granted=%v", s.TimeoutMinutes, s.MinutesGranted)
	}

	s.TimeoutMinutes = [2]int{1, 0}
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{1, 0} {
		t.Fatalf("expected grant not to fire again, got %v", s.TimeoutMinutes)
	}

	s.Period = 2
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{1, 0} {
		t.Fatalf("expected grant latched across periods 1-2, got %v", s.TimeoutMinutes)
	}
}

func TestTickShotClockGrantOverwritesInsteadOfAdding(t *testing.T) {
	s := New()
	s.TimeoutMinutes = [2]int{4, 1}
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{2, 2} {
		t.Fatalf("expected grant to set [2 2], got %v", s.TimeoutMinutes)
	}
}

func TestTickShotClockForcesThreeInThirdPeriod(t *testing.T) {
	s := New()
	s.Period = 3
	s.MinutesGranted = true

	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{3, 3} {
		t.Fatalf("expected [3 3], got %v", s.TimeoutMinutes)
	}

	s.AddTimeoutMinutes(Left, 1)
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{3, 3} {
		t.Fatalf("expected period 3 to overwrite every tick, got %v", s.TimeoutMinutes)
	}
}

func TestTickShotClockThirdPeriodAppliesWithoutGrant(t *testing.T) {
	s := New()
	s.Period = 3
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{3, 3} || s.MinutesGranted {
		t.Fatalf("expected [3 3] without grant latch, got %v granted=%v", s.TimeoutMinutes, s.MinutesGranted)
	}
}

func TestTickShotClockPenalizesOnceLateInFourth(t *testing.T) {
	s := New()
	s.Period = 4
	s.MinutesGranted = true
	s.TimeoutMinutes = [2]int{3, 3}
	s.TimeLeft = 119

	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{2, 2} || !s.MinutesPenalized {
		t.Fatalf("expected [2 2] penalized, got %v penalized=%v", s.TimeoutMinutes, s.MinutesPenalized)
	}

	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{2, 2} {
		t.Fatalf("expected penalty not to fire again, got %v", s.TimeoutMinutes)
	}

	s.TimeoutMinutes = [2]int{3, 3}
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{3, 3} {
		t.Fatalf("expected latch to block a second penalty, got %v", s.TimeoutMinutes)
	}
}

func TestTickShotClockPenaltyRequiresConditions(t *testing.T) {
	cases := []struct {
		name     string
		minutes  [2]int
		timeLeft int
	}{
		{"two minutes left exactly", [2]int{3, 3}, 120},
		{"one team below three", [2]int{3, 2}, 60},
		{"one team above three", [2]int{4, 3}, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.Period = 4
			s.MinutesGranted = true
			s.TimeoutMinutes = tc.minutes
			s.TimeLeft = tc.timeLeft

			s.TickShotClock()
			if s.TimeoutMinutes != tc.minutes || s.MinutesPenalized {
				t.Fatalf("expected no penalty, got %v penalized=%v", s.TimeoutMinutes, s.MinutesPenalized)
			}
		})
	}
}

func TestTimeoutRulesRunWhileShotClockStopped(t *testing.T) {
	s := New()
	if s.ShotRunning {
		t.Fatalf("precondition: shot clock stopped")
	}
	if ev := s.TickShotClock(); ev != EventNone {
		t.Fatalf("expected none, got %q", ev)
	}
	if s.ShotClock != 24 {
		t.Fatalf("expected shot clock untouched, got %d", s.ShotClock)
	}
	if !s.MinutesGranted {
		t.Fatalf("expected rule to run regardless of shot clock")
	}
}

func TestOvertimeLeavesMinutesAlone(t *testing.T) {
	s := New()
	s.Period = 5
	s.MinutesGranted = true
	s.TimeoutMinutes = [2]int{1, 4}
	s.TimeLeft = 10
	s.TickShotClock()
	if s.TimeoutMinutes != [2]int{1, 4} {
		t.Fatalf("expected overtime to leave minutes alone, got %v", s.TimeoutMinutes)
	}
}
