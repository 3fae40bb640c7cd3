package match

// TickEvent tags what a one-second tick observed. The empty value means nothing happened.
type TickEvent string

const (
	EventNone      TickEvent = ""
	EventExpired   TickEvent = "expired"
	EventWarning10 TickEvent = "warning_10"
	EventWarning5  TickEvent = "warning_5"
)

const penaltyWindowSeconds = 2 * 60

// ApplyTimeoutRules runs the period-driven timeout-minute bookkeeping:
//   - periods 1-2: both teams get 2, once (MinutesGranted latch);
//   - period 3: both teams are forced to 3 on every call;
//   - period 4: with both at 3 and under two minutes left, each loses one, once
//     (MinutesPenalized latch).
func (s *State) ApplyTimeoutRules() {
	if s.Period <= 2 && !s.MinutesGranted {
		s.TimeoutMinutes = [2]int{2, 2}
		s.MinutesGranted = true
	} else if s.Period == 3 {
		s.TimeoutMinutes = [2]int{3, 3}
	}

	if s.Period == 4 &&
		s.TimeoutMinutes[0] == 3 &&
		s.TimeoutMinutes[1] == 3 &&
		s.TimeLeft < penaltyWindowSeconds &&
		!s.MinutesPenalized {
		s.TimeoutMinutes[0]--
		s.TimeoutMinutes[1]--
		s.MinutesPenalized = true
	}
}

// TickGameClock advances the game clock by one second while it runs. The tick
// that finds the clock at zero stops it and reports EventExpired.
func (s *State) TickGameClock() TickEvent {
	if !s.Running {
		return EventNone
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
		return EventNone
	}
	s.Running = false
	return EventExpired
}

// TickShotClock applies the timeout rules, then advances the shot clock by one
// second while it runs. Reaching 10 or 5 reports a warning; the tick that finds
// it at zero stops it and reports EventExpired.
func (s *State) TickShotClock() TickEvent {
	s.ApplyTimeoutRules()
	if !s.ShotRunning {
		return EventNone
	}
	if s.ShotClock > 0 {
		s.ShotClock--
		switch s.ShotClock {
		case 10:
			return EventWarning10
		case 5:
			return EventWarning5
		}
		return EventNone
	}
	s.ShotRunning = false
	return EventExpired
}
