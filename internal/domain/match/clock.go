package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern     = regexp.MustCompile(`^[0-9]{1,2}:[0-5][0-9]$`)
	shotClockPattern = regexp.MustCompile(`^[0-9]{1,2}$`)
)

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseClock accepts M:SS or MM:SS with seconds in 00-59 and returns the total seconds.
func ParseClock(text string) (int, error) {
	if !clockPattern.MatchString(text) {
		return 0, &FormatError{Field: FieldGameClock, Input: text, Reason: "use MM:SS, e.g. 10:00"}
	}
	mins, secs, _ := strings.Cut(text, ":")
	m, _ := strconv.Atoi(mins)
	sec, _ := strconv.Atoi(secs)
	return m*60 + sec, nil
}

// ParseShotClock accepts one or two digits with a value no greater than ShotClockSeconds.
func ParseShotClock(text string) (int, error) {
	if !shotClockPattern.MatchString(text) {
		return 0, &FormatError{Field: FieldShotClock, Input: text, Reason: "must be 0-99"}
	}
	v, _ := strconv.Atoi(text)
	if v > ShotClockSeconds {
		return 0, &FormatError{Field: FieldShotClock, Input: text, Reason: fmt.Sprintf("maximum is %d", ShotClockSeconds)}
	}
	return v, nil
}

// ClockString is the game clock as MM:SS.
func (s *State) ClockString() string {
	return FormatClock(s.TimeLeft)
}

// ShotClockString is the shot clock clamped to [0, 99] and padded to two digits.
// The stored value is not modified.
func (s *State) ShotClockString() string {
	return fmt.Sprintf("%02d", clamp(s.ShotClock, 0, 99))
}

// PeriodLabel renders regulation quarters as "1º".."4º" and overtime as "OT n".
func (s *State) PeriodLabel() string {
	if s.Period <= RegulationPeriods {
		return fmt.Sprintf("%dº", s.Period)
	}
	return fmt.Sprintf("OT %d", s.Period-RegulationPeriods)
}
