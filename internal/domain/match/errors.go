package match

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedCommand = errors.New("unsupported command")
	ErrInvalidSide        = errors.New("invalid side")
)

// Fields reported by FormatError.
const (
	FieldGameClock = "game clock"
	FieldShotClock = "shot clock"
)

// FormatError reports clock text that cannot be accepted as a final value.
type FormatError struct {
	Field  string
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	field := e.Field
	if field == "" {
		field = "value"
	}
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", field, e.Input)
	}
	return fmt.Sprintf("invalid %s %q: %s", field, e.Input, e.Reason)
}

// AsFormatError attempts to unwrap an error into a FormatError.
func AsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
