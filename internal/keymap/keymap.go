// Package keymap maps operator hotkeys to scoreboard commands.
package keymap

import (
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
)

const (
	KeySpace = "space"
	KeyEnter = "enter"
	KeyShift = "shift"
)

// Binding ties one key to the command it issues.
type Binding struct {
	Key         string        `json:"key"`
	Description string        `json:"description"`
	Command     match.Command `json:"command"`
}

var aliases = map[string]string{
	" ":        KeySpace,
	"return":   KeyEnter,
	"\n":       KeyEnter,
	"\r":       KeyEnter,
	"kp_enter": KeyEnter,
	"shift_l":  KeyShift,
	"shift_r":  KeyShift,
}

var bindings = []Binding{
	{KeySpace, "start/stop game clock", match.Command{Type: match.CmdToggleGameClock}},
	{KeyEnter, "next period", match.Command{Type: match.CmdAdvancePeriod}},
	{"z", "left score +1", side(match.CmdAddScore, match.Left, 1)},
	{"x", "left score -1", side(match.CmdAddScore, match.Left, -1)},
	{"n", "right score +1", side(match.CmdAddScore, match.Right, 1)},
	{"m", "right score -1", side(match.CmdAddScore, match.Right, -1)},
	{"a", "left fouls +1", side(match.CmdAddFouls, match.Left, 1)},
	{"s", "left fouls -1", side(match.CmdAddFouls, match.Left, -1)},
	{"k", "right fouls +1", side(match.CmdAddFouls, match.Right, 1)},
	{"l", "right fouls -1", side(match.CmdAddFouls, match.Right, -1)},
	{"q", "left timeout minutes +1", side(match.CmdAddTimeoutMinutes, match.Left, 1)},
	{"w", "left timeout minutes -1", side(match.CmdAddTimeoutMinutes, match.Left, -1)},
	{"o", "right timeout minutes +1", side(match.CmdAddTimeoutMinutes, match.Right, 1)},
	{"p", "right timeout minutes -1", side(match.CmdAddTimeoutMinutes, match.Right, -1)},
	{"2", "shot clock to 14", match.Command{Type: match.CmdResetShotClock14}},
	{"3", "shot clock to 24", match.Command{Type: match.CmdResetShotClock24}},
	{KeyShift, "start/stop shot clock", match.Command{Type: match.CmdToggleShotClock}},
}

var index = func() map[string]match.Command {
	m := make(map[string]match.Command, len(bindings))
	for _, b := range bindings {
		m[b.Key] = b.Command
	}
	return m
}()

func side(t match.CommandType, s match.Side, delta int) match.Command {
	return match.Command{Type: t, Side: s, Delta: delta}
}

// Normalize lower-cases key and resolves aliases such as "return" or "Shift_L".
// A lone space is kept as a key rather than trimmed away.
func Normalize(key string) string {
	if alias, ok := aliases[key]; ok {
		return alias
	}
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := aliases[k]; ok {
		return alias
	}
	return k
}

// Lookup returns the command bound to key.
func Lookup(key string) (match.Command, bool) {
	cmd, ok := index[Normalize(key)]
	return cmd, ok
}

// Bindings returns the default key bindings in display order.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}
