// Package console is a line-oriented operator console for terminals without a display.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
	"github.com/preston-bernstein/scoreboard-service/internal/keymap"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const (
	cueBeep   = "*BEEP*"
	cueBuzzer = "*BUZZER*"

	defaultBuffer = 16
)

// Controller is the slice of the scoreboard service the console drives.
type Controller interface {
	Do(ctx context.Context, cmd match.Command) (match.Snapshot, error)
	Subscribe(buffer int) (string, <-chan match.Snapshot, func())
	Snapshot() match.Snapshot
}

// Options tune console output.
type Options struct {
	Cues   bool // beep on shot-clock warnings
	Buffer int
}

// Console reads keys from an input stream and writes status lines and cues.
type Console struct {
	ctrl   Controller
	opts   Options
	logger *slog.Logger
}

// New builds a Console for ctrl.
func New(ctrl Controller, opts Options, logger *slog.Logger) *Console {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	return &Console{ctrl: ctrl, opts: opts, logger: logger}
}

// Run processes input lines until EOF, "quit", or ctx cancellation. Each line
// is either a key name ("space", "enter", "shift"), a run of single-key
// characters ("zzn"), or a console command ("clock 5:00", "reset all", "help").
// Cues are written from a separate goroutine so a long line never leaves the
// snapshot feed undrained.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	w := &syncWriter{w: out}
	_, feed, cancel := c.ctrl.Subscribe(c.opts.Buffer)
	cuesDone := make(chan struct{})
	go c.pumpCues(w, feed, cuesDone)
	defer func() {
		cancel()
		<-cuesDone
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	last := c.ctrl.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			snap, quit := c.handleLine(ctx, w, line, last)
			if quit {
				return nil
			}
			last = snap
			fmt.Fprintln(w, Render(last))
		}
	}
}

// pumpCues drains feed until it closes, printing the first snapshot and every cue.
func (c *Console) pumpCues(out io.Writer, feed <-chan match.Snapshot, done chan<- struct{}) {
	defer close(done)
	seen := false
	for snap := range feed {
		if !seen {
			seen = true
			fmt.Fprintln(out, Render(snap))
		}
		c.writeCues(out, snap)
	}
	logging.Debug(c.logger, "console feed closed")
}

// syncWriter serializes writes from the input loop and the cue pump.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (c *Console) handleLine(ctx context.Context, out io.Writer, line string, last match.Snapshot) (match.Snapshot, bool) {
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)
	switch {
	case trimmed == "":
		return last, false
	case trimmed == "quit" || trimmed == "exit":
		return last, true
	case trimmed == "help" || trimmed == "?":
		writeHelp(out)
		return last, false
	}

	if isCommandWord(fields[0]) {
		cmd, ok := textCommand(fields)
		if !ok {
			fmt.Fprintf(out, "usage: %s\n", usage)
			return last, false
		}
		return c.do(ctx, out, cmd, trimmed, last), false
	}
	if cmd, ok := keymap.Lookup(trimmed); ok {
		return c.do(ctx, out, cmd, keymap.Normalize(trimmed), last), false
	}
	for _, r := range trimmed {
		key := string(r)
		cmd, ok := keymap.Lookup(key)
		if !ok {
			fmt.Fprintf(out, "unknown key %q\n", key)
			continue
		}
		last = c.do(ctx, out, cmd, key, last)
	}
	return last, false
}

func (c *Console) do(ctx context.Context, out io.Writer, cmd match.Command, input string, last match.Snapshot) match.Snapshot {
	snap, err := c.ctrl.Do(ctx, cmd)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		logging.Debug(c.logger, "console command rejected", logging.FieldKey, input, "error", err)
		return last
	}
	return snap
}

func (c *Console) writeCues(out io.Writer, snap match.Snapshot) {
	if snap.Tick == nil || snap.Tick.Empty() {
		return
	}
	if snap.Tick.Game == match.EventExpired {
		fmt.Fprintf(out, "%s game clock expired %s\n", cueBuzzer, snap.Display.Clock)
	}
	switch snap.Tick.Shot {
	case match.EventExpired:
		fmt.Fprintf(out, "%s shot clock expired\n", cueBuzzer)
	case match.EventWarning10, match.EventWarning5:
		if c.opts.Cues {
			fmt.Fprintf(out, "%s shot clock %s\n", cueBeep, snap.Display.ShotClock)
		}
	}
}

var commandWords = map[string]bool{"clock": true, "shot": true, "names": true, "arrow": true, "reset": true}

const usage = "clock MM:SS | shot NN | names LEFT RIGHT | arrow left|right | reset scores|clock|all | quit"

func isCommandWord(word string) bool {
	return commandWords[strings.ToLower(word)]
}

// textCommand parses the console-only commands that mirror the settings dialog and menu.
func textCommand(fields []string) (match.Command, bool) {
	if len(fields) < 2 {
		return match.Command{}, false
	}
	arg := strings.ToLower(fields[1])
	switch strings.ToLower(fields[0]) {
	case "clock":
		return match.Command{Type: match.CmdSetGameClock, Text: fields[1]}, true
	case "shot":
		return match.Command{Type: match.CmdSetShotClock, Text: fields[1]}, true
	case "names":
		if len(fields) != 3 {
			return match.Command{}, false
		}
		return match.Command{Type: match.CmdSetTeamNames, Left: fields[1], Right: fields[2]}, true
	case "arrow":
		return match.Command{Type: match.CmdTogglePossession, Side: match.Side(arg)}, true
	case "reset":
		switch arg {
		case "scores":
			return match.Command{Type: match.CmdResetScores}, true
		case "clock", "time":
			return match.Command{Type: match.CmdResetGameClock}, true
		case "all":
			return match.Command{Type: match.CmdResetMatch}, true
		}
	}
	return match.Command{}, false
}

// Render formats one status line for snap.
func Render(snap match.Snapshot) string {
	st := snap.State
	arrow := "-"
	if snap.Possession != match.PossessionNone {
		arrow = string(snap.Possession)
	}
	run := "stopped"
	if st.Running {
		run = "running"
	}
	return fmt.Sprintf("%s %02d - %02d %s | %s %s (%s) | shot %s | fouls %d-%d | timeouts %d-%d | arrow %s",
		st.TeamNames[0], st.Scores[0], st.Scores[1], st.TeamNames[1],
		snap.Display.Period, snap.Display.Clock, run, snap.Display.ShotClock,
		st.Fouls[0], st.Fouls[1], st.TimeoutMinutes[0], st.TimeoutMinutes[1], arrow)
}

func writeHelp(out io.Writer) {
	for _, b := range keymap.Bindings() {
		fmt.Fprintf(out, "  %-6s %s\n", b.Key, b.Description)
	}
	fmt.Fprintln(out, "  "+usage)
}
