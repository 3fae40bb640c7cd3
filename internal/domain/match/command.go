package match

import "strings"

type CommandType string

const (
	CmdSetTeamNames      CommandType = "set_team_names"
	CmdSetGameClock      CommandType = "set_game_clock"
	CmdSetShotClock      CommandType = "set_shot_clock"
	CmdSetScores         CommandType = "set_scores"
	CmdAddScore          CommandType = "add_score"
	CmdAddFouls          CommandType = "add_fouls"
	CmdAddTimeoutMinutes CommandType = "add_timeout_minutes"
	CmdResetScores       CommandType = "reset_scores"
	CmdResetGameClock    CommandType = "reset_game_clock"
	CmdResetShotClock24  CommandType = "reset_shot_clock_24"
	CmdResetShotClock14  CommandType = "reset_shot_clock_14"
	CmdAdvancePeriod     CommandType = "advance_period"
	CmdResetMatch        CommandType = "reset_match"
	CmdToggleGameClock   CommandType = "toggle_game_clock"
	CmdToggleShotClock   CommandType = "toggle_shot_clock"
	CmdTogglePossession  CommandType = "toggle_possession"
	CmdConfigure         CommandType = "configure"
)

// Command is one discrete operator action. Only the fields relevant to Type are read.
type Command struct {
	Type       CommandType `json:"type"`
	Side       Side        `json:"side,omitempty"`
	Delta      int         `json:"delta,omitempty"`
	Text       string      `json:"text,omitempty"`
	Left       string      `json:"left,omitempty"`
	Right      string      `json:"right,omitempty"`
	LeftScore  int         `json:"leftScore,omitempty"`
	RightScore int         `json:"rightScore,omitempty"`
	Settings   *Settings   `json:"settings,omitempty"`
}

// Settings is the edit form: names, both clocks and both scores submitted together.
type Settings struct {
	LeftName   string `json:"leftName"`
	RightName  string `json:"rightName"`
	GameClock  string `json:"gameClock"`
	ShotClock  string `json:"shotClock"`
	LeftScore  int    `json:"leftScore"`
	RightScore int    `json:"rightScore"`
}

// Apply executes cmd against s and p. Parsing failures leave both untouched.
func Apply(s *State, p *Possession, cmd Command) error {
	switch cmd.Type {
	case CmdSetTeamNames:
		s.SetTeamNames(cmd.Left, cmd.Right)
	case CmdSetGameClock:
		return s.SetGameTimeFromText(cmd.Text)
	case CmdSetShotClock:
		return s.SetShotClockFromText(cmd.Text)
	case CmdSetScores:
		s.SetScores(cmd.LeftScore, cmd.RightScore)
	case CmdAddScore:
		if !cmd.Side.Valid() {
			return ErrInvalidSide
		}
		s.AddScore(cmd.Side, cmd.Delta)
	case CmdAddFouls:
		if !cmd.Side.Valid() {
			return ErrInvalidSide
		}
		s.AddFouls(cmd.Side, cmd.Delta)
	case CmdAddTimeoutMinutes:
		if !cmd.Side.Valid() {
			return ErrInvalidSide
		}
		s.AddTimeoutMinutes(cmd.Side, cmd.Delta)
	case CmdResetScores:
		s.ResetScores()
	case CmdResetGameClock:
		s.ResetGameClock()
	case CmdResetShotClock24:
		s.ResetShotClockTo24()
	case CmdResetShotClock14:
		s.ResetShotClockTo14()
	case CmdAdvancePeriod:
		s.AdvancePeriod()
	case CmdResetMatch:
		s.ResetMatch()
	case CmdToggleGameClock:
		s.ToggleGameClock()
	case CmdToggleShotClock:
		s.ToggleShotClock()
	case CmdTogglePossession:
		if !cmd.Side.Valid() {
			return ErrInvalidSide
		}
		p.Toggle(cmd.Side)
	case CmdConfigure:
		if cmd.Settings == nil {
			return ErrUnsupportedCommand
		}
		return s.Configure(*cmd.Settings)
	default:
		return ErrUnsupportedCommand
	}
	return nil
}

// Configure applies an edit form. Both clock texts are trimmed and validated before
// anything changes, so a *FormatError leaves the state as it was.
func (s *State) Configure(cfg Settings) error {
	gameClock, err := ParseClock(strings.TrimSpace(cfg.GameClock))
	if err != nil {
		return err
	}
	shotClock, err := ParseShotClock(strings.TrimSpace(cfg.ShotClock))
	if err != nil {
		return err
	}
	s.SetTeamNames(cfg.LeftName, cfg.RightName)
	s.TimeLeft = gameClock
	s.ShotClock = shotClock
	s.SetScores(cfg.LeftScore, cfg.RightScore)
	return nil
}

// SettingsFrom pre-fills an edit form with the current values.
func SettingsFrom(s *State) Settings {
	return Settings{
		LeftName:   s.TeamNames[0],
		RightName:  s.TeamNames[1],
		GameClock:  s.ClockString(),
		ShotClock:  s.ShotClockString(),
		LeftScore:  s.Scores[0],
		RightScore: s.Scores[1],
	}
}
