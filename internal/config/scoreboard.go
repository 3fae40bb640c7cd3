package config

// ScoreboardConfig controls the tick driver and the operator surfaces.
// Regulation clock lengths are fixed in the match package and not configurable.
type ScoreboardConfig struct {
	TickInterval     Duration
	ControlToken     string // when set, mutating endpoints require it as a bearer token
	ConsoleEnabled   bool
	ShotClockCues    bool // beep on the 10 and 5 second shot-clock warnings
	SubscriberBuffer int
}

func loadScoreboard() ScoreboardConfig {
	return ScoreboardConfig{
		TickInterval:     durationEnvOrDefault(envTickInterval, defaultTickInterval),
		ControlToken:     envOrDefault(envControlToken, ""),
		ConsoleEnabled:   boolEnvOrDefault(envConsoleEnabled, defaultConsoleEnabled),
		ShotClockCues:    boolEnvOrDefault(envShotClockCues, defaultShotClockCues),
		SubscriberBuffer: intEnvOrDefault(envSubscriberBuffer, defaultSubscriberBuffer),
	}
}
