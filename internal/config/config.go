package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	Scoreboard ScoreboardConfig
	Metrics    MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Scoreboard: loadScoreboard(),
		Metrics:    loadMetrics(),
	}
}
