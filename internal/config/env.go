package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

func lookupEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOrDefault(key, defaultValue string) string {
	if val := lookupEnv(key); val != "" {
		return val
	}
	return defaultValue
}

// durationEnvOrDefault falls back on unparsable or non-positive values.
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := lookupEnv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// intEnvOrDefault falls back on unparsable or non-positive values.
func intEnvOrDefault(key string, defaultValue int) int {
	raw := lookupEnv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := lookupEnv(key)
	switch {
	case raw == "":
		return defaultValue
	case raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") || strings.EqualFold(raw, "on"):
		return true
	case raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") || strings.EqualFold(raw, "off"):
		return false
	default:
		return defaultValue
	}
}
