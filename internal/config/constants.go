package config

import "time"

const (
	envPort             = "PORT"
	envTickInterval     = "TICK_INTERVAL"
	envControlToken     = "CONTROL_TOKEN"
	envConsoleEnabled   = "CONSOLE_ENABLED"
	envShotClockCues    = "SHOT_CLOCK_CUES"
	envSubscriberBuffer = "SUBSCRIBER_BUFFER"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// One tick per elapsed second; only tests and demos should change it.
	defaultTickInterval     = Duration(time.Second)
	defaultConsoleEnabled   = false
	defaultShotClockCues    = true
	defaultSubscriberBuffer = 16
	defaultMetricsPort      = "9090"
	defaultServiceName      = "scoreboard-service"
)
