// Package config loads gitgat settings from .gitgat.yaml, GITGAT_* environment
// variables and built-in defaults.
package config

// Output formats accepted by output.format.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Output defaults.
const (
	DefaultOutputFormat  = FormatText
	DefaultOutputNoColor = false
)

// Logging defaults.
const (
	DefaultLoggingLevel = "info"
	DefaultLoggingJSON  = false
)

// Progress defaults.
const (
	DefaultProgressEnabled = true
)

// Telemetry defaults.
const (
	DefaultTelemetryOTLPEndpoint = ""
	DefaultTelemetryOTLPInsecure = false
	DefaultTelemetryOTLPHeaders  = ""
	DefaultTelemetrySampleRatio  = 0.0
	DefaultTelemetryTraceVerbose = false
	DefaultTelemetryDebugTrace   = false
	DefaultTelemetryMetricsFile  = ""
)
