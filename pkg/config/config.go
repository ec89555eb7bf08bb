package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Config is the top-level gitgat configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Exclude   []string        `mapstructure:"exclude"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// OutputConfig selects how results are rendered.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ProgressConfig controls the stderr progress line.
type ProgressConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TelemetryConfig holds OpenTelemetry and metrics export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	TraceVerbose bool    `mapstructure:"trace_verbose"`
	DebugTrace   bool    `mapstructure:"debug_trace"`
	MetricsFile  string  `mapstructure:"metrics_file"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unknown output.format.
	ErrInvalidFormat = errors.New("output.format must be one of text, json, yaml, table")
	// ErrInvalidLogLevel indicates an unknown logging.level.
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidSampleRatio indicates a telemetry.sample_ratio outside [0, 1].
	ErrInvalidSampleRatio = errors.New("telemetry.sample_ratio must be between 0 and 1")
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatTable}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if !slices.Contains(Formats(), c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	_, err := ParseLogLevel(c.Logging.Level)
	if err != nil {
		return err
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	return nil
}

// ParseLogLevel maps a case-insensitive level name to its slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	level, ok := logLevels[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}
