// Package observability wires OpenTelemetry tracing, run metrics and
// structured logging for gitgat.
package observability

import (
	"io"
	"log/slog"
)

const (
	// defaultServiceName is the default OTel service name.
	defaultServiceName = "gitgat"

	// defaultShutdownTimeoutSec is the default shutdown timeout in seconds.
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the version of the running binary.
	ServiceVersion string

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the trace sampling ratio in [0, 1]. Zero samples everything.
	SampleRatio float64

	// DebugTrace forces full sampling and logs attributes dropped by the
	// attribute filter.
	DebugTrace bool

	// MetricsFile, when set, receives the run metrics in Prometheus text
	// format on shutdown.
	MetricsFile string

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// LogOutput receives log records. Nil means os.Stderr.
	LogOutput io.Writer

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup: no export, info logs.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
