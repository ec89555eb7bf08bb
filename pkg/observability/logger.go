package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrVersion = "version"
)

// TracingHandler is an [slog.Handler] that adds the active trace and span IDs
// to every record. Service attributes are attached once at construction so
// they stay at the top level when groups are used.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner. An empty version is omitted.
func NewTracingHandler(inner slog.Handler, service, version string) *TracingHandler {
	attrs := []slog.Attr{slog.String(attrService, service)}

	if version != "" {
		attrs = append(attrs, slog.String(attrVersion, version))
	}

	return &TracingHandler{inner: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds trace context attributes from the span context, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new TracingHandler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: th.inner.WithAttrs(attrs)}
}

// WithGroup returns a new TracingHandler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: th.inner.WithGroup(name)}
}
