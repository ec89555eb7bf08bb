package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal      = "gitgat.runs.total"
	metricRunDuration    = "gitgat.run.duration.seconds"
	metricCommitsVisited = "gitgat.commits.visited.total"
	metricCommitsMatched = "gitgat.commits.matched.total"
	metricLinesTotal     = "gitgat.lines.total"
	metricBinaryTotal    = "gitgat.binary.files.total"

	attrStatus = "status"
	attrChange = "change"

	statusOK    = "ok"
	statusError = "error"
)

// durationBucketBoundaries covers 10ms to 600s, from toy repositories to
// long histories.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// RunMetrics holds the OTel instruments for contribution runs.
// All methods are no-ops on a nil receiver.
type RunMetrics struct {
	runsTotal      metric.Int64Counter
	runDuration    metric.Float64Histogram
	commitsVisited metric.Int64Counter
	commitsMatched metric.Int64Counter
	linesTotal     metric.Int64Counter
	binaryTotal    metric.Int64Counter
}

// NewRunMetrics creates run metric instruments from the given meter.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Completed runs by status"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	visited, err := mt.Int64Counter(metricCommitsVisited,
		metric.WithDescription("Commit pairs visited"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsVisited, err)
	}

	matched, err := mt.Int64Counter(metricCommitsMatched,
		metric.WithDescription("Commits by the target author"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsMatched, err)
	}

	lines, err := mt.Int64Counter(metricLinesTotal,
		metric.WithDescription("Counted lines by change kind"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricLinesTotal, err)
	}

	binary, err := mt.Int64Counter(metricBinaryTotal,
		metric.WithDescription("Binary file touches"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBinaryTotal, err)
	}

	return &RunMetrics{
		runsTotal:      runs,
		runDuration:    duration,
		commitsVisited: visited,
		commitsMatched: matched,
		linesTotal:     lines,
		binaryTotal:    binary,
	}, nil
}

// RecordRun records a finished run and whether it failed.
func (rm *RunMetrics) RecordRun(ctx context.Context, duration time.Duration, err error) {
	if rm == nil {
		return
	}

	status := statusOK
	if err != nil {
		status = statusError
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))

	rm.runsTotal.Add(ctx, 1, attrs)
	rm.runDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordVisited counts one visited commit pair.
func (rm *RunMetrics) RecordVisited(ctx context.Context) {
	if rm == nil {
		return
	}

	rm.commitsVisited.Add(ctx, 1)
}

// RecordCommit counts one folded commit and its line totals.
func (rm *RunMetrics) RecordCommit(ctx context.Context, additions, deletions, binary int) {
	if rm == nil {
		return
	}

	rm.commitsMatched.Add(ctx, 1)
	rm.linesTotal.Add(ctx, int64(additions), metric.WithAttributes(attribute.String(attrChange, "added")))
	rm.linesTotal.Add(ctx, int64(deletions), metric.WithAttributes(attribute.String(attrChange, "deleted")))
	rm.binaryTotal.Add(ctx, int64(binary))
}
