package authorstats

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/gitgat/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitgat/pkg/observability"
)

const tracerName = "gitgat/authorstats"

// History is a newest-first commit sequence plus its length when known.
type History struct {
	// Total is the number of commits Commits will yield, or zero if unknown.
	Total   int
	Commits iter.Seq2[CommitInfo, error]
}

// Source supplies the commit walk and per-pair diffs a Runner folds.
type Source interface {
	// Walk returns the history newest-first.
	Walk(ctx context.Context) (History, error)
	// Diff classifies the lines changed from pair.Predecessor to pair.Current.
	Diff(ctx context.Context, pair Pair) iter.Seq2[gitlib.DiffLine, error]
}

// Progress describes how far a run has advanced.
type Progress struct {
	Visited int
	Total   int
	Matched int
}

// Runner drives one aggregation run. All fields except Source are optional.
type Runner struct {
	Source  Source
	Author  string
	Exclude ExclusionSet

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.RunMetrics

	// TraceCommits records a span per summarized commit.
	TraceCommits bool

	// OnProgress is called after every visited pair and once when the walk
	// is loaded.
	OnProgress func(Progress)
}

// Run walks the history and folds every commit by the target author.
// Cancellation is observed between pairs only, so a record is either fully
// folded or not at all. On error no partial stats are returned.
func (r *Runner) Run(ctx context.Context) (_ AggregateStats, err error) {
	logger := r.logger()
	tracer := r.tracer()

	ctx, span := tracer.Start(ctx, "authorstats.Run", trace.WithAttributes(
		attribute.String("gitgat.author", r.Author),
		attribute.Int("gitgat.exclude.count", len(r.Exclude.prefixes)),
	))
	started := time.Now()

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		r.Metrics.RecordRun(ctx, time.Since(started), err)
		span.End()
	}()

	history, err := r.Source.Walk(ctx)
	if err != nil {
		return AggregateStats{}, err
	}

	logger.DebugContext(ctx, "history loaded", "commits", history.Total)

	progress := Progress{Total: max(history.Total-1, 0)}
	r.report(progress)

	var stats AggregateStats

	for pair, pairErr := range Pairs(history.Commits) {
		if pairErr != nil {
			return AggregateStats{}, fmt.Errorf("%w: %w", ErrGraphTraversal, pairErr)
		}

		ctxErr := ctx.Err()
		if ctxErr != nil {
			return AggregateStats{}, fmt.Errorf("run interrupted after %d commits: %w", progress.Visited, ctxErr)
		}

		progress.Visited++
		r.Metrics.RecordVisited(ctx)

		if MatchAuthor(pair.Current, r.Author) {
			summary, sumErr := r.summarize(ctx, tracer, pair)
			if sumErr != nil {
				return AggregateStats{}, sumErr
			}

			stats = stats.Fold(summary)
			progress.Matched++

			r.Metrics.RecordCommit(ctx, summary.Record.Additions, summary.Record.Deletions, summary.Binary)
			logger.DebugContext(ctx, "commit folded",
				"commit", summary.Record.ID,
				"additions", summary.Record.Additions,
				"deletions", summary.Record.Deletions,
				"binary", summary.Binary,
			)
		}

		r.report(progress)
	}

	span.SetAttributes(
		attribute.Int("gitgat.commits.visited", progress.Visited),
		attribute.Int("gitgat.commits.matched", stats.Commits),
	)
	logger.DebugContext(ctx, "run finished",
		"visited", progress.Visited,
		"matched", stats.Commits,
		"elapsed", time.Since(started),
	)

	return stats, nil
}

func (r *Runner) summarize(ctx context.Context, tracer trace.Tracer, pair Pair) (CommitSummary, error) {
	if !r.TraceCommits {
		return Summarize(pair.Current, r.Source.Diff(ctx, pair), r.Exclude)
	}

	ctx, span := tracer.Start(ctx, "authorstats.Summarize", trace.WithAttributes(
		attribute.String("gitgat.commit", pair.Current.ID),
		attribute.String("gitgat.predecessor", pair.Predecessor.ID),
	))
	defer span.End()

	summary, err := Summarize(pair.Current, r.Source.Diff(ctx, pair), r.Exclude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return CommitSummary{}, err
	}

	span.SetAttributes(
		attribute.Int("gitgat.additions", summary.Record.Additions),
		attribute.Int("gitgat.deletions", summary.Record.Deletions),
	)

	return summary, nil
}

func (r *Runner) report(progress Progress) {
	if r.OnProgress != nil {
		r.OnProgress(progress)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return slog.Default()
}

func (r *Runner) tracer() trace.Tracer {
	if r.Tracer != nil {
		return r.Tracer
	}

	return otel.Tracer(tracerName)
}
