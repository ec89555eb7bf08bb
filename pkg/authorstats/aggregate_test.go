package authorstats_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitgat/pkg/authorstats"
)

func TestCommitRecord_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record authorstats.CommitRecord
		want   int
	}{
		{"empty", authorstats.CommitRecord{}, 0},
		{"additions_dominate", authorstats.CommitRecord{Additions: 10, Deletions: 1}, 10},
		{"deletions_dominate", authorstats.CommitRecord{Additions: 3, Deletions: 7}, 7},
		{"equal", authorstats.CommitRecord{Additions: 4, Deletions: 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.record.Size())
		})
	}
}

func TestAggregateStats_ZeroValue(t *testing.T) {
	t.Parallel()

	var stats authorstats.AggregateStats

	assert.Zero(t, stats.Commits)
	assert.Zero(t, stats.Additions)
	assert.Zero(t, stats.Deletions)
	assert.Nil(t, stats.Largest)
}

func TestAggregateStats_FoldTotals(t *testing.T) {
	t.Parallel()

	var stats authorstats.AggregateStats

	records := []authorstats.CommitRecord{
		{ID: "a", Summary: "one", Additions: 3, Deletions: 1},
		{ID: "b", Summary: "two", Additions: 0, Deletions: 9},
		{ID: "c", Summary: "three", Additions: 5, Deletions: 5},
	}

	for _, record := range records {
		stats = stats.FoldRecord(record)
	}

	assert.Equal(t, 3, stats.Commits)
	assert.Equal(t, 8, stats.Additions)
	assert.Equal(t, 15, stats.Deletions)

	require.NotNil(t, stats.Largest)
	assert.Equal(t, "b", stats.Largest.ID)
}

func TestAggregateStats_FoldLeavesReceiverUntouched(t *testing.T) {
	t.Parallel()

	base := authorstats.AggregateStats{}.Fold(authorstats.CommitSummary{
		Record:    authorstats.CommitRecord{ID: "a", Additions: 2},
		Languages: map[string]authorstats.LineCounts{"Go": {Additions: 2}},
	})

	next := base.Fold(authorstats.CommitSummary{
		Record:    authorstats.CommitRecord{ID: "b", Additions: 5},
		Languages: map[string]authorstats.LineCounts{"Go": {Additions: 5}},
	})

	assert.Equal(t, 1, base.Commits)
	assert.Equal(t, "a", base.Largest.ID)
	assert.Equal(t, 2, base.Languages["Go"].Additions)

	assert.Equal(t, 2, next.Commits)
	assert.Equal(t, "b", next.Largest.ID)
	assert.Equal(t, 7, next.Languages["Go"].Additions)
}

func TestAggregateStats_LargestTieKeepsFirst(t *testing.T) {
	t.Parallel()

	var stats authorstats.AggregateStats

	stats = stats.FoldRecord(authorstats.CommitRecord{ID: "first", Additions: 6, Deletions: 2})
	stats = stats.FoldRecord(authorstats.CommitRecord{ID: "second", Additions: 1, Deletions: 6})
	stats = stats.FoldRecord(authorstats.CommitRecord{ID: "third", Additions: 6})

	require.NotNil(t, stats.Largest)
	assert.Equal(t, "first", stats.Largest.ID)
}

func TestAggregateStats_LargestOwnsItsCopy(t *testing.T) {
	t.Parallel()

	record := authorstats.CommitRecord{ID: "a", Summary: "orig", Additions: 1}

	stats := authorstats.AggregateStats{}.FoldRecord(record)
	record.Summary = "mutated"

	assert.Equal(t, "orig", stats.Largest.Summary)
}

func TestAggregateStats_BinaryAndLanguages(t *testing.T) {
	t.Parallel()

	var stats authorstats.AggregateStats

	stats = stats.Fold(authorstats.CommitSummary{
		Record: authorstats.CommitRecord{ID: "a", Additions: 4, Deletions: 1},
		Binary: 2,
		Languages: map[string]authorstats.LineCounts{
			"Go":       {Additions: 3, Deletions: 1},
			"Markdown": {Additions: 1},
		},
	})
	stats = stats.Fold(authorstats.CommitSummary{
		Record: authorstats.CommitRecord{ID: "b", Additions: 2},
		Binary: 1,
		Languages: map[string]authorstats.LineCounts{
			"Go": {Additions: 2},
		},
	})

	want := map[string]authorstats.LineCounts{
		"Go":       {Additions: 5, Deletions: 1},
		"Markdown": {Additions: 1},
	}

	assert.Equal(t, 3, stats.Binary)
	assert.Equal(t, 6, stats.Additions, "binary touches never count as lines")

	if diff := cmp.Diff(want, stats.Languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
}
