package authorstats_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitgat/pkg/authorstats"
)

func collectPairs(t *testing.T, commits []authorstats.CommitInfo) []authorstats.Pair {
	t.Helper()

	var pairs []authorstats.Pair

	for pair, err := range authorstats.Pairs(authorstats.SliceCommits(commits)) {
		require.NoError(t, err)

		pairs = append(pairs, pair)
	}

	return pairs
}

func TestPairs(t *testing.T) {
	t.Parallel()

	c := authorstats.CommitInfo{ID: "c"}
	b := authorstats.CommitInfo{ID: "b"}
	a := authorstats.CommitInfo{ID: "a"}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, collectPairs(t, nil))
	})

	t.Run("single_root", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, collectPairs(t, []authorstats.CommitInfo{a}))
	})

	t.Run("chain", func(t *testing.T) {
		t.Parallel()

		pairs := collectPairs(t, []authorstats.CommitInfo{c, b, a})

		assert.Equal(t, []authorstats.Pair{
			{Current: c, Predecessor: b},
			{Current: b, Predecessor: a},
		}, pairs)
	})
}

func TestPairs_StopEarly(t *testing.T) {
	t.Parallel()

	commits := []authorstats.CommitInfo{{ID: "d"}, {ID: "c"}, {ID: "b"}, {ID: "a"}}

	var seen []string

	for pair, err := range authorstats.Pairs(authorstats.SliceCommits(commits)) {
		require.NoError(t, err)

		seen = append(seen, pair.Current.ID)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"d", "c"}, seen)
}

func TestPairs_ErrorEndsSequence(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken object")

	commits := func(yield func(authorstats.CommitInfo, error) bool) {
		if !yield(authorstats.CommitInfo{ID: "c"}, nil) {
			return
		}

		if !yield(authorstats.CommitInfo{ID: "b"}, nil) {
			return
		}

		if !yield(authorstats.CommitInfo{}, errBroken) {
			return
		}

		yield(authorstats.CommitInfo{ID: "a"}, nil)
	}

	var (
		pairs []authorstats.Pair
		errs  []error
	)

	for pair, err := range authorstats.Pairs(commits) {
		if err != nil {
			errs = append(errs, err)

			continue
		}

		pairs = append(pairs, pair)
	}

	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], errBroken)
	assert.Len(t, pairs, 1)
}
