package authorstats

import "iter"

// Pairs turns a newest-first commit sequence into (commit, next commit)
// pairs. The last commit never appears as Current because nothing follows it.
// An error from commits is yielded once and ends the sequence.
func Pairs(commits iter.Seq2[CommitInfo, error]) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		var (
			current CommitInfo
			started bool
		)

		for commit, err := range commits {
			if err != nil {
				yield(Pair{}, err)

				return
			}

			if started {
				if !yield(Pair{Current: current, Predecessor: commit}, nil) {
					return
				}
			}

			current = commit
			started = true
		}
	}
}

// SliceCommits adapts a slice to the sequence type Pairs consumes.
func SliceCommits(commits []CommitInfo) iter.Seq2[CommitInfo, error] {
	return func(yield func(CommitInfo, error) bool) {
		for _, commit := range commits {
			if !yield(commit, nil) {
				return
			}
		}
	}
}
