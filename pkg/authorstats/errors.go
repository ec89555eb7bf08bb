package authorstats

import "errors"

// Sentinel errors for the failure classes of a run. Callers match them with
// errors.Is; the wrapped message names the path or commits involved.
var (
	// ErrRepositoryOpen means the path is not an accessible repository.
	ErrRepositoryOpen = errors.New("cannot open repository")
	// ErrGraphTraversal means the commit walk failed to start or iterate.
	ErrGraphTraversal = errors.New("commit graph traversal failed")
	// ErrDiffComputation means the tree diff of one commit pair failed.
	ErrDiffComputation = errors.New("diff computation failed")
)
