package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrWalkDone is returned by RevWalk.Next once the walk is exhausted.
var ErrWalkDone = errors.New("revwalk done")

// RevWalk wraps a libgit2 revision walker.
type RevWalk struct {
	walk *git2go.RevWalk
}

// PushHead adds HEAD to start walking from.
func (w *RevWalk) PushHead() error {
	err := w.walk.PushHead()
	if err != nil {
		return fmt.Errorf("push HEAD to revwalk: %w", err)
	}

	return nil
}

// Sorting sets the sorting mode for the walker.
func (w *RevWalk) Sorting(mode git2go.SortType) {
	w.walk.Sorting(mode)
}

// Next returns the next commit hash in the walk, or ErrWalkDone at the end.
func (w *RevWalk) Next() (Hash, error) {
	oid := new(git2go.Oid)

	err := w.walk.Next(oid)
	if git2go.IsErrorCode(err, git2go.ErrorCodeIterOver) {
		return Hash{}, ErrWalkDone
	}

	if err != nil {
		return Hash{}, fmt.Errorf("revwalk next: %w", err)
	}

	return HashFromOid(oid), nil
}

// Free releases the walker resources.
func (w *RevWalk) Free() {
	if w.walk != nil {
		w.walk.Free()
		w.walk = nil
	}
}
