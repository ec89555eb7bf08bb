package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// diffIgnoreBlankLines mirrors GIT_DIFF_IGNORE_BLANK_LINES, which git2go
// does not export.
const diffIgnoreBlankLines git2go.DiffOptionsFlag = 1 << 19

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens a git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// IsEmpty reports whether HEAD points at a branch with no commits yet.
func (r *Repository) IsEmpty() (bool, error) {
	unborn, err := r.repo.IsHeadUnborn()
	if err != nil {
		return false, fmt.Errorf("check unborn HEAD: %w", err)
	}

	return unborn, nil
}

// LookupCommit returns the commit with the given hash.
func (r *Repository) LookupCommit(hash Hash) (*Commit, error) {
	commit, err := r.repo.LookupCommit(hash.ToOid())
	if err != nil {
		return nil, fmt.Errorf("lookup commit %s: %w", hash, err)
	}

	return &Commit{commit: commit}, nil
}

// Walk creates a new revision walker.
func (r *Repository) Walk() (*RevWalk, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	return &RevWalk{walk: walk}, nil
}

// LogOptions configures history traversal.
type LogOptions struct {
	// Sorting is the libgit2 sort mode. Zero means git2go.SortTopological.
	Sorting git2go.SortType
}

// LogHashes returns the hashes of every commit reachable from HEAD, in walk order.
// An unborn HEAD yields an empty slice.
func (r *Repository) LogHashes(opts *LogOptions) ([]Hash, error) {
	empty, err := r.IsEmpty()
	if err != nil {
		return nil, err
	}

	if empty {
		return nil, nil
	}

	walk, err := r.Walk()
	if err != nil {
		return nil, err
	}
	defer walk.Free()

	err = walk.PushHead()
	if err != nil {
		return nil, err
	}

	sorting := git2go.SortTopological
	if opts != nil && opts.Sorting != 0 {
		sorting = opts.Sorting
	}

	walk.Sorting(sorting)

	var hashes []Hash

	for {
		hash, nextErr := walk.Next()
		if errors.Is(nextErr, ErrWalkDone) {
			return hashes, nil
		}

		if nextErr != nil {
			return nil, nextErr
		}

		hashes = append(hashes, hash)
	}
}

// DiffOptions selects the libgit2 diff flags gitgat cares about.
type DiffOptions struct {
	IgnoreBlankLines bool
	IgnoreFilemode   bool
}

// DiffTreeToTree computes the diff between two trees. Either tree may be nil.
func (r *Repository) DiffTreeToTree(oldTree, newTree *Tree, opts DiffOptions) (*Diff, error) {
	nativeOpts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	if opts.IgnoreBlankLines {
		nativeOpts.Flags |= diffIgnoreBlankLines
	}

	if opts.IgnoreFilemode {
		nativeOpts.Flags |= git2go.DiffIgnoreFilemode
	}

	var oldT, newT *git2go.Tree
	if oldTree != nil {
		oldT = oldTree.tree
	}

	if newTree != nil {
		newT = newTree.tree
	}

	diff, err := r.repo.DiffTreeToTree(oldT, newT, &nativeOpts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	return &Diff{diff: diff}, nil
}
