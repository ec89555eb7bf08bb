package authorstats

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/gitgat/pkg/gitlib"
)

// GitSource reads history and diffs from a local repository through libgit2.
type GitSource struct {
	repo   *gitlib.Repository
	logger *slog.Logger
	opts   gitlib.DiffOptions
}

// OpenGitSource opens the repository rooted at path.
func OpenGitSource(path string, logger *slog.Logger) (*GitSource, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRepositoryOpen, path, statErr)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w %s: not a directory", ErrRepositoryOpen, path)
	}

	repo, err := gitlib.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRepositoryOpen, path, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &GitSource{
		repo:   repo,
		logger: logger,
		opts: gitlib.DiffOptions{
			IgnoreBlankLines: true,
			IgnoreFilemode:   true,
		},
	}, nil
}

// Close releases the repository.
func (g *GitSource) Close() {
	g.repo.Free()
}

// Walk collects the hashes reachable from HEAD in topological order, newest
// first, and returns a sequence that loads each commit's metadata lazily.
func (g *GitSource) Walk(ctx context.Context) (History, error) {
	hashes, err := g.repo.LogHashes(&gitlib.LogOptions{Sorting: git2go.SortTopological})
	if err != nil {
		return History{}, fmt.Errorf("%w: %s: %w", ErrGraphTraversal, g.repo.Path(), err)
	}

	g.logger.DebugContext(ctx, "revision walk complete", "path", g.repo.Path(), "commits", len(hashes))

	commits := func(yield func(CommitInfo, error) bool) {
		for _, hash := range hashes {
			info, lookupErr := g.commitInfo(hash)
			if !yield(info, lookupErr) || lookupErr != nil {
				return
			}
		}
	}

	return History{Total: len(hashes), Commits: commits}, nil
}

func (g *GitSource) commitInfo(hash gitlib.Hash) (CommitInfo, error) {
	commit, err := g.repo.LookupCommit(hash)
	if err != nil {
		return CommitInfo{}, err
	}
	defer commit.Free()

	return CommitInfo{
		ID:         commit.Hash().String(),
		AuthorName: commit.Author().Name,
		Summary:    commit.Summary(),
	}, nil
}

// Diff yields the classified lines between the predecessor's tree and the
// current commit's tree. Failures are yielded once, wrapped in
// ErrDiffComputation.
func (g *GitSource) Diff(ctx context.Context, pair Pair) iter.Seq2[gitlib.DiffLine, error] {
	return func(yield func(gitlib.DiffLine, error) bool) {
		diff, err := g.diffPair(pair)
		if err != nil {
			yield(gitlib.DiffLine{}, fmt.Errorf("%w: %s..%s: %w",
				ErrDiffComputation, pair.Predecessor.ID, pair.Current.ID, err))

			return
		}
		defer diff.Free()

		if g.logger.Enabled(ctx, slog.LevelDebug) {
			deltas, deltaErr := diff.NumDeltas()
			if deltaErr == nil {
				g.logger.DebugContext(ctx, "diffing commit", "commit", pair.Current.ID, "files", deltas)
			}
		}

		for line, lineErr := range diff.Lines() {
			if lineErr != nil {
				yield(gitlib.DiffLine{}, fmt.Errorf("%w: %s..%s: %w",
					ErrDiffComputation, pair.Predecessor.ID, pair.Current.ID, lineErr))

				return
			}

			if !yield(line, nil) {
				return
			}
		}
	}
}

func (g *GitSource) diffPair(pair Pair) (*gitlib.Diff, error) {
	oldTree, err := g.treeOf(pair.Predecessor.ID)
	if err != nil {
		return nil, err
	}
	defer oldTree.Free()

	newTree, err := g.treeOf(pair.Current.ID)
	if err != nil {
		return nil, err
	}
	defer newTree.Free()

	return g.repo.DiffTreeToTree(oldTree, newTree, g.opts)
}

func (g *GitSource) treeOf(id string) (*gitlib.Tree, error) {
	hash, err := gitlib.ParseHash(id)
	if err != nil {
		return nil, err
	}

	commit, err := g.repo.LookupCommit(hash)
	if err != nil {
		return nil, err
	}
	defer commit.Free()

	return commit.Tree()
}
