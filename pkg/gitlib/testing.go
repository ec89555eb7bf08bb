package gitlib

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// TestRepo builds throwaway repositories for tests through libgit2 directly.
type TestRepo struct {
	tb     testing.TB
	path   string
	native *git2go.Repository
	clock  time.Time
}

// NewTestRepo initializes an empty non-bare repository in a temp directory.
// The native handle is released when the test finishes.
func NewTestRepo(tb testing.TB) *TestRepo {
	tb.Helper()

	dir := tb.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	if err != nil {
		tb.Fatalf("init repository: %v", err)
	}

	tb.Cleanup(repo.Free)

	return &TestRepo{
		tb:     tb,
		path:   dir,
		native: repo,
		clock:  time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the working directory of the repository.
func (tr *TestRepo) Path() string {
	return tr.path
}

// WriteFile creates or overwrites a file in the working directory.
func (tr *TestRepo) WriteFile(name, content string) {
	tr.tb.Helper()

	path := filepath.Join(tr.path, name)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		tr.tb.Fatalf("mkdir for %s: %v", name, err)
	}

	err = os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		tr.tb.Fatalf("write %s: %v", name, err)
	}
}

// RemoveFile deletes a file from the working directory.
func (tr *TestRepo) RemoveFile(name string) {
	tr.tb.Helper()

	err := os.Remove(filepath.Join(tr.path, name))
	if err != nil {
		tr.tb.Fatalf("remove %s: %v", name, err)
	}
}

// Commit stages the whole working tree and commits it on HEAD as author.
// Each commit is one minute after the previous one.
func (tr *TestRepo) Commit(author, message string) Hash {
	tr.tb.Helper()

	index, err := tr.native.Index()
	if err != nil {
		tr.tb.Fatalf("open index: %v", err)
	}
	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	if err != nil {
		tr.tb.Fatalf("stage files: %v", err)
	}

	err = index.UpdateAll([]string{"*"}, nil)
	if err != nil {
		tr.tb.Fatalf("stage removals: %v", err)
	}

	err = index.Write()
	if err != nil {
		tr.tb.Fatalf("write index: %v", err)
	}

	treeID, err := index.WriteTree()
	if err != nil {
		tr.tb.Fatalf("write tree: %v", err)
	}

	tree, err := tr.native.LookupTree(treeID)
	if err != nil {
		tr.tb.Fatalf("lookup tree: %v", err)
	}
	defer tree.Free()

	tr.clock = tr.clock.Add(time.Minute)
	sig := &git2go.Signature{
		Name:  author,
		Email: "dev@example.com",
		When:  tr.clock,
	}

	var parents []*git2go.Commit

	head, err := tr.native.Head()
	if err == nil {
		headCommit, lookupErr := tr.native.LookupCommit(head.Target())
		if lookupErr != nil {
			tr.tb.Fatalf("lookup HEAD commit: %v", lookupErr)
		}

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := tr.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	if err != nil {
		tr.tb.Fatalf("create commit: %v", err)
	}

	for _, parent := range parents {
		parent.Free()
	}

	return HashFromOid(oid)
}
