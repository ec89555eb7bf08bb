package gitlib_test

import (
	"testing"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitgat/pkg/gitlib"
)

// diffCommits diffs the trees of two commits and collects the classified lines.
func diffCommits(t *testing.T, repo *gitlib.Repository, oldHash, newHash gitlib.Hash, opts gitlib.DiffOptions) []gitlib.DiffLine {
	t.Helper()

	oldCommit, err := repo.LookupCommit(oldHash)
	require.NoError(t, err)

	defer oldCommit.Free()

	newCommit, err := repo.LookupCommit(newHash)
	require.NoError(t, err)

	defer newCommit.Free()

	oldTree, err := oldCommit.Tree()
	require.NoError(t, err)

	defer oldTree.Free()

	newTree, err := newCommit.Tree()
	require.NoError(t, err)

	defer newTree.Free()

	diff, err := repo.DiffTreeToTree(oldTree, newTree, opts)
	require.NoError(t, err)

	defer diff.Free()

	var lines []gitlib.DiffLine

	for line, lineErr := range diff.Lines() {
		require.NoError(t, lineErr)

		lines = append(lines, line)
	}

	return lines
}

func countKinds(lines []gitlib.DiffLine, path string) map[gitlib.LineKind]int {
	counts := map[gitlib.LineKind]int{}

	for _, line := range lines {
		if line.Path == path {
			counts[line.Kind]++
		}
	}

	return counts
}

func TestClassifyOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin   git2go.DiffLineType
		expected gitlib.LineKind
	}{
		{git2go.DiffLineAddition, gitlib.LineAddition},
		{git2go.DiffLineDeletion, gitlib.LineDeletion},
		{git2go.DiffLineBinary, gitlib.LineBinary},
		{git2go.DiffLineContext, gitlib.LineOther},
		{git2go.DiffLineContextEOFNL, gitlib.LineOther},
		{git2go.DiffLineAddEOFNL, gitlib.LineOther},
		{git2go.DiffLineDelEOFNL, gitlib.LineOther},
		{git2go.DiffLineFileHdr, gitlib.LineOther},
		{git2go.DiffLineHunkHdr, gitlib.LineOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, gitlib.ClassifyOrigin(tt.origin), "origin %q", rune(tt.origin))
	}
}

func TestLineKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "addition", gitlib.LineAddition.String())
	assert.Equal(t, "deletion", gitlib.LineDeletion.String())
	assert.Equal(t, "binary", gitlib.LineBinary.String())
	assert.Equal(t, "other", gitlib.LineOther.String())
	assert.Equal(t, "LineKind(42)", gitlib.LineKind(42).String())
}

func TestDiffLines_AdditionsAndDeletions(t *testing.T) {
	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("src/main.go", "one\ntwo\nthree\n")
	tr.WriteFile("old.txt", "x\ny\n")
	first := tr.Commit("Alice", "first")

	tr.WriteFile("src/main.go", "one\nTWO\nthree\nfour\n")
	tr.RemoveFile("old.txt")
	second := tr.Commit("Alice", "second")

	repo := openTestRepo(t, tr)
	lines := diffCommits(t, repo, first, second, gitlib.DiffOptions{})

	mainCounts := countKinds(lines, "src/main.go")
	assert.Equal(t, 2, mainCounts[gitlib.LineAddition])
	assert.Equal(t, 1, mainCounts[gitlib.LineDeletion])
	assert.Positive(t, mainCounts[gitlib.LineOther])

	// Deleted files report their old path on the new side.
	oldCounts := countKinds(lines, "old.txt")
	assert.Equal(t, 0, oldCounts[gitlib.LineAddition])
	assert.Equal(t, 2, oldCounts[gitlib.LineDeletion])
}

func TestDiffLines_BinaryFile(t *testing.T) {
	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("readme.txt", "hello\n")
	first := tr.Commit("Alice", "first")

	tr.WriteFile("logo.bin", "\x00\x01\x02binary\x00payload")
	second := tr.Commit("Alice", "add binary")

	repo := openTestRepo(t, tr)
	lines := diffCommits(t, repo, first, second, gitlib.DiffOptions{})

	require.Len(t, lines, 1)
	assert.Equal(t, gitlib.DiffLine{Path: "logo.bin", Kind: gitlib.LineBinary}, lines[0])
}

func TestDiffLines_IgnoreBlankLines(t *testing.T) {
	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("a.txt", "a\nb\n")
	first := tr.Commit("Alice", "first")

	tr.WriteFile("a.txt", "a\n\n\nb\n")
	second := tr.Commit("Alice", "blank lines only")

	repo := openTestRepo(t, tr)

	counted := diffCommits(t, repo, first, second, gitlib.DiffOptions{})
	assert.Equal(t, 2, countKinds(counted, "a.txt")[gitlib.LineAddition])

	ignored := diffCommits(t, repo, first, second, gitlib.DiffOptions{IgnoreBlankLines: true, IgnoreFilemode: true})
	assert.Equal(t, 0, countKinds(ignored, "a.txt")[gitlib.LineAddition])
}

func TestDiffLines_StopEarly(t *testing.T) {
	tr := gitlib.NewTestRepo(t)
	tr.WriteFile("a.txt", "1\n")
	first := tr.Commit("Alice", "first")

	tr.WriteFile("a.txt", "1\n2\n3\n4\n5\n")
	second := tr.Commit("Alice", "second")

	repo := openTestRepo(t, tr)

	oldCommit, err := repo.LookupCommit(first)
	require.NoError(t, err)

	defer oldCommit.Free()

	newCommit, err := repo.LookupCommit(second)
	require.NoError(t, err)

	defer newCommit.Free()

	oldTree, err := oldCommit.Tree()
	require.NoError(t, err)

	defer oldTree.Free()

	newTree, err := newCommit.Tree()
	require.NoError(t, err)

	defer newTree.Free()

	diff, err := repo.DiffTreeToTree(oldTree, newTree, gitlib.DiffOptions{})
	require.NoError(t, err)

	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	require.NoError(t, err)
	assert.Equal(t, 1, numDeltas)

	seen := 0

	for _, lineErr := range diff.Lines() {
		require.NoError(t, lineErr)

		seen++
		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen)
}
