package gitlib

import (
	"errors"
	"fmt"
	"iter"

	git2go "github.com/libgit2/git2go/v34"
)

// LineKind classifies a single line of a tree diff.
type LineKind int

const (
	// LineOther covers context lines, headers and end-of-file markers.
	LineOther LineKind = iota
	// LineAddition is a line present only in the new tree.
	LineAddition
	// LineDeletion is a line present only in the old tree.
	LineDeletion
	// LineBinary marks a change to a file libgit2 considers binary.
	LineBinary
)

// String returns the name of the line kind.
func (k LineKind) String() string {
	switch k {
	case LineOther:
		return "other"
	case LineAddition:
		return "addition"
	case LineDeletion:
		return "deletion"
	case LineBinary:
		return "binary"
	}

	return fmt.Sprintf("LineKind(%d)", int(k))
}

// DiffLine is one classified line of a tree diff, tagged with the path of the
// file it belongs to.
type DiffLine struct {
	Path string
	Kind LineKind
}

// ClassifyOrigin maps a libgit2 line origin onto a LineKind.
func ClassifyOrigin(origin git2go.DiffLineType) LineKind {
	switch origin {
	case git2go.DiffLineAddition:
		return LineAddition
	case git2go.DiffLineDeletion:
		return LineDeletion
	case git2go.DiffLineBinary:
		return LineBinary
	case git2go.DiffLineContext,
		git2go.DiffLineContextEOFNL,
		git2go.DiffLineAddEOFNL,
		git2go.DiffLineDelEOFNL,
		git2go.DiffLineFileHdr,
		git2go.DiffLineHunkHdr:
		return LineOther
	}

	return LineOther
}

// errStopLines aborts a libgit2 foreach once the consumer stops ranging.
var errStopLines = errors.New("diff line iteration stopped")

// Diff wraps a libgit2 diff.
type Diff struct {
	diff *git2go.Diff
}

// NumDeltas returns the number of file deltas in the diff.
func (d *Diff) NumDeltas() (int, error) {
	numDeltas, err := d.diff.NumDeltas()
	if err != nil {
		return 0, fmt.Errorf("get num deltas: %w", err)
	}

	return numDeltas, nil
}

// Lines returns a single-use iterator over every classified line of the diff.
// Binary files produce exactly one LineBinary entry and no text lines.
// The diff must not be freed while the iterator is in use.
func (d *Diff) Lines() iter.Seq2[DiffLine, error] {
	return func(yield func(DiffLine, error) bool) {
		fileCallback := func(delta git2go.DiffDelta, _ float64) (git2go.DiffForEachHunkCallback, error) {
			path := delta.NewFile.Path

			if delta.Flags&git2go.DiffFlagBinary != 0 {
				if !yield(DiffLine{Path: path, Kind: LineBinary}, nil) {
					return nil, errStopLines
				}

				return nil, nil
			}

			return func(_ git2go.DiffHunk) (git2go.DiffForEachLineCallback, error) {
				return func(line git2go.DiffLine) error {
					if !yield(DiffLine{Path: path, Kind: ClassifyOrigin(line.Origin)}, nil) {
						return errStopLines
					}

					return nil
				}, nil
			}, nil
		}

		err := d.diff.ForEach(fileCallback, git2go.DiffDetailLines)
		if err == nil || errors.Is(err, errStopLines) {
			return
		}

		yield(DiffLine{}, fmt.Errorf("diff foreach: %w", err))
	}
}

// Free releases the diff resources.
func (d *Diff) Free() {
	if d.diff == nil {
		return
	}

	// Free errors are non-actionable in cleanup.
	_ = d.diff.Free()
	d.diff = nil
}
