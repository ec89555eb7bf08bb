package authorstats

import "strings"

// ExclusionSet is an ordered list of path prefixes whose changes are not
// counted.
//
// Matching is a plain string prefix test, not path-segment aware: the prefix
// "docs" also excludes "docs2/readme.md".
type ExclusionSet struct {
	prefixes []string
}

// NewExclusionSet builds a set from prefixes, dropping empty entries since an
// empty prefix would match every path.
func NewExclusionSet(prefixes ...string) ExclusionSet {
	kept := make([]string, 0, len(prefixes))

	for _, prefix := range prefixes {
		if prefix != "" {
			kept = append(kept, prefix)
		}
	}

	return ExclusionSet{prefixes: kept}
}

// Prefixes returns a copy of the configured prefixes.
func (e ExclusionSet) Prefixes() []string {
	return append([]string(nil), e.prefixes...)
}

// Excludes reports whether changes to path are filtered out.
func (e ExclusionSet) Excludes(path string) bool {
	for _, prefix := range e.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// MatchAuthor reports whether a commit's author name is exactly target.
// Commits without an author name never match.
func MatchAuthor(info CommitInfo, target string) bool {
	return info.AuthorName != "" && info.AuthorName == target
}
