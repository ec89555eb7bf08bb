// Package authorstats folds a commit history into contribution statistics
// for a single author.
//
// Commits are visited newest-first. Every commit except the root is diffed
// against the commit that follows it in that order, and commits authored by
// the target are summarized and folded into an AggregateStats value.
package authorstats

// NoSummary replaces an absent commit summary.
const NoSummary = "<no summary>"

// CommitInfo is the commit metadata the pipeline reads.
type CommitInfo struct {
	ID         string
	AuthorName string
	Summary    string
}

// Pair couples a commit with the commit that follows it in walk order.
type Pair struct {
	Current     CommitInfo
	Predecessor CommitInfo
}

// LineCounts tallies added and deleted lines.
type LineCounts struct {
	Additions int `json:"additions" yaml:"additions"`
	Deletions int `json:"deletions" yaml:"deletions"`
}

// CommitRecord is the per-commit result of summarization. Counts only include
// lines whose path survived the exclusion filter.
type CommitRecord struct {
	ID        string `json:"id"        yaml:"id"`
	Summary   string `json:"summary"   yaml:"summary"`
	Additions int    `json:"additions" yaml:"additions"`
	Deletions int    `json:"deletions" yaml:"deletions"`
}

// Size ranks commits: the larger of additions and deletions.
func (r CommitRecord) Size() int {
	return max(r.Additions, r.Deletions)
}

// CommitSummary is everything the summarizer learns about one commit.
// Binary touches and the language split never feed the record's line counts.
type CommitSummary struct {
	Record    CommitRecord
	Binary    int
	Languages map[string]LineCounts
}
