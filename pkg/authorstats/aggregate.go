package authorstats

import "maps"

// AggregateStats is the running result of a run.
//
// Largest is nil exactly when Commits is zero. It holds its own copy of the
// record with the greatest Size; on equal sizes the first record folded wins.
type AggregateStats struct {
	Commits   int                   `json:"commits"             yaml:"commits"`
	Additions int                   `json:"additions"           yaml:"additions"`
	Deletions int                   `json:"deletions"           yaml:"deletions"`
	Binary    int                   `json:"binary"              yaml:"binary"`
	Largest   *CommitRecord         `json:"largest,omitempty"   yaml:"largest,omitempty"`
	Languages map[string]LineCounts `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// Fold returns the stats with one more commit summary applied. The receiver
// is left untouched.
func (s AggregateStats) Fold(summary CommitSummary) AggregateStats {
	record := summary.Record

	next := AggregateStats{
		Commits:   s.Commits + 1,
		Additions: s.Additions + record.Additions,
		Deletions: s.Deletions + record.Deletions,
		Binary:    s.Binary + summary.Binary,
		Largest:   s.Largest,
		Languages: mergeLanguages(s.Languages, summary.Languages),
	}

	if s.Largest == nil || record.Size() > s.Largest.Size() {
		next.Largest = &record
	}

	return next
}

// FoldRecord folds a bare record with no binary or language detail.
func (s AggregateStats) FoldRecord(record CommitRecord) AggregateStats {
	return s.Fold(CommitSummary{Record: record})
}

func mergeLanguages(acc, add map[string]LineCounts) map[string]LineCounts {
	if len(add) == 0 {
		return acc
	}

	merged := make(map[string]LineCounts, len(acc)+len(add))
	maps.Copy(merged, acc)

	for lang, counts := range add {
		prev := merged[lang]
		merged[lang] = LineCounts{
			Additions: prev.Additions + counts.Additions,
			Deletions: prev.Deletions + counts.Deletions,
		}
	}

	return merged
}
