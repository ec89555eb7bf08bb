package authorstats

import (
	"fmt"
	"iter"
	"path"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/gitgat/pkg/gitlib"
)

// OtherLanguage groups lines whose file name enry cannot attribute.
const OtherLanguage = "Other"

// fileState caches the per-file decisions while lines of one file stream by.
type fileState struct {
	path     string
	excluded bool
	language string
}

func (f *fileState) enter(filePath string, exclude ExclusionSet) {
	if f.path == filePath && f.language != "" {
		return
	}

	f.path = filePath
	f.excluded = exclude.Excludes(filePath)

	f.language = enry.GetLanguage(path.Base(filePath), nil)
	if f.language == "" {
		f.language = OtherLanguage
	}
}

// Summarize consumes the classified diff lines of one commit and builds its
// summary. Lines under an excluded prefix are dropped before counting.
// A diff error aborts the summary so no partial record escapes.
func Summarize(
	info CommitInfo,
	lines iter.Seq2[gitlib.DiffLine, error],
	exclude ExclusionSet,
) (CommitSummary, error) {
	summaryText := info.Summary
	if summaryText == "" {
		summaryText = NoSummary
	}

	summary := CommitSummary{
		Record: CommitRecord{
			ID:      info.ID,
			Summary: summaryText,
		},
	}

	var file fileState

	for line, err := range lines {
		if err != nil {
			return CommitSummary{}, fmt.Errorf("summarize commit %s: %w", info.ID, err)
		}

		file.enter(line.Path, exclude)

		if file.excluded {
			continue
		}

		switch line.Kind {
		case gitlib.LineAddition:
			summary.Record.Additions++
			summary.addLanguage(file.language, LineCounts{Additions: 1})
		case gitlib.LineDeletion:
			summary.Record.Deletions++
			summary.addLanguage(file.language, LineCounts{Deletions: 1})
		case gitlib.LineBinary:
			summary.Binary++
		case gitlib.LineOther:
		}
	}

	return summary, nil
}

func (s *CommitSummary) addLanguage(lang string, delta LineCounts) {
	if s.Languages == nil {
		s.Languages = make(map[string]LineCounts)
	}

	counts := s.Languages[lang]
	counts.Additions += delta.Additions
	counts.Deletions += delta.Deletions
	s.Languages[lang] = counts
}
