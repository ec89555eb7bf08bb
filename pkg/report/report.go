// Package report renders aggregate contribution statistics.
package report

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitgat/pkg/authorstats"
)

// Format names accepted by Render.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// ErrUnknownFormat is returned by Render for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Report is the input to every renderer.
type Report struct {
	Repository string
	Author     string
	Exclude    []string
	Stats      authorstats.AggregateStats
}

// Options tweak rendering.
type Options struct {
	NoColor bool
}

// Render writes r to w in the named format.
func Render(w io.Writer, format string, r Report, opts Options) error {
	switch format {
	case FormatText:
		return WriteText(w, r.Stats)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatTable:
		return WriteTable(w, r, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteText prints the classic line-oriented summary: commit count, additions
// and deletions, then the largest commit's id, size and summary when there
// is one.
func WriteText(w io.Writer, stats authorstats.AggregateStats) error {
	_, err := fmt.Fprintf(w, " %d commits\n+%d\n-%d\n", stats.Commits, stats.Additions, stats.Deletions)
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	if stats.Largest == nil {
		return nil
	}

	_, err = fmt.Fprintf(w, "%s\n%d\n%s\n", stats.Largest.ID, stats.Largest.Size(), stats.Largest.Summary)
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

// document is the structured shape shared by the JSON and YAML renderers.
type document struct {
	Repository string         `json:"repository"          yaml:"repository"`
	Author     string         `json:"author"              yaml:"author"`
	Exclude    []string       `json:"exclude"             yaml:"exclude"`
	Commits    int            `json:"commits"             yaml:"commits"`
	Additions  int            `json:"additions"           yaml:"additions"`
	Deletions  int            `json:"deletions"           yaml:"deletions"`
	Binary     int            `json:"binary"              yaml:"binary"`
	Largest    *largestCommit `json:"largest"             yaml:"largest"`
	Languages  []languageRow  `json:"languages,omitempty" yaml:"languages,omitempty"`
}

type largestCommit struct {
	ID        string `json:"id"        yaml:"id"`
	Summary   string `json:"summary"   yaml:"summary"`
	Additions int    `json:"additions" yaml:"additions"`
	Deletions int    `json:"deletions" yaml:"deletions"`
	Size      int    `json:"size"      yaml:"size"`
}

type languageRow struct {
	Language  string `json:"language"  yaml:"language"`
	Additions int    `json:"additions" yaml:"additions"`
	Deletions int    `json:"deletions" yaml:"deletions"`
}

func newDocument(r Report) document {
	exclude := r.Exclude
	if exclude == nil {
		exclude = []string{}
	}

	doc := document{
		Repository: r.Repository,
		Author:     r.Author,
		Exclude:    exclude,
		Commits:    r.Stats.Commits,
		Additions:  r.Stats.Additions,
		Deletions:  r.Stats.Deletions,
		Binary:     r.Stats.Binary,
		Languages:  languageRows(r.Stats.Languages),
	}

	if l := r.Stats.Largest; l != nil {
		doc.Largest = &largestCommit{
			ID:        l.ID,
			Summary:   l.Summary,
			Additions: l.Additions,
			Deletions: l.Deletions,
			Size:      l.Size(),
		}
	}

	return doc
}

// languageRows orders languages by changed lines, largest first, then by name.
func languageRows(langs map[string]authorstats.LineCounts) []languageRow {
	if len(langs) == 0 {
		return nil
	}

	names := slices.Collect(maps.Keys(langs))
	slices.SortFunc(names, func(a, b string) int {
		ta := langs[a].Additions + langs[a].Deletions
		tb := langs[b].Additions + langs[b].Deletions

		return cmp.Or(cmp.Compare(tb, ta), strings.Compare(a, b))
	})

	rows := make([]languageRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, languageRow{
			Language:  name,
			Additions: langs[name].Additions,
			Deletions: langs[name].Deletions,
		})
	}

	return rows
}

func writeJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(newDocument(r))
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, r Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	err := encoder.Encode(newDocument(r))
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}

	return nil
}
