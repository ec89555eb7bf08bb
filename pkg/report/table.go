package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

type palette struct {
	title *color.Color
	added *color.Color
	del   *color.Color
	dim   *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title: color.New(color.Bold, color.FgCyan),
		added: color.New(color.FgGreen),
		del:   color.New(color.FgRed),
		dim:   color.New(color.Faint),
	}

	if noColor {
		for _, c := range []*color.Color{p.title, p.added, p.del, p.dim} {
			c.DisableColor()
		}
	}

	return p
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

// WriteTable renders the report as terminal tables: totals, the largest
// commit and the per-language split.
func WriteTable(w io.Writer, r Report, opts Options) error {
	p := newPalette(opts.NoColor)
	stats := r.Stats

	var b strings.Builder

	b.WriteString(p.title.Sprintf("%s in %s", r.Author, r.Repository))
	b.WriteString("\n")

	if len(r.Exclude) > 0 {
		b.WriteString(p.dim.Sprintf("excluding %s", strings.Join(r.Exclude, ", ")))
		b.WriteString("\n")
	}

	totals := newTable()
	totals.AppendHeader(table.Row{"Commits", "Added", "Deleted", "Binary"})
	totals.AppendRow(table.Row{
		comma(stats.Commits),
		p.added.Sprint("+" + comma(stats.Additions)),
		p.del.Sprint("-" + comma(stats.Deletions)),
		comma(stats.Binary),
	})
	b.WriteString(totals.Render())
	b.WriteString("\n")

	if l := stats.Largest; l != nil {
		largest := newTable()
		largest.SetTitle("Largest commit")
		largest.AppendHeader(table.Row{"Commit", "Size", "Added", "Deleted", "Summary"})
		largest.AppendRow(table.Row{
			l.ID,
			comma(l.Size()),
			p.added.Sprint("+" + comma(l.Additions)),
			p.del.Sprint("-" + comma(l.Deletions)),
			l.Summary,
		})
		b.WriteString("\n")
		b.WriteString(largest.Render())
		b.WriteString("\n")
	}

	if rows := languageRows(stats.Languages); len(rows) > 0 {
		langs := newTable()
		langs.SetTitle("By language")
		langs.AppendHeader(table.Row{"Language", "Added", "Deleted"})

		for _, row := range rows {
			langs.AppendRow(table.Row{
				row.Language,
				p.added.Sprint("+" + comma(row.Additions)),
				p.del.Sprint("-" + comma(row.Deletions)),
			})
		}

		b.WriteString("\n")
		b.WriteString(langs.Render())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write table report: %w", err)
	}

	return nil
}
