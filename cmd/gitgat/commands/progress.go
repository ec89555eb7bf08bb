package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Sumatoshi-tech/gitgat/pkg/authorstats"
)

// progressInterval bounds how often the progress line is redrawn.
const progressInterval = 100 * time.Millisecond

// progressReporter draws a single refreshed "[elapsed] n/total commits" line.
// A disabled reporter writes nothing.
type progressReporter struct {
	w        io.Writer
	enabled  bool
	interval time.Duration
	now      func() time.Time

	started time.Time
	last    time.Time
	drawn   bool
}

func newProgressReporter(w io.Writer, enabled bool) *progressReporter {
	return &progressReporter{
		w:        w,
		enabled:  enabled,
		interval: progressInterval,
		now:      time.Now,
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Start prints the header and starts the elapsed clock.
func (p *progressReporter) Start() {
	p.started = p.now()

	if p.enabled {
		fmt.Fprintln(p.w, "Collecting commits")
	}
}

// Update redraws the line at most once per interval. The final update is
// always drawn.
func (p *progressReporter) Update(progress authorstats.Progress) {
	if !p.enabled {
		return
	}

	now := p.now()
	final := progress.Visited >= progress.Total

	if p.drawn && !final && now.Sub(p.last) < p.interval {
		return
	}

	p.last = now
	p.drawn = true

	elapsed := now.Sub(p.started).Truncate(time.Second)
	fmt.Fprintf(p.w, "\r[%s] %s/%s commits",
		elapsed, humanize.Comma(int64(progress.Visited)), humanize.Comma(int64(progress.Total)))
}

// Finish terminates the progress line so later output starts on a fresh line.
func (p *progressReporter) Finish() {
	if p.enabled && p.drawn {
		fmt.Fprintln(p.w)
	}
}

// progressf prints a one-off status line unless silent.
func progressf(silent bool, writer io.Writer, format string, args ...any) {
	if silent {
		return
	}

	fmt.Fprintf(writer, "progress: "+format+"\n", args...)
}
