package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitgat/pkg/authorstats"
)

func fakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start

	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestProgressReporter_Disabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	p := newProgressReporter(&buf, false)
	p.Start()
	p.Update(authorstats.Progress{Visited: 1, Total: 1})
	p.Finish()

	assert.Empty(t, buf.String())
}

func TestProgressReporter_Throttles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	now, advance := fakeClock(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	p := newProgressReporter(&buf, true)
	p.now = now

	p.Start()
	p.Update(authorstats.Progress{Visited: 0, Total: 2500})
	p.Update(authorstats.Progress{Visited: 1, Total: 2500})

	advance(3 * time.Second)
	p.Update(authorstats.Progress{Visited: 1200, Total: 2500})

	advance(time.Millisecond)
	p.Update(authorstats.Progress{Visited: 2500, Total: 2500})
	p.Finish()

	want := "Collecting commits\n" +
		"\r[0s] 0/2,500 commits" +
		"\r[3s] 1,200/2,500 commits" +
		"\r[3s] 2,500/2,500 commits" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestProgressReporter_FinishWithoutUpdates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	p := newProgressReporter(&buf, true)
	p.Start()
	p.Finish()

	assert.Equal(t, "Collecting commits\n", buf.String())
}

func TestIsTerminal_Buffer(t *testing.T) {
	t.Parallel()

	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestProgressf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	progressf(true, &buf, "hidden %d", 1)
	progressf(false, &buf, "shown %d", 2)

	assert.Equal(t, "progress: shown 2\n", buf.String())
}
