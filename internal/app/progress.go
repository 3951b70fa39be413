package app

import (
	"fmt"
	"io"

	"github.com/vk/cnfgrid/internal/batch"
)

// progress renders a single self-overwriting status line as outcomes
// arrive. It is driven from the one goroutine draining the outcome
// channel, so it needs no locking.
type progress struct {
	w       io.Writer
	enabled bool
	total   int
	done    int
	ok      int
	fixed   int
	failed  int
}

func newProgress(w io.Writer, total int, enabled bool) *progress {
	return &progress{w: w, enabled: enabled, total: total}
}

func (p *progress) observe(status batch.Status) {
	p.done++
	switch status {
	case batch.StatusOK:
		p.ok++
	case batch.StatusFixed:
		p.fixed++
	case batch.StatusFailed:
		p.failed++
	}
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.w, "\rvalidating %d/%d  ok:%d fixed:%d failed:%d", p.done, p.total, p.ok, p.fixed, p.failed)
}

// finish terminates the progress line so later output starts on a fresh one.
func (p *progress) finish() {
	if p.enabled && p.done > 0 {
		fmt.Fprintln(p.w)
	}
}
