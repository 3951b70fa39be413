package batch

import (
	"context"
	"sync"

	"github.com/vk/cnfgrid/internal/cnf"
	"github.com/vk/cnfgrid/internal/ctxlog"
)

// Status classifies one file's outcome.
type Status int

const (
	// StatusOK means the file validated with no findings.
	StatusOK Status = iota
	// StatusFixed means a corrected copy was written to the output
	// directory. Report-only findings may still remain.
	StatusFixed
	// StatusFailed means the file has defects that were not (or could not
	// be) fixed, or it could not be read or written at all.
	StatusFailed
)

// String returns the stable name used in reports.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFixed:
		return "fixed"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the write-once result of processing one file. Path is
// relative to the batch root. Findings holds everything the validator
// reported, or a single synthetic io_failure finding for unreadable files.
type Outcome struct {
	Path       string
	Status     Status
	Findings   []cnf.Finding
	FixWritten bool
}

// Config holds the orchestrator's settings, passed in explicitly at
// construction rather than read from ambient state.
type Config struct {
	// Root is the directory the input paths are relative to.
	Root string
	// OutputDir enables repair when non-empty; corrected files are written
	// under it, mirroring the path relative to Root. Originals are never
	// opened for writing.
	OutputDir string
	// Workers bounds how many files are in flight at once.
	Workers int
}

// Orchestrator runs the per-file pipeline over a bounded worker pool.
type Orchestrator struct {
	cfg Config
}

// New creates an Orchestrator. A non-positive worker count falls back to 1.
func New(cfg Config) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Orchestrator{cfg: cfg}
}

// Run processes every path and returns a channel that yields exactly one
// Outcome per path, in completion order. The channel is closed once the
// batch drains. On context cancellation the paths not yet scheduled are
// reported as failed outcomes without being read, and no partial output
// file is ever left behind (corrected text is written in one piece, after
// it is fully computed).
func (o *Orchestrator) Run(ctx context.Context, paths []string) <-chan Outcome {
	outcomes := make(chan Outcome, len(paths))
	pathChan := make(chan string)

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting batch worker pool.", "workers", o.cfg.Workers, "files", len(paths))

	var wg sync.WaitGroup
	wg.Add(o.cfg.Workers)
	for i := 0; i < o.cfg.Workers; i++ {
		go o.worker(ctx, i, pathChan, outcomes, &wg)
	}

	go func() {
		defer close(outcomes)
	feed:
		for i, path := range paths {
			select {
			case pathChan <- path:
			case <-ctx.Done():
				logger.Warn("Batch cancelled, reporting unscheduled files as failed.", "remaining", len(paths)-i)
				for _, skipped := range paths[i:] {
					outcomes <- cancelledOutcome(skipped, ctx.Err())
				}
				break feed
			}
		}
		close(pathChan)
		wg.Wait()
	}()

	return outcomes
}

func cancelledOutcome(path string, err error) Outcome {
	return Outcome{
		Path:   path,
		Status: StatusFailed,
		Findings: []cnf.Finding{{
			Kind:   cnf.IOFailure,
			Detail: "batch cancelled before processing: " + err.Error(),
		}},
	}
}
