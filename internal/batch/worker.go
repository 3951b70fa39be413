package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/vk/cnfgrid/internal/cnf"
	"github.com/vk/cnfgrid/internal/ctxlog"
)

// worker is the processing loop for one concurrent worker. It drains the
// path channel and emits exactly one Outcome per path it picks up.
func (o *Orchestrator) worker(ctx context.Context, workerID int, pathChan <-chan string, outcomes chan<- Outcome, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for path := range pathChan {
		if ctx.Err() != nil {
			outcomes <- cancelledOutcome(path, ctx.Err())
			continue
		}
		outcomes <- o.processFile(ctx, path)
	}
	logger.Debug("Worker finished.")
}

// processFile runs the parse -> validate -> repair pipeline for one file.
// The Document, findings and corrected text are owned by this call alone
// and discarded once the Outcome is built.
func (o *Orchestrator) processFile(ctx context.Context, path string) Outcome {
	logger := ctxlog.FromContext(ctx).With("file", path)

	data, err := os.ReadFile(filepath.Join(o.cfg.Root, path))
	if err != nil {
		logger.Debug("File read failed.", "error", err)
		return Outcome{
			Path:     path,
			Status:   StatusFailed,
			Findings: []cnf.Finding{{Kind: cnf.IOFailure, Detail: err.Error()}},
		}
	}

	doc := cnf.Parse(string(data))
	findings := cnf.Validate(doc)
	if len(findings) == 0 {
		logger.Debug("File is clean.")
		return Outcome{Path: path, Status: StatusOK}
	}

	if o.cfg.OutputDir == "" {
		logger.Debug("File has findings, fixing disabled.", "findings", len(findings))
		return Outcome{Path: path, Status: StatusFailed, Findings: findings}
	}

	text, remaining, fixed := cnf.Repair(doc, findings)
	if !fixed {
		logger.Debug("No fixable findings.", "findings", len(findings))
		return Outcome{Path: path, Status: StatusFailed, Findings: findings}
	}

	if err := o.writeFixed(path, text); err != nil {
		logger.Debug("Writing corrected file failed.", "error", err)
		findings = append(findings, cnf.Finding{Kind: cnf.IOFailure, Detail: err.Error()})
		return Outcome{Path: path, Status: StatusFailed, Findings: findings}
	}

	logger.Debug("Corrected file written.", "remaining_findings", len(remaining))
	return Outcome{Path: path, Status: StatusFixed, Findings: findings, FixWritten: true}
}

// writeFixed stores the corrected text under the output directory, keeping
// the path relative to the batch root. The text is complete before the
// write begins, so a cancelled batch never leaves a truncated file.
func (o *Orchestrator) writeFixed(path, text string) error {
	target := filepath.Join(o.cfg.OutputDir, path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(text), 0o644)
}
