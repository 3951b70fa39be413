package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/vk/cnfgrid/internal/batch"
	"github.com/vk/cnfgrid/internal/ctxlog"
	"github.com/vk/cnfgrid/internal/fsutil"
	"github.com/vk/cnfgrid/internal/report"
)

// Run executes one batch: discover files, process them concurrently,
// stream outcomes into the aggregator, then write both reports. Setup
// problems (bad target, uncreatable output directory) fail here, before
// any file is processed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Info("Starting validation.", "target", a.config.TargetDir)

	info, err := os.Stat(a.config.TargetDir)
	if err != nil {
		return fmt.Errorf("target directory %s: %w", a.config.TargetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %s is not a directory", a.config.TargetDir)
	}

	if a.config.OutputDir != "" {
		if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		a.logger.Info("Fixing enabled.", "output", a.config.OutputDir)
	}

	files, err := fsutil.FindCNFFiles(a.config.TargetDir)
	if err != nil {
		return fmt.Errorf("failed to scan target directory: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No CNF files found. Nothing to do.", "target", a.config.TargetDir)
		return nil
	}
	a.logger.Debug("Discovered input files.", "count", len(files))

	orch := batch.New(batch.Config{
		Root:      a.config.TargetDir,
		OutputDir: a.config.OutputDir,
		Workers:   a.config.Workers,
	})

	agg := report.NewAggregator()
	prog := newProgress(a.outW, len(files), !a.config.Quiet)
	for outcome := range orch.Run(ctx, files) {
		agg.Add(outcome)
		prog.observe(outcome.Status)
	}
	prog.finish()

	if err := a.writeReports(ctx, agg); err != nil {
		return err
	}

	summary := agg.Summary()
	a.logger.Info("Validation finished.",
		"files", summary.TotalFiles,
		"ok", summary.ByStatus[batch.StatusOK],
		"fixed", summary.ByStatus[batch.StatusFixed],
		"failed", summary.ByStatus[batch.StatusFailed],
	)

	if failed := summary.ByStatus[batch.StatusFailed]; failed > 0 {
		return &FailedFilesError{Failed: failed, Total: summary.TotalFiles}
	}
	return nil
}

// writeReports writes the summary and detail artifacts concurrently, the
// way the batch itself ran: both are derived from the same drained
// aggregate, so they cannot race.
func (a *App) writeReports(ctx context.Context, agg *report.Aggregator) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.writeReportFile(a.config.SummaryPath, func(f *os.File) error {
			return report.WriteSummary(f, agg.Summary())
		})
	})
	g.Go(func() error {
		return a.writeReportFile(a.config.DetailsPath, func(f *os.File) error {
			return report.WriteDetails(f, agg.Details())
		})
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	a.logger.Info("Reports written.", "summary", a.config.SummaryPath, "details", a.config.DetailsPath)
	return nil
}

func (a *App) writeReportFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
