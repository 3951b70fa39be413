// Package report folds the batch outcome stream into a summary grouped by
// finding kind and a per-file detail log. The fold is order-independent;
// the rendered artifacts are sorted so output is deterministic regardless
// of completion order.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/cnfgrid/internal/batch"
	"github.com/vk/cnfgrid/internal/cnf"
)

// Summary aggregates finding and status counts across the whole batch.
type Summary struct {
	TotalFiles int
	ByStatus   map[batch.Status]int
	// ByKind counts individual findings per kind.
	ByKind map[cnf.FindingKind]int
	// SampleFiles lists up to five affected files per kind, in the order
	// their outcomes arrived.
	SampleFiles map[cnf.FindingKind][]string
}

// Detail is the per-file entry of the detail log.
type Detail struct {
	Path     string
	Status   batch.Status
	Findings []cnf.Finding
}

const maxSampleFiles = 5

// Aggregator consumes outcomes one at a time. It is not safe for
// concurrent use; the app drains the outcome channel from a single
// goroutine.
type Aggregator struct {
	summary Summary
	details []Detail
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		summary: Summary{
			ByStatus:    make(map[batch.Status]int),
			ByKind:      make(map[cnf.FindingKind]int),
			SampleFiles: make(map[cnf.FindingKind][]string),
		},
	}
}

// Add folds one outcome into the aggregate.
func (a *Aggregator) Add(outcome batch.Outcome) {
	a.summary.TotalFiles++
	a.summary.ByStatus[outcome.Status]++

	sampled := make(map[cnf.FindingKind]bool)
	for _, f := range outcome.Findings {
		a.summary.ByKind[f.Kind]++
		if !sampled[f.Kind] && len(a.summary.SampleFiles[f.Kind]) < maxSampleFiles {
			a.summary.SampleFiles[f.Kind] = append(a.summary.SampleFiles[f.Kind], outcome.Path)
			sampled[f.Kind] = true
		}
	}

	if len(outcome.Findings) > 0 {
		a.details = append(a.details, Detail{
			Path:     outcome.Path,
			Status:   outcome.Status,
			Findings: outcome.Findings,
		})
	}
}

// Summary returns the aggregate counts.
func (a *Aggregator) Summary() Summary {
	return a.summary
}

// Details returns one entry per file with findings, sorted by path.
func (a *Aggregator) Details() []Detail {
	details := make([]Detail, len(a.details))
	copy(details, a.details)
	sort.Slice(details, func(i, j int) bool { return details[i].Path < details[j].Path })
	return details
}

// WriteSummary renders the summary report: totals by status, then finding
// counts grouped by kind in descending count order (kind name breaks ties
// so the output is stable).
func WriteSummary(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("--- CNF Validation Summary ---\n")
	fmt.Fprintf(&b, "Total files checked: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Total files clean: %d\n", s.ByStatus[batch.StatusOK])
	fmt.Fprintf(&b, "Total files fixed: %d\n", s.ByStatus[batch.StatusFixed])
	fmt.Fprintf(&b, "Total files failed: %d\n", s.ByStatus[batch.StatusFailed])
	b.WriteString("\nFindings grouped by kind:\n\n")

	if len(s.ByKind) == 0 {
		b.WriteString("No findings. Congratulations.\n")
	}

	kinds := make([]cnf.FindingKind, 0, len(s.ByKind))
	for kind := range s.ByKind {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if s.ByKind[kinds[i]] != s.ByKind[kinds[j]] {
			return s.ByKind[kinds[i]] > s.ByKind[kinds[j]]
		}
		return kinds[i].String() < kinds[j].String()
	})

	for _, kind := range kinds {
		fmt.Fprintf(&b, "%s: %d\n", kind, s.ByKind[kind])
		if samples := s.SampleFiles[kind]; len(samples) > 0 {
			fmt.Fprintf(&b, "  Sample files: %s\n", strings.Join(samples, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDetails renders the detail report: one block per file with
// findings, in path order, each finding on its own line.
func WriteDetails(w io.Writer, details []Detail) error {
	var b strings.Builder
	b.WriteString("--- CNF Detailed Validation Findings ---\n")
	for _, d := range details {
		fmt.Fprintf(&b, "\nFile: %s (%s)\n", d.Path, d.Status)
		for _, f := range d.Findings {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
