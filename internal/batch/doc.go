// Package batch schedules the parse/validate/repair pipeline across many
// files on a bounded worker pool and streams one Outcome per input path.
// A failure inside one file never aborts the batch; it becomes a failed
// Outcome carrying a synthetic finding.
package batch
