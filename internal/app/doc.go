// Package app wires the application together: it builds the logger,
// discovers the input files, drives the batch orchestrator, and routes the
// outcome stream to the progress line and the report writers.
package app
