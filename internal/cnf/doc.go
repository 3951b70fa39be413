// Package cnf implements the core DIMACS CNF engine: a tolerant
// line-oriented parser, an exhaustive semantic validator, and a repair
// engine that rewrites fixable defects as line edits.
//
// Malformed content is never an error here. The parser produces the most
// complete Document it can, the validator turns every anomaly into a
// Finding, and only the subset of finding kinds with a mechanical rewrite
// is touched by Repair.
package cnf
