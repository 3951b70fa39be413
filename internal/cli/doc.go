// Package cli is responsible for parsing command-line arguments,
// validating user input, and handling process-level concerns like exit
// codes. It merges flags over an optional HCL job file and translates the
// result into the application's configuration.
package cli
