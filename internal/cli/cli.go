package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/cnfgrid/internal/app"
	"github.com/vk/cnfgrid/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating the program should exit cleanly (help was printed),
// or an ExitError for invalid input. When --config names a job file, its
// values fill in whatever the flags left unset.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("cnfgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
cnfgrid - validate and fix DIMACS CNF files in bulk.

Usage:
  cnfgrid [options] [TARGET_DIR]

Arguments:
  TARGET_DIR
    Directory scanned recursively for .cnf files.

Options:
`)
		flagSet.PrintDefaults()
	}

	targetFlag := flagSet.String("target", "", "Directory containing CNF files to validate.")
	outputFlag := flagSet.String("output", "", "Enable fixing and write corrected files under this directory.")
	summaryFlag := flagSet.String("summary", "validation_summary.log", "Path for the validation summary report.")
	detailsFlag := flagSet.String("details", "validation_details.log", "Path for the detailed validation report.")
	workersFlag := flagSet.Int("workers", 10, "Number of files processed concurrently.")
	configFlag := flagSet.String("config", "", "Path to an HCL job file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	quietFlag := flagSet.Bool("quiet", false, "Suppress the progress line.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	target := *targetFlag
	if target == "" && flagSet.NArg() > 0 {
		target = flagSet.Arg(0)
	}

	outputDir := *outputFlag
	summaryPath := *summaryFlag
	detailsPath := *detailsFlag
	workers := *workersFlag

	if *configFlag != "" {
		job, err := config.Load(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if target == "" {
			target = job.TargetDir
		}
		if !set["output"] && job.OutputDir != "" {
			outputDir = job.OutputDir
		}
		if !set["workers"] && job.Workers > 0 {
			workers = job.Workers
		}
		if job.Reports != nil {
			if !set["summary"] && job.Reports.Summary != "" {
				summaryPath = job.Reports.Summary
			}
			if !set["details"] && job.Reports.Details != "" {
				detailsPath = job.Reports.Details
			}
		}
	}

	if target == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	appConfig, err := app.NewConfig(app.Config{
		TargetDir:   target,
		OutputDir:   outputDir,
		SummaryPath: summaryPath,
		DetailsPath: detailsPath,
		Workers:     workers,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Quiet:       *quietFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return appConfig, false, nil
}
