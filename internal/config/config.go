// Package config loads the optional HCL job file. A job file carries the
// same settings as the CLI flags; flags win when both are present.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Job is one decoded job block.
type Job struct {
	TargetDir string   `hcl:"target_dir,optional"`
	OutputDir string   `hcl:"output_dir,optional"`
	Workers   int      `hcl:"workers,optional"`
	Reports   *Reports `hcl:"reports,block"`
}

// Reports configures where the summary and detail artifacts are written.
type Reports struct {
	Summary string `hcl:"summary,optional"`
	Details string `hcl:"details,optional"`
}

// fileRoot decodes the top-level blocks of a job file.
type fileRoot struct {
	Job *Job `hcl:"job,block"`
}

// Load parses and decodes a single HCL job file. Attribute expressions can
// reference process environment variables as env.NAME.
func Load(path string) (*Job, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode job file %s: %w", path, diags)
	}
	if root.Job == nil {
		return nil, fmt.Errorf("job file %s contains no job block", path)
	}
	return root.Job, nil
}

// evalContext exposes the process environment to job file expressions as
// an env object of string values.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			vars[name] = cty.StringVal(value)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}
