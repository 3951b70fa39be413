package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cnfgrid/internal/cnf"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func collect(t *testing.T, outcomes <-chan Outcome) map[string]Outcome {
	t.Helper()
	byPath := make(map[string]Outcome)
	for o := range outcomes {
		_, seen := byPath[o.Path]
		require.Falsef(t, seen, "duplicate outcome for %s", o.Path)
		byPath[o.Path] = o
	}
	return byPath
}

func TestRun_OneOutcomePerPath(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"clean.cnf":  "p cnf 3 1\n1 -2 3 0\n",
		"broken.cnf": "p cnf 1 1\n1 -1 0\n",
	})
	paths := []string{"clean.cnf", "broken.cnf", "missing.cnf"}

	orch := New(Config{Root: root, Workers: 4})
	byPath := collect(t, orch.Run(context.Background(), paths))

	require.Len(t, byPath, 3)
	assert.Equal(t, StatusOK, byPath["clean.cnf"].Status)
	assert.Empty(t, byPath["clean.cnf"].Findings)
	assert.Equal(t, StatusFailed, byPath["broken.cnf"].Status)

	// The unreadable file is isolated: it fails with a synthetic finding
	// and does not disturb the other outcomes.
	missing := byPath["missing.cnf"]
	assert.Equal(t, StatusFailed, missing.Status)
	require.Len(t, missing.Findings, 1)
	assert.Equal(t, cnf.IOFailure, missing.Findings[0].Kind)
}

func TestRun_FixWritesUnderOutputDir(t *testing.T) {
	t.Parallel()

	original := "p cnf 2 1\n1 2\n"
	root := writeFiles(t, map[string]string{
		filepath.Join("nested", "fixme.cnf"): original,
	})
	outputDir := t.TempDir()

	orch := New(Config{Root: root, OutputDir: outputDir, Workers: 2})
	byPath := collect(t, orch.Run(context.Background(), []string{filepath.Join("nested", "fixme.cnf")}))

	outcome := byPath[filepath.Join("nested", "fixme.cnf")]
	assert.Equal(t, StatusFixed, outcome.Status)
	assert.True(t, outcome.FixWritten)

	fixed, err := os.ReadFile(filepath.Join(outputDir, "nested", "fixme.cnf"))
	require.NoError(t, err)
	assert.Equal(t, "p cnf 2 1\n1 2 0\n", string(fixed))

	// Non-destructive repair: the original is untouched.
	src, err := os.ReadFile(filepath.Join(root, "nested", "fixme.cnf"))
	require.NoError(t, err)
	assert.Equal(t, original, string(src))
}

func TestRun_UnfixableFileFailsWithoutWrite(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"taut.cnf": "p cnf 1 1\n1 -1 0\n"})
	outputDir := t.TempDir()

	orch := New(Config{Root: root, OutputDir: outputDir, Workers: 1})
	byPath := collect(t, orch.Run(context.Background(), []string{"taut.cnf"}))

	outcome := byPath["taut.cnf"]
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.False(t, outcome.FixWritten)

	_, err := os.Stat(filepath.Join(outputDir, "taut.cnf"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_PartiallyFixedFileIsFixed(t *testing.T) {
	t.Parallel()

	// Duplicate header gets commented out, the tautology stays reported.
	root := writeFiles(t, map[string]string{"both.cnf": "p cnf 1 1\np cnf 1 1\n1 -1 0\n"})
	outputDir := t.TempDir()

	orch := New(Config{Root: root, OutputDir: outputDir, Workers: 1})
	byPath := collect(t, orch.Run(context.Background(), []string{"both.cnf"}))

	outcome := byPath["both.cnf"]
	assert.Equal(t, StatusFixed, outcome.Status)
	assert.True(t, outcome.FixWritten)
	assert.Len(t, outcome.Findings, 2)
}

func TestRun_LargeBatchIsolation(t *testing.T) {
	t.Parallel()

	files := make(map[string]string, 200)
	paths := make([]string, 0, 201)
	for i := 0; i < 200; i++ {
		name := filepath.Join("gen", fmt.Sprintf("f%03d.cnf", i))
		files[name] = "p cnf 2 1\n1 2 0\n"
	}
	for name := range files {
		paths = append(paths, name)
	}
	paths = append(paths, "unreadable.cnf")

	root := writeFiles(t, files)
	orch := New(Config{Root: root, Workers: 8})
	byPath := collect(t, orch.Run(context.Background(), paths))

	require.Len(t, byPath, len(paths))
	failed := 0
	for _, o := range byPath {
		if o.Status == StatusFailed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestRun_CancelledBatchStillAccountsForEveryPath(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.cnf": "p cnf 1 1\n1 0\n"})
	paths := []string{"a.cnf", "b.cnf", "c.cnf", "d.cnf"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := New(Config{Root: root, Workers: 2})
	byPath := collect(t, orch.Run(ctx, paths))

	assert.Len(t, byPath, len(paths))
}

func TestNew_ClampsWorkerCount(t *testing.T) {
	t.Parallel()

	orch := New(Config{Workers: 0})
	assert.Equal(t, 1, orch.cfg.Workers)
}
