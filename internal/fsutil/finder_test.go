package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCNFFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	for _, name := range []string{"b.cnf", "a.cnf", "notes.txt", filepath.Join("sub", "c.cnf")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("p cnf 1 0\n"), 0o644))
	}

	files, err := FindCNFFiles(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.cnf", "b.cnf", filepath.Join("sub", "c.cnf")}, files)
}

func TestFindCNFFiles_EmptyDir(t *testing.T) {
	t.Parallel()

	files, err := FindCNFFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindCNFFiles_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindCNFFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
