package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTree materializes files under root from a map of relative path to
// content, creating parent directories as needed. A trailing slash in the
// key creates an empty directory instead.
func CreateTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if len(rel) > 0 && rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// AssertSymlinkTo asserts that path is a symlink whose target is want
func AssertSymlinkTo(t *testing.T, path, want string) {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err, "expected a symlink at %s", path)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s is not a symlink", path)
	got, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, want, got, "link target of %s", path)
}

// AssertFileContent asserts that path is a regular file holding want
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data), "content of %s", path)
}

// AssertNotExists asserts that nothing exists at path, not even a broken link
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected nothing at %s", path)
}

// Canonical resolves a path the way the linker does, failing the test on error
func Canonical(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
