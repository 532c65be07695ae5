package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/pyenv/internal/linestream"
)

// AssertLines asserts that a collector received exactly the expected lines.
func AssertLines(t *testing.T, expected []string, c *linestream.Collector) {
	t.Helper()
	require.NotNil(t, c, "collector is nil")
	got := c.Lines()
	if len(expected) == 0 {
		assert.Empty(t, got, "expected no lines")
		return
	}
	assert.Equal(t, expected, got, "collected lines mismatch")
}

// AssertNoLines asserts that a collector received nothing.
func AssertNoLines(t *testing.T, c *linestream.Collector) {
	t.Helper()
	AssertLines(t, nil, c)
}

// AssertDirExists asserts that path exists and is a directory.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "expected %s to exist", path)
	assert.True(t, info.IsDir(), "%s is not a directory", path)
}

// AssertDirGone asserts that nothing exists at path.
func AssertDirGone(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be removed, stat err: %v", path, err)
}
