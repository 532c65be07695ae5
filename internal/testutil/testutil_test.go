package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/pyenv/internal/deps"
	"github.com/thruflo/pyenv/internal/linestream"
)

func TestSampleSourcesMatchScan(t *testing.T) {
	t.Parallel()

	for name, s := range SampleSources() {
		t.Run(name, func(t *testing.T) {
			got := deps.Scan(s.Source)
			if len(s.Imports) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, s.Imports, got)
		})
	}
}

func TestSampleSourcesFresh(t *testing.T) {
	t.Parallel()

	a := SampleSources()
	delete(a, "hello")
	assert.Contains(t, SampleSources(), "hello")
}

func TestFakeSitePackages(t *testing.T) {
	t.Parallel()

	dir := FakeSitePackages(t, "faker", "requests")
	assert.FileExists(t, filepath.Join(dir, "faker", "__init__.py"))
	assert.Empty(t, deps.Missing([]string{"faker", "requests"}, dir))
	assert.Equal(t, []string{"numpy"}, deps.Missing([]string{"numpy"}, dir))
}

func TestWriteTestFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := WriteTestFile(t, tmpDir, "nested/dir/script.py", []byte(SampleHelloWorld))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SampleHelloWorld, string(data))
}

func TestAssertions(t *testing.T) {
	t.Parallel()

	c := &linestream.Collector{}
	AssertNoLines(t, c)
	c.Line("a")
	c.Line("b")
	AssertLines(t, []string{"a", "b"}, c)

	dir := t.TempDir()
	AssertDirExists(t, dir)
	require.NoError(t, os.RemoveAll(dir))
	AssertDirGone(t, dir)
}
