package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// PythonEnvVar overrides the interpreter used by tests that need a real one.
const PythonEnvVar = "PYENV_TEST_PYTHON"

// RequirePython returns the path of a usable interpreter. It skips the test in
// short mode or when no interpreter is found.
func RequirePython(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping interpreter test in short mode")
	}

	candidates := []string{"python3", "python"}
	if p := os.Getenv(PythonEnvVar); p != "" {
		candidates = []string{p}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	t.Skip("no python interpreter on PATH")
	return ""
}

// RequirePip skips the test unless python can run its package installer.
func RequirePip(t *testing.T, python string) {
	t.Helper()
	if err := exec.Command(python, "-m", "pip", "--version").Run(); err != nil {
		t.Skipf("pip not available for %s: %v", python, err)
	}
}

// FakeSitePackages creates a package directory containing one empty package
// directory per name and returns its path.
func FakeSitePackages(t *testing.T, names ...string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "site-packages")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		pkg := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(pkg, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(pkg, "__init__.py"), nil, 0o644))
	}
	return dir
}

// WriteTestFile writes content to a file in the test directory.
// Creates parent directories as needed.
func WriteTestFile(t *testing.T, basePath, relativePath string, content []byte) string {
	t.Helper()
	fullPath := filepath.Join(basePath, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, content, 0o644))
	return fullPath
}
