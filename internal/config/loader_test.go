package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".pyenv"), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(tmpDir), []byte(content), 0o644))
	return tmpDir
}

func TestLoadConfig_Default(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultInterpreter(), cfg.Interpreter)
	assert.Equal(t, DefaultDepsMode, cfg.Deps.Mode)
	assert.True(t, cfg.Deps.SkipStdlib)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Zero(t, cfg.Timeout)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	t.Parallel()

	tmpDir := writeConfig(t, `interpreter: /usr/bin/python3.12
installer_args: ["--quiet", "--no-cache-dir"]
deps:
  mode: install
  ignore: [internal_lib]
  skip_stdlib: false
timeout: 90s
log_level: debug
`)

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/python3.12", cfg.Interpreter)
	assert.Equal(t, []string{"--quiet", "--no-cache-dir"}, cfg.InstallerArgs)
	assert.Equal(t, "install", cfg.Deps.Mode)
	assert.Equal(t, []string{"internal_lib"}, cfg.Deps.Ignore)
	assert.False(t, cfg.Deps.SkipStdlib)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	t.Parallel()

	tmpDir := writeConfig(t, "deps:\n  mode: fail\n")

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "fail", cfg.Deps.Mode)
	assert.Equal(t, DefaultInterpreter(), cfg.Interpreter)
	assert.True(t, cfg.Deps.SkipStdlib)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := writeConfig(t, "deps: [")

	_, err := LoadConfig(tmpDir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"empty interpreter", "interpreter: \"\"\n", "interpreter"},
		{"unknown deps mode", "deps:\n  mode: maybe\n", "deps.mode"},
		{"negative timeout", "timeout: -5s\n", "timeout"},
		{"unknown log level", "log_level: chatty\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	tmpDir := writeConfig(t, "interpreter: pypy3\n")

	cfg, err := LoadConfigFile(ConfigPath(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, "pypy3", cfg.Interpreter)

	_, err = LoadConfigFile(filepath.Join(tmpDir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestIgnoredModules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deps.Ignore = []string{"company_sdk"}

	ignored := cfg.IgnoredModules()
	assert.True(t, ignored["os"])
	assert.True(t, ignored["json"])
	assert.True(t, ignored["company_sdk"])
	assert.False(t, ignored["faker"])

	cfg.Deps.SkipStdlib = false
	ignored = cfg.IgnoredModules()
	assert.False(t, ignored["os"])
	assert.True(t, ignored["company_sdk"])
}

func TestLoadEnvFile_Valid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment
API_URL=https://example.com/api?a=b
QUOTED="hello world"
SINGLE='raw value'
EMPTY=
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	env, err := LoadEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/api?a=b", env["API_URL"])
	assert.Equal(t, "hello world", env["QUOTED"])
	assert.Equal(t, "raw value", env["SINGLE"])
	assert.Contains(t, env, "EMPTY")
	assert.Equal(t, "", env["EMPTY"])
	assert.Len(t, env, 4)
}

func TestLoadEnvFile_NotFound(t *testing.T) {
	t.Parallel()

	env, err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Empty(t, env)
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "deps.mode", Message: "bad"}
	assert.Equal(t, "validation error: deps.mode: bad", err.Error())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ValidationError{Field: "x"}))
	assert.False(t, IsValidationError(errors.New("other")))
}
