package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thruflo/pyenv/internal/deps"
	"github.com/thruflo/pyenv/internal/logging"
)

// Default values for Config.
const (
	DefaultDepsMode = string(deps.ModePrompt)
	DefaultLogLevel = "warn"
)

// DefaultInterpreter returns the interpreter name used when none is configured.
func DefaultInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Interpreter: DefaultInterpreter(),
		Deps: Deps{
			Mode:       DefaultDepsMode,
			SkipStdlib: true,
		},
		LogLevel: DefaultLogLevel,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// ConfigPath returns the project config location under basePath.
func ConfigPath(basePath string) string {
	return filepath.Join(basePath, ".pyenv", "config.yaml")
}

// LoadConfig reads and parses .pyenv/config.yaml from the given base path.
// If the file doesn't exist, returns default config.
func LoadConfig(basePath string) (*Config, error) {
	return loadConfigFile(ConfigPath(basePath), true)
}

// LoadConfigFile reads and parses a config file at an explicit path.
// Unlike LoadConfig, a missing file is an error.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfigFile(path, false)
}

func loadConfigFile(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields absent from the file keep their defaults.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Interpreter == "" {
		return ValidationError{Field: "interpreter", Message: "required field is empty"}
	}
	if _, err := deps.ParseMode(cfg.Deps.Mode); err != nil {
		return ValidationError{Field: "deps.mode", Message: err.Error()}
	}
	if cfg.Timeout < 0 {
		return ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return ValidationError{Field: "log_level", Message: err.Error()}
	}
	return nil
}

// IgnoredModules returns the module names the dependency check skips.
func (c *Config) IgnoredModules() map[string]bool {
	if c.Deps.SkipStdlib {
		return deps.IgnoreSet(deps.StdlibModules, c.Deps.Ignore)
	}
	return deps.IgnoreSet(c.Deps.Ignore)
}

// LoadEnvFile parses a dotenv file into a map of key-value pairs.
// A missing file yields an empty map.
func LoadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
