package config

import "time"

// Deps configures how missing script dependencies are handled.
type Deps struct {
	// Mode is one of prompt, install, fail, warn, ignore.
	Mode string `yaml:"mode"`
	// Ignore lists module names never reported as missing.
	Ignore []string `yaml:"ignore,omitempty"`
	// SkipStdlib adds the interpreter's standard library to Ignore.
	SkipStdlib bool `yaml:"skip_stdlib"`
}

// Config represents the .pyenv/config.yaml file.
type Config struct {
	// Interpreter is the executable used both to run scripts and, through
	// "-m pip", to install packages.
	Interpreter string `yaml:"interpreter"`
	// InstallerArgs are appended to every install command, e.g. --quiet or
	// --index-url.
	InstallerArgs []string `yaml:"installer_args,omitempty"`
	Deps          Deps     `yaml:"deps"`
	// Timeout bounds each install or execute call. Zero means no limit.
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
}
