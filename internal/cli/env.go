package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thruflo/pyenv/internal/config"
	"github.com/thruflo/pyenv/internal/deps"
	"github.com/thruflo/pyenv/internal/linestream"
	"github.com/thruflo/pyenv/internal/logging"
	"github.com/thruflo/pyenv/internal/pyenv"
)

// timeout is shared by the commands that spawn processes.
var timeout time.Duration

func addTimeoutFlag(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Limit for each install or run (0 means the config value)")
}

// setupLogging routes the default logger to the command's stderr. The level
// from --log-level is applied here; a level from the config file is applied
// once the root is known.
func setupLogging(cmd *cobra.Command, _ []string) error {
	logging.SetOutput(cmd.ErrOrStderr())
	if logLevel == "" {
		return nil
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logging.SetLevel(level)
	return nil
}

// loadConfig reads the config for root and applies flag overrides.
func loadConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig(root)
	}
	if err != nil {
		return nil, err
	}

	if interpreter != "" {
		cfg.Interpreter = interpreter
	}
	if depsMode != "" {
		cfg.Deps.Mode = depsMode
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeout
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	return cfg, nil
}

// openEnv builds an Env for root whose sinks write to the command's output
// streams and whose prompter reads the command's input.
func openEnv(cmd *cobra.Command, root string, extra ...pyenv.Option) (*pyenv.Env, error) {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}
	mode, err := deps.ParseMode(cfg.Deps.Mode)
	if err != nil {
		return nil, err
	}

	out := linestream.NewWriterSink(cmd.OutOrStdout())
	errSink := linestream.NewWriterSink(cmd.ErrOrStderr())

	opts := []pyenv.Option{
		pyenv.WithInterpreter(cfg.Interpreter),
		pyenv.WithInstallerArgs(cfg.InstallerArgs...),
		pyenv.WithDepsMode(mode),
		pyenv.WithIgnore(cfg.IgnoredModules()),
		pyenv.WithTimeout(cfg.Timeout),
		pyenv.WithPrompter(deps.NewTerminalPrompter(cmd.InOrStdin(), errSink)),
	}
	env, err := pyenv.New(root, out, errSink, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open environment: %w", err)
	}
	return env, nil
}
