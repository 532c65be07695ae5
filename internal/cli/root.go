package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath  string
	logLevel    string
	interpreter string
	depsMode    string
)

var rootCmd = &cobra.Command{
	Use:   "pyenv",
	Short: "Run scripts in disposable interpreter environments",
	Long: `pyenv keeps a private package directory per environment root, installs
packages into it, and runs scripts with that directory first on the module
search path. Environments can be kept for reuse or removed after a run.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pyenv version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default <root>/.pyenv/config.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&interpreter, "python", "", "Interpreter executable")
	pf.StringVar(&depsMode, "deps", "", "Missing dependency handling: prompt, install, fail, warn, ignore")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running
// command's context, which stops any child process.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
