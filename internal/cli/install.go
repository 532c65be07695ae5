package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrInstallFailed is returned when the installer exits with a non-zero status.
var ErrInstallFailed = errors.New("installer exited with a non-zero status")

var installCmd = &cobra.Command{
	Use:   "install <root> <package>...",
	Short: "Install packages into an environment",
	Long: `Install packages into the environment's package directory with the
interpreter's pip. Package specifiers are passed through unchanged, so
version constraints and extras work.

Example:
  pyenv install ./envs/scratch faker "requests[socks]>=2.31"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInstall,
}

func init() {
	addTimeoutFlag(installCmd)
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, args[0])
	if err != nil {
		return err
	}
	defer env.Close()

	ok, err := env.Install(cmd.Context(), args[1:]...)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInstallFailed
	}
	return nil
}
