package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thruflo/pyenv/internal/pyenv"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <root>",
	Short: "Remove an environment",
	Long: `Remove an environment root and everything in it. The directory must
look like an environment (contain site-packages or .pyenv) unless --force
is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Remove even if the directory does not look like an environment")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat environment: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	if !rmForce && !isEnvironment(root) {
		return fmt.Errorf("%s does not look like an environment (use --force to remove anyway)", root)
	}

	env, err := openEnv(cmd, root)
	if err != nil {
		return err
	}
	env.SetPersistent(false)
	env.Close()

	if _, err := os.Stat(env.Root()); err == nil {
		return fmt.Errorf("failed to remove %s", env.Root())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", env.Root())
	return nil
}

func isEnvironment(root string) bool {
	for _, name := range []string{pyenv.PackageDirName, ".pyenv"} {
		if info, err := os.Stat(filepath.Join(root, name)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
