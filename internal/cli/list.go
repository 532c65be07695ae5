package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listHistory bool

var listCmd = &cobra.Command{
	Use:   "list <root>",
	Short: "List packages installed in an environment",
	Long: `List the top-level packages in the environment's package directory.
With --history, also print the recorded installs and runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listHistory, "history", false, "Show install and run history")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, args[0])
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	pkgs, err := env.Packages()
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		fmt.Fprintln(out, "No packages installed.")
	}
	for _, p := range pkgs {
		fmt.Fprintln(out, p)
	}

	if !listHistory {
		return nil
	}

	m, err := env.Manifest()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nInstalls (%d):\n", len(m.Installs))
	for _, in := range m.Installs {
		fmt.Fprintf(out, "  %s  %-4s exit=%d  %v\n", in.At.Local().Format("2006-01-02 15:04:05"), status(in.Success), in.ExitCode, in.Packages)
	}
	fmt.Fprintf(out, "\nRuns (%d):\n", len(m.Runs))
	for _, r := range m.Runs {
		line := fmt.Sprintf("  %s  %-4s exit=%d", r.At.Local().Format("2006-01-02 15:04:05"), status(r.Success), r.ExitCode)
		if len(r.Missing) > 0 {
			line += fmt.Sprintf("  missing=%v", r.Missing)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "fail"
}
