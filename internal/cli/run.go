package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/pyenv/internal/pyenv"
)

// ErrScriptFailed is returned when a script exits with a non-zero status.
var ErrScriptFailed = errors.New("script exited with a non-zero status")

var (
	runCode      string
	runEphemeral bool
	runStdin     bool
	runEnv       map[string]string
)

var runCmd = &cobra.Command{
	Use:   "run <root> [file]",
	Short: "Run a script in an environment",
	Long: `Run inline code (-c) or a script file with the environment's package
directory first on PYTHONPATH. Imports that are not installed are handled
according to --deps:

  prompt   list them and ask which packages to install (default)
  install  install the missing module names
  fail     refuse to run
  warn     list them and run anyway
  ignore   do not check

Without a terminal on stdin, prompt behaves like warn.

Example:
  pyenv run ./envs/scratch -c "print('hello world')"
  pyenv run ./envs/scratch script.py --deps install
  pyenv run ./envs/tmp -c "import faker" --ephemeral --deps fail`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runCode, "code", "c", "", "Inline source to run")
	runCmd.Flags().BoolVar(&runEphemeral, "ephemeral", false, "Remove the environment after the run")
	runCmd.Flags().BoolVar(&runStdin, "stdin", false, "Connect stdin to the script")
	runCmd.Flags().StringToStringVarP(&runEnv, "env", "e", nil, "Extra environment variables (KEY=VALUE)")
	addTimeoutFlag(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	root := args[0]
	hasFile := len(args) == 2
	if hasFile == cmd.Flags().Changed("code") {
		return fmt.Errorf("exactly one of -c or a script file is required")
	}

	opts := []pyenv.Option{pyenv.WithEnv(runEnv)}
	if runStdin {
		opts = append(opts, pyenv.WithStdin(cmd.InOrStdin()))
	}
	env, err := openEnv(cmd, root, opts...)
	if err != nil {
		return err
	}
	env.SetPersistent(!runEphemeral)
	defer env.Close()

	var ok bool
	if hasFile {
		ok, err = env.ExecuteFile(cmd.Context(), args[1])
	} else {
		ok, err = env.Execute(cmd.Context(), runCode)
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrScriptFailed
	}
	return nil
}
