package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thruflo/pyenv/internal/config"
	"github.com/thruflo/pyenv/internal/deps"
	"github.com/thruflo/pyenv/internal/process"
)

// EnvFileName is the optional dotenv file under the root whose variables are
// passed to executed scripts.
const EnvFileName = ".env"

// Execute runs source with the interpreter's -c flag. Before running, the
// imports in source are checked against the package directory and handled
// according to the dependency mode. The script sees PYTHONPATH with the
// package directory first; the variable is set for that command only.
//
// Like Install, the boolean is the script's exit status and errors mean the
// script could not be run.
func (e *Env) Execute(ctx context.Context, source string) (bool, error) {
	if err := e.checkOpen(); err != nil {
		return false, err
	}
	if err := e.ensureDirs(); err != nil {
		return false, err
	}

	missing, err := e.resolveDeps(ctx, source)
	if err != nil {
		return false, err
	}

	env, err := e.commandEnv()
	if err != nil {
		return false, err
	}

	cmd := &process.Command{
		Path:  e.interpreter,
		Args:  []string{"-c", source},
		Env:   env,
		Stdin: e.stdin,
	}
	res, err := e.run(ctx, cmd, e.out, e.err)
	if err != nil {
		return false, err
	}

	if err := e.store.RecordRun(int(res.ExitCode), missing); err != nil {
		e.logger.Warn("failed to record run", "err", err)
	}
	return res.Success(), nil
}

// ExecuteFile reads path and executes its contents.
func (e *Env) ExecuteFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, &IoError{Op: "read script", Err: err}
	}
	return e.Execute(ctx, string(data))
}

// MustExecute is like Execute but panics if the script could not be run.
// A non-zero exit does not panic.
func (e *Env) MustExecute(ctx context.Context, source string) *Env {
	if _, err := e.Execute(ctx, source); err != nil {
		panic(fmt.Sprintf("pyenv: execute: %v", err))
	}
	return e
}

// MissingDeps returns the modules imported by source that are neither ignored
// nor present in the package directory.
func (e *Env) MissingDeps(source string) []string {
	return deps.Missing(deps.Filter(deps.Scan(source), e.ignore), e.packageDir)
}

// resolveDeps handles missing imports according to the mode and returns the
// modules that were still missing when the script was started.
func (e *Env) resolveDeps(ctx context.Context, source string) ([]string, error) {
	if e.mode == deps.ModeIgnore {
		return nil, nil
	}
	missing := e.MissingDeps(source)
	if len(missing) == 0 {
		return nil, nil
	}
	e.logger.Debug("missing dependencies", "modules", missing, "mode", string(e.mode))

	switch e.mode {
	case deps.ModeFail:
		return nil, &deps.MissingError{Modules: missing}

	case deps.ModeWarn:
		e.warnMissing(missing)
		return missing, nil

	case deps.ModeInstall:
		return e.installMissing(ctx, missing, missing)

	default:
		response, err := e.prompter.Prompt(ctx, missing)
		if err != nil {
			if errors.Is(err, deps.ErrNotInteractive) {
				e.logger.Warn("input is not a terminal, continuing without installing", "modules", missing)
				e.warnMissing(missing)
				return missing, nil
			}
			if ctx.Err() != nil {
				return nil, &process.TimeoutError{Path: "dependency prompt", Err: ctx.Err()}
			}
			return nil, &IoError{Op: "read install response", Err: err}
		}

		packages, err := deps.ParsePackages(response)
		if err != nil {
			return nil, &IoError{Op: "read install response", Err: err}
		}
		if len(packages) == 0 {
			return missing, nil
		}
		return e.installMissing(ctx, packages, missing)
	}
}

// installMissing installs packages and rechecks which of missing are still
// absent. A failed install is reported but does not stop the script.
func (e *Env) installMissing(ctx context.Context, packages, missing []string) ([]string, error) {
	ok, err := e.Install(ctx, packages...)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.logger.Warn("installing dependencies failed, running anyway", "packages", packages)
	}
	return deps.Missing(missing, e.packageDir), nil
}

func (e *Env) warnMissing(missing []string) {
	e.info.Line("WARNING: dependencies not installed:")
	for _, m := range missing {
		e.info.Line("\t" + m)
	}
}

// commandEnv builds the per-command overrides: the root's .env file, then
// WithEnv values, then PYTHONPATH with the package directory in front.
func (e *Env) commandEnv() (map[string]string, error) {
	env, err := config.LoadEnvFile(filepath.Join(e.root, EnvFileName))
	if err != nil {
		return nil, &IoError{Op: "load env file", Err: err}
	}
	for k, v := range e.extraEnv {
		env[k] = v
	}

	existing, ok := env["PYTHONPATH"]
	if !ok {
		existing = os.Getenv("PYTHONPATH")
	}
	env["PYTHONPATH"] = searchPath(e.packageDir, existing)
	return env, nil
}

func searchPath(packageDir, existing string) string {
	if existing == "" {
		return packageDir
	}
	return packageDir + string(os.PathListSeparator) + existing
}
