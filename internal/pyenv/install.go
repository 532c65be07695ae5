package pyenv

import (
	"context"
	"fmt"
	"time"

	"github.com/thruflo/pyenv/internal/linestream"
	"github.com/thruflo/pyenv/internal/process"
)

// Install installs packages into the environment's package directory with
// "<interpreter> -m pip install <packages...> --target <package dir>".
//
// The boolean reports whether the installer exited with status zero. A package
// that fails to install is reported as false with a nil error; errors are
// reserved for failing to run the installer at all.
func (e *Env) Install(ctx context.Context, packages ...string) (bool, error) {
	if err := e.checkOpen(); err != nil {
		return false, err
	}
	if len(packages) == 0 {
		return false, ErrNoPackages
	}
	if err := e.ensureDirs(); err != nil {
		return false, err
	}

	cmd := e.installCommand(packages)
	res, err := e.run(ctx, cmd, e.out, e.err)
	if err != nil {
		return false, err
	}

	if err := e.store.RecordInstall(packages, int(res.ExitCode)); err != nil {
		e.logger.Warn("failed to record install", "err", err)
	}
	if !res.Success() {
		e.logger.Info("install failed", "packages", packages, "exit", res.ExitCode)
	}
	return res.Success(), nil
}

// MustInstall is like Install but panics if the installer could not be run.
// A non-zero installer exit does not panic.
func (e *Env) MustInstall(ctx context.Context, packages ...string) *Env {
	if _, err := e.Install(ctx, packages...); err != nil {
		panic(fmt.Sprintf("pyenv: install %v: %v", packages, err))
	}
	return e
}

func (e *Env) installCommand(packages []string) *process.Command {
	args := []string{"-m", "pip", "install"}
	args = append(args, packages...)
	args = append(args, "--target", e.packageDir)
	args = append(args, e.installerArgs...)
	return &process.Command{
		Path: e.interpreter,
		Args: args,
	}
}

// run applies the configured timeout and hands cmd to the runner.
func (e *Env) run(ctx context.Context, cmd *process.Command, out, errSink linestream.Sink) (*process.Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	e.logger.Debug("running command", "cmd", cmd.String())
	res, err := e.runner.Run(ctx, cmd, out, errSink)
	if err != nil {
		e.logger.Debug("command failed", "cmd", cmd.Path, "err", err)
		return nil, err
	}
	e.logger.Debug("command finished", "cmd", cmd.Path, "exit", res.ExitCode, "elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}
