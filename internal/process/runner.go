package process

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thruflo/pyenv/internal/linestream"
)

// DefaultWaitDelay bounds how long Wait keeps reading output after the
// process has exited or been killed, in case a grandchild still holds the
// pipes open.
const DefaultWaitDelay = 5 * time.Second

// ExecRunner runs commands on the local machine with os/exec.
type ExecRunner struct {
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

// NewExecRunner creates an ExecRunner with default settings.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run spawns c, streams its stdout and stderr into the sinks, and waits for it
// to exit. A nil sink discards that channel.
func (r *ExecRunner) Run(ctx context.Context, c *Command, stdout, stderr linestream.Sink) (*Result, error) {
	if c == nil || c.Path == "" {
		return nil, &SpawnError{Err: ErrNoCommand}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, &TimeoutError{Path: c.Path, Err: err}
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Environ()
	cmd.Stdin = c.Stdin
	cmd.WaitDelay = r.waitDelay()

	// The child writes into io.Pipes rather than OS pipes handed out by
	// StdoutPipe, so Wait can run while the readers are still draining.
	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW

	if err := cmd.Start(); err != nil {
		outW.Close()
		errW.Close()
		return nil, &SpawnError{Path: c.Path, Err: err}
	}

	var g errgroup.Group
	g.Go(func() error { return drain(outR, stdout) })
	g.Go(func() error { return drain(errR, stderr) })

	waitErr := cmd.Wait()

	// Wait returns only after exec has copied everything the child wrote, so
	// closing the writers here ends both streams at the right place.
	outW.Close()
	errW.Close()
	streamErr := g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil && waitErr != nil {
		return nil, &TimeoutError{Path: c.Path, Err: ctxErr}
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(waitErr, &exitErr):
			return &Result{ExitCode: ExitCode(exitErr.ExitCode())}, nil
		case errors.Is(waitErr, exec.ErrWaitDelay) && cmd.ProcessState != nil:
			// Exited cleanly, but something it spawned kept the pipes open.
			return &Result{ExitCode: ExitCode(cmd.ProcessState.ExitCode())}, nil
		default:
			return nil, &WaitError{Path: c.Path, Err: waitErr}
		}
	}

	if streamErr != nil {
		return nil, &WaitError{Path: c.Path, Err: streamErr}
	}

	return &Result{ExitCode: ExitCode(cmd.ProcessState.ExitCode())}, nil
}

func (r *ExecRunner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}
	return DefaultWaitDelay
}

// drain streams r into sink. The reader is closed on return so that, if
// streaming stops early, further writes by the child fail instead of blocking.
func drain(r *io.PipeReader, sink linestream.Sink) error {
	defer r.Close()
	_, err := linestream.Stream(r, sink)
	return err
}
