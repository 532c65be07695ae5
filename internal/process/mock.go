package process

import (
	"context"
	"sync"

	"github.com/thruflo/pyenv/internal/linestream"
)

// MockRunner is a test double for Runner. It records every command it is
// given and, unless RunFunc is set, succeeds without output.
type MockRunner struct {
	// RunFunc is called when Run is invoked.
	RunFunc func(ctx context.Context, cmd *Command, stdout, stderr linestream.Sink) (*Result, error)

	mu    sync.Mutex
	calls []Command
}

// Run records cmd and calls the mock function if set.
func (m *MockRunner) Run(ctx context.Context, cmd *Command, stdout, stderr linestream.Sink) (*Result, error) {
	m.mu.Lock()
	if cmd != nil {
		m.calls = append(m.calls, *cmd)
	}
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd, stdout, stderr)
	}
	return &Result{}, nil
}

// Calls returns the commands seen so far, in order.
func (m *MockRunner) Calls() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Command, len(m.calls))
	copy(out, m.calls)
	return out
}

// Scripted returns a RunFunc that writes the given lines to the sinks and
// exits with code.
func Scripted(code ExitCode, stdoutLines, stderrLines []string) func(context.Context, *Command, linestream.Sink, linestream.Sink) (*Result, error) {
	return func(_ context.Context, _ *Command, stdout, stderr linestream.Sink) (*Result, error) {
		for _, l := range stdoutLines {
			if stdout != nil {
				stdout.Line(l)
			}
		}
		for _, l := range stderrLines {
			if stderr != nil {
				stderr.Line(l)
			}
		}
		return &Result{ExitCode: code}, nil
	}
}
