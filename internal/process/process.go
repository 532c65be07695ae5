// Package process spawns one external command at a time and streams its
// output into line sinks.
//
// The runner drains stdout and stderr concurrently with each other and with
// the wait on process exit. Draining one channel to completion before reading
// the other can deadlock once the child fills the unread pipe buffer.
//
// A command that runs and exits non-zero is not an error: it is reported as a
// Result whose Success method returns false. Errors are reserved for failing
// to run the command at all (SpawnError), failing to wait on it (WaitError),
// and cancellation or deadline expiry (TimeoutError).
package process

import (
	"context"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/thruflo/pyenv/internal/linestream"
)

// ExitCode is a process exit status. Zero means success; -1 means the process
// was terminated by a signal.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal representation of the exit code.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Result is the outcome of a command that was started and waited on.
type Result struct {
	ExitCode ExitCode
}

// Success returns true if the command exited with status zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode.IsSuccess()
}

// Command describes a single external invocation. It exists for the duration
// of one Run call.
type Command struct {
	// Path is the executable, resolved through PATH when it has no separator.
	Path string
	// Args are passed to the executable after Path.
	Args []string
	// Env overrides variables of the inherited environment for this command
	// only. The runner process's own environment is never modified.
	Env map[string]string
	// Dir is the working directory; empty means the caller's.
	Dir string
	// Stdin is connected to the child's standard input; nil means no input.
	Stdin io.Reader
}

// String renders the command for logs, quoting arguments that contain spaces.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Path)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Environ returns the inherited environment with Env applied on top.
func (c *Command) Environ() []string {
	return MergeEnv(os.Environ(), c.Env)
}

// MergeEnv returns base with each key in overrides set to its value.
// Existing entries are replaced in place; new keys are appended in sorted
// order so the result is deterministic.
func MergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if ok {
			if v, override := overrides[key]; override {
				if !seen[key] {
					out = append(out, key+"="+v)
					seen[key] = true
				}
				continue
			}
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}

// Runner runs external commands. Implementations must deliver every output
// line to the matching sink before Run returns.
type Runner interface {
	Run(ctx context.Context, cmd *Command, stdout, stderr linestream.Sink) (*Result, error)
}
