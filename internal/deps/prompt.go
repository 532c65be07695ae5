package deps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/flynn/go-shlex"
	"golang.org/x/term"

	"github.com/thruflo/pyenv/internal/linestream"
)

// ErrNotInteractive is returned by a Prompter whose input is not a terminal.
var ErrNotInteractive = errors.New("input is not interactive")

var (
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A855F7"))
	moduleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)

// Prompter asks the user which packages to install for a set of missing
// modules. It returns the raw response line; an empty response means
// "continue without installing".
type Prompter interface {
	Prompt(ctx context.Context, missing []string) (string, error)
}

// PrompterFunc adapts a plain function to a Prompter.
type PrompterFunc func(ctx context.Context, missing []string) (string, error)

// Prompt calls f(ctx, missing).
func (f PrompterFunc) Prompt(ctx context.Context, missing []string) (string, error) {
	return f(ctx, missing)
}

// TerminalPrompter writes the missing-module warning to a line sink and reads
// one response line from its input.
//
// The input is read one byte at a time and never past the response's newline,
// so the same reader can be handed on to the script as its stdin.
type TerminalPrompter struct {
	in  io.Reader
	out linestream.Sink

	mu      sync.Mutex
	once    sync.Once
	wants   chan struct{}
	lines   chan readResult
	pending bool
}

type readResult struct {
	line string
	err  error
}

// NewTerminalPrompter creates a prompter reading from in and writing to out.
// A nil in reads from os.Stdin; a nil out writes to os.Stderr.
func NewTerminalPrompter(in io.Reader, out linestream.Sink) *TerminalPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = linestream.NewWriterSink(os.Stderr)
	}
	return &TerminalPrompter{in: in, out: out}
}

// Interactive reports whether the input can answer a prompt. A file must be a
// terminal; any other reader is treated as scripted input.
func (p *TerminalPrompter) Interactive() bool {
	if f, ok := p.in.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return true
}

// Prompt lists missing and reads the response. It returns ErrNotInteractive
// without writing anything if the input is not a terminal. If ctx is done
// before a line arrives, the read stays pending and its line answers the next
// Prompt.
func (p *TerminalPrompter) Prompt(ctx context.Context, missing []string) (string, error) {
	if !p.Interactive() {
		return "", ErrNotInteractive
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.out.Line(warningStyle.Render("WARNING") + ": dependencies not installed:")
	for _, m := range missing {
		p.out.Line("\t" + moduleStyle.Render(m))
	}
	p.out.Line("")
	p.out.Line(promptStyle.Render("Please list all packages to install, delimited with spaces") + ":")

	p.once.Do(func() {
		p.wants = make(chan struct{}, 1)
		p.lines = make(chan readResult, 1)
		go p.readLoop()
	})

	// A read left behind by a cancelled prompt answers this one.
	if !p.pending {
		p.wants <- struct{}{}
		p.pending = true
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.lines:
		p.pending = false
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return "", fmt.Errorf("failed to read response: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}

// readLoop reads one line per request. It is the only goroutine touching
// p.in, and it lives as long as the prompter.
func (p *TerminalPrompter) readLoop() {
	for range p.wants {
		line, err := readLine(p.in)
		p.lines <- readResult{line, err}
	}
}

// readLine reads up to and including the next '\n' without consuming any
// byte after it.
func readLine(r io.Reader) (string, error) {
	var (
		sb  strings.Builder
		buf [1]byte
	)
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}

// ParsePackages splits a prompt response into package specifiers. Quoting
// follows shell rules, so `"requests[socks]" faker` yields two entries.
func ParsePackages(response string) ([]string, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, nil
	}
	pkgs, err := shlex.Split(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse package list: %w", err)
	}
	out := pkgs[:0]
	for _, p := range pkgs {
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
