package deps

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/pyenv/internal/linestream"
)

func TestTerminalPrompterReadsResponse(t *testing.T) {
	var out linestream.Collector
	p := NewTerminalPrompter(strings.NewReader("faker requests\n"), &out)

	resp, err := p.Prompt(context.Background(), []string{"faker", "requests"})
	require.NoError(t, err)
	assert.Equal(t, "faker requests", resp)

	text := out.String()
	assert.Contains(t, text, "WARNING")
	assert.Contains(t, text, "dependencies not installed")
	assert.Contains(t, text, "faker")
	assert.Contains(t, text, "requests")
	assert.Contains(t, text, "Please list all packages to install")
}

func TestTerminalPrompterSequentialReads(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader("first\nsecond\n"), linestream.Discard)

	r1, err := p.Prompt(context.Background(), []string{"a"})
	require.NoError(t, err)
	r2, err := p.Prompt(context.Background(), []string{"b"})
	require.NoError(t, err)

	assert.Equal(t, "first", r1)
	assert.Equal(t, "second", r2)
}

func TestTerminalPrompterEOF(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader(""), linestream.Discard)

	resp, err := p.Prompt(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, resp)
}

func TestTerminalPrompterUnterminatedResponse(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader("  faker  "), linestream.Discard)

	resp, err := p.Prompt(context.Background(), []string{"faker"})
	require.NoError(t, err)
	assert.Equal(t, "faker", resp)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestTerminalPrompterReadError(t *testing.T) {
	p := NewTerminalPrompter(errReader{}, linestream.Discard)

	_, err := p.Prompt(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestTerminalPrompterContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewTerminalPrompter(pr, linestream.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Prompt(ctx, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestTerminalPrompterLineAfterCancelAnswersNextPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewTerminalPrompter(pr, linestream.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Prompt(ctx, []string{"faker"})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		_, _ = pw.Write([]byte("faker\n"))
	}()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	resp, err := p.Prompt(ctx2, []string{"faker"})
	require.NoError(t, err)
	assert.Equal(t, "faker", resp)
}

func TestTerminalPrompterLeavesRestOfInput(t *testing.T) {
	in := strings.NewReader("faker\r\nhello\nworld\n")
	p := NewTerminalPrompter(in, linestream.Discard)

	resp, err := p.Prompt(context.Background(), []string{"faker"})
	require.NoError(t, err)
	assert.Equal(t, "faker", resp)

	rest, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(rest))
}

func TestTerminalPrompterNonTerminalFile(t *testing.T) {
	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer f.Close()

	var out linestream.Collector
	p := NewTerminalPrompter(f, &out)

	assert.False(t, p.Interactive())
	_, err = p.Prompt(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Empty(t, out.Lines(), "nothing is printed when the prompt cannot be answered")
}

func TestPrompterFunc(t *testing.T) {
	var got []string
	p := PrompterFunc(func(_ context.Context, missing []string) (string, error) {
		got = missing
		return "x", nil
	})

	resp, err := p.Prompt(context.Background(), []string{"m"})
	require.NoError(t, err)
	assert.Equal(t, "x", resp)
	assert.Equal(t, []string{"m"}, got)
}

func TestParsePackages(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"whitespace only", "   \t ", nil, false},
		{"single", "faker", []string{"faker"}, false},
		{"space delimited", "faker  requests", []string{"faker", "requests"}, false},
		{"quoted extras", `"requests[socks]" faker`, []string{"requests[socks]", "faker"}, false},
		{"version specifier", `'numpy>=1.26' six`, []string{"numpy>=1.26", "six"}, false},
		{"unterminated quote", `"faker`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePackages(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(strings.ToUpper(string(m)))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModePrompt, got)

	_, err = ParseMode("sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt, install, fail, warn, ignore")
}

func TestMissingError(t *testing.T) {
	err := error(&MissingError{Modules: []string{"faker", "requests"}})
	assert.Equal(t, "dependencies not installed: faker, requests", err.Error())
	assert.True(t, IsMissingError(err))
	assert.False(t, IsMissingError(errors.New("other")))
}
