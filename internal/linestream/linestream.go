// Package linestream drains a subprocess output channel line by line into a
// Sink.
//
// Each complete line is delivered exactly once, in the order it was produced,
// with the trailing "\n" (and a preceding "\r", if any) removed. A final line
// with no terminator is delivered when the stream ends. Lines that are not
// valid UTF-8 are dropped rather than delivered garbled; the stream keeps
// draining after a dropped line so the writer never blocks on a full pipe.
package linestream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Sink consumes one line of subprocess output.
type Sink interface {
	Line(line string)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(line string)

// Line calls f(line).
func (f SinkFunc) Line(line string) {
	f(line)
}

// Discard is a Sink that drops every line.
var Discard Sink = SinkFunc(func(string) {})

// WriterSink writes each line, newline-terminated, to an io.Writer.
// Writes are serialized so one WriterSink can be shared by both channels.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a WriterSink for w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Line writes line followed by "\n". Write errors are ignored; a sink has no
// result channel.
func (s *WriterSink) Line(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, line+"\n")
}

// Collector records lines in arrival order. It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	lines []string
}

// Line appends line to the collected lines.
func (c *Collector) Line(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

// Lines returns a copy of the collected lines.
func (c *Collector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// String joins the collected lines with "\n".
func (c *Collector) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Reset discards the collected lines.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Stats describes one drained stream.
type Stats struct {
	Delivered int
	Dropped   int
}

// Stream reads r until EOF and delivers each decoded line to sink.
// A nil sink is treated as Discard. The returned error is nil at a clean EOF
// (io.ErrClosedPipe from a closed pipe reader also counts as clean).
func Stream(r io.Reader, sink Sink) (Stats, error) {
	if sink == nil {
		sink = Discard
	}

	var stats Stats
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			line := strings.TrimSuffix(raw, "\n")
			line = strings.TrimSuffix(line, "\r")
			if utf8.ValidString(line) {
				sink.Line(line)
				stats.Delivered++
			} else {
				stats.Dropped++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return stats, nil
			}
			return stats, fmt.Errorf("failed to read output: %w", err)
		}
	}
}
