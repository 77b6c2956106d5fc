package report

import (
	"fmt"
	"io"
)

// Sink receives the rendered transcript one line at a time.
type Sink interface {
	Emit(line string)
}

// SinkFunc adapts an ordinary function to a Sink.
type SinkFunc func(line string)

// Emit calls f(line).
func (f SinkFunc) Emit(line string) {
	f(line)
}

// WriterSink writes each line to an io.Writer followed by a newline. Write
// errors are dropped; the transcript is best-effort output.
type WriterSink struct {
	W io.Writer
}

// Emit writes line to s.W.
func (s WriterSink) Emit(line string) {
	fmt.Fprintln(s.W, line)
}

// MultiSink duplicates every line to each of its sinks in order.
type MultiSink []Sink

// Emit forwards line to every sink.
func (m MultiSink) Emit(line string) {
	for _, s := range m {
		s.Emit(line)
	}
}

// Lines collects emitted lines in memory.
type Lines []string

// Emit appends line.
func (l *Lines) Emit(line string) {
	*l = append(*l, line)
}
