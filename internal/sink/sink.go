// Package sink provides the destinations a rendered report can be written
// to. Sinks are injected into the output stage so the pipeline stays free
// of I/O and tests can capture output in memory.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/mcncl/jsonlens/internal/errors"
)

// Sink writes one rendered report to a destination.
type Sink interface {
	Write(data []byte) error
}

// Stdout writes to a stream, standard output by default, appending a
// trailing newline so shells get a clean prompt.
type Stdout struct {
	Out io.Writer
}

// NewStdout returns a sink on os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{Out: os.Stdout}
}

func (s *Stdout) Write(data []byte) error {
	if _, err := s.Out.Write(data); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	if _, err := io.WriteString(s.Out, "\n"); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// File writes the report to a named file, replacing any existing content.
type File struct {
	Path string
}

func (f *File) Write(data []byte) error {
	if err := os.WriteFile(f.Path, append(data, '\n'), 0644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", f.Path), err)
	}
	return nil
}

// Clipboard copies the report to the system clipboard.
type Clipboard struct{}

func (Clipboard) Write(data []byte) error {
	if err := clipboard.WriteAll(string(data)); err != nil {
		return errors.NewOutputError("failed to copy to clipboard", err)
	}
	return nil
}

// Buffer keeps the report in memory; used by tests.
type Buffer struct {
	Data []byte
}

func (b *Buffer) Write(data []byte) error {
	b.Data = append(b.Data[:0], data...)
	return nil
}

// WriteAll sends the same rendering to every sink, stopping at the first
// failure.
func WriteAll(data []byte, sinks ...Sink) error {
	for _, s := range sinks {
		if err := s.Write(data); err != nil {
			return err
		}
	}
	return nil
}
