package stdout

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/desmoke/internal/model"
)

// Output writes formatted lines to a writer, buffered. In only-mode,
// passthrough lines are suppressed and just the tool's own lines appear.
type Output struct {
	w    *bufio.Writer
	only bool
}

// New creates an Output writing to w.
func New(w io.Writer, only bool) *Output {
	return &Output{w: bufio.NewWriter(w), only: only}
}

// Write emits one event's output line. Synthesized events without output
// are dropped; passthrough events keep their bytes, blank lines included.
func (o *Output) Write(_ context.Context, ev model.Event) error {
	if ev.Output == "" && !ev.Passthrough {
		return nil
	}
	if ev.Passthrough && o.only {
		return nil
	}
	if _, err := fmt.Fprintln(o.w, ev.Output); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

// WriteSummary emits the end-of-stream report block.
func (o *Output) WriteSummary(_ context.Context, report string) error {
	if _, err := fmt.Fprintln(o.w, report); err != nil {
		return fmt.Errorf("stdout output: summary: %w", err)
	}
	return nil
}

// Close flushes buffered output.
func (o *Output) Close() error {
	if err := o.w.Flush(); err != nil {
		return fmt.Errorf("stdout output: flush: %w", err)
	}
	return nil
}
