package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/crimson-sun/desmoke/internal/model"
)

const bufSize = 64 * 1024

// Reader streams lines from any io.Reader, typically stdin.
type Reader struct {
	r io.Reader
}

// NewReader creates a Reader source.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Lines implements Source.
func (s *Reader) Lines(ctx context.Context) (<-chan model.LogLine, <-chan error, error) {
	lines := make(chan model.LogLine)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		defer close(errs)
		scan(ctx, s.r, lines, errs)
	}()
	return lines, errs, nil
}

// scan reads r line by line and forwards each line until EOF, a read
// error, or cancellation.
func scan(ctx context.Context, r io.Reader, lines chan<- model.LogLine, errs chan<- error) {
	br := bufio.NewReaderSize(r, bufSize)

	n := 0
	for {
		text, err := readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			errs <- fmt.Errorf("source: read: %w", err)
			return
		}
		atEOF := errors.Is(err, io.EOF)
		if atEOF && text == "" {
			return
		}
		n++
		select {
		case lines <- model.LogLine{Number: n, Text: text}:
		case <-ctx.Done():
			errs <- ctx.Err()
			return
		}
		if atEOF {
			return
		}
	}
}

// readLine assembles one line of any length; harness lines can get very
// long (pretty-printed BSON dumps), so no cap is imposed. The trailing
// newline and any carriage return before it are stripped. io.EOF arrives
// together with the final unterminated line, if any.
func readLine(br *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		chunk, err := br.ReadSlice('\n')
		b.Write(chunk)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		line := strings.TrimSuffix(b.String(), "\n")
		return strings.TrimSuffix(line, "\r"), err
	}
}
