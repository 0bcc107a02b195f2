package source

import (
	"context"
	"fmt"
	"os"

	"github.com/crimson-sun/desmoke/internal/model"
)

// File streams lines from a log file on disk.
type File struct {
	path string
}

// NewFile creates a File source for the given path. The file is opened
// when streaming starts.
func NewFile(path string) *File {
	return &File{path: path}
}

// Lines implements Source.
func (s *File) Lines(ctx context.Context) (<-chan model.LogLine, <-chan error, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("source: open %s: %w", s.path, err)
	}

	lines := make(chan model.LogLine)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		defer close(errs)
		defer f.Close()
		scan(ctx, f, lines, errs)
	}()
	return lines, errs, nil
}
