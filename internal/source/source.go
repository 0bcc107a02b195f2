// Package source delivers input lines to the pipeline, one at a time, in
// arrival order.
package source

import (
	"context"

	"github.com/crimson-sun/desmoke/internal/model"
)

// Source streams log lines from some order-preserving origin.
type Source interface {
	// Lines starts streaming. The line channel carries every input line in
	// order; the error channel receives at most one read error. Both are
	// closed when the stream ends or ctx is cancelled.
	Lines(ctx context.Context) (<-chan model.LogLine, <-chan error, error)
}
