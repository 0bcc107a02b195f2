package output

import (
	"context"

	"github.com/crimson-sun/desmoke/internal/model"
)

// Output defines the interface for formatted-line destinations.
type Output interface {
	Write(ctx context.Context, ev model.Event) error
	WriteSummary(ctx context.Context, report string) error
	Close() error
}
