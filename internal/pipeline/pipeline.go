// Package pipeline connects a source, the engine, and an output into a
// single-pass streaming run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/crimson-sun/desmoke/internal/engine"
	"github.com/crimson-sun/desmoke/internal/engine/summary"
	"github.com/crimson-sun/desmoke/internal/model"
	"github.com/crimson-sun/desmoke/internal/output"
	"github.com/crimson-sun/desmoke/internal/source"
)

// Pipeline processes one input stream. Lines are consumed strictly in
// arrival order by a single goroutine; the summarizer observes every event.
type Pipeline struct {
	source source.Source
	engine *engine.Engine
	output output.Output
}

// New creates a Pipeline from the given components.
func New(src source.Source, eng *engine.Engine, out output.Output) *Pipeline {
	return &Pipeline{source: src, engine: eng, output: out}
}

// Stream runs the pipeline to end-of-stream and returns the accumulated
// run report. On error, output already written remains valid; the caller
// still owns flushing via Close.
func (p *Pipeline) Stream(ctx context.Context) (model.RunReport, error) {
	sum := summary.New()

	// The derived context releases the source goroutine if we bail out
	// mid-stream on a write error.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, errs, err := p.source.Lines(ctx)
	if err != nil {
		return sum.Report(), fmt.Errorf("pipeline: %w", err)
	}

	for line := range lines {
		for _, ev := range p.engine.Process(line) {
			sum.Observe(ev)
			if err := p.output.Write(ctx, ev); err != nil {
				return sum.Report(), fmt.Errorf("pipeline: %w", err)
			}
		}
	}
	if err := <-errs; err != nil {
		return sum.Report(), fmt.Errorf("pipeline: %w", err)
	}
	return sum.Report(), nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
