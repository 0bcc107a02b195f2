package desmoke

import (
	"context"
	"io"

	"github.com/crimson-sun/desmoke/internal/engine"
	"github.com/crimson-sun/desmoke/internal/engine/summary"
	"github.com/crimson-sun/desmoke/internal/model"
	"github.com/crimson-sun/desmoke/internal/output/stdout"
	"github.com/crimson-sun/desmoke/internal/pipeline"
	"github.com/crimson-sun/desmoke/internal/source"
)

// Report is the accumulated outcome of one processed stream.
type Report struct {
	Ran       int
	Succeeded int
	Skipped   int
	Failed    int
	Errored   int

	Failures []Failure // in observation order
	Findings []string  // reformatted assertion lines

	ExitCode    int
	HasExitCode bool
}

// Failure is one entry from the harness's failing-test listing.
type Failure struct {
	TestID   string
	ExitCode int
	Reason   string
}

// Run reads test-harness log lines from r, writes reformatted output to w,
// and returns the run report. Processing is streaming and order-preserving;
// it stops at EOF, on a read error, or when ctx is cancelled. Output
// written before an error remains valid.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) (Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eng := engine.New(engine.ParseFormat(o.format))
	out := stdout.New(w, o.only)

	p := pipeline.New(source.NewReader(r), eng, out)

	report, err := p.Stream(ctx)
	if err != nil {
		p.Close() // flush whatever was already formatted
		return reportFrom(report), err
	}

	if o.summary {
		renderer := summary.NewRenderer(o.color)
		if err := out.WriteSummary(ctx, renderer.Render(report)); err != nil {
			p.Close()
			return reportFrom(report), err
		}
	}
	return reportFrom(report), p.Close()
}

// reportFrom converts the internal run report to the public type.
func reportFrom(r model.RunReport) Report {
	report := Report{
		Findings:    r.Findings,
		ExitCode:    r.ExitCode,
		HasExitCode: r.HasExitCode,
	}
	if r.Counts != nil {
		report.Ran = r.Counts.Ran
		report.Succeeded = r.Counts.Succeeded
		report.Skipped = r.Counts.Skipped
		report.Failed = r.Counts.Failed
		report.Errored = r.Counts.Errored
	}
	for _, f := range r.Failures {
		report.Failures = append(report.Failures, Failure{TestID: f.TestID, ExitCode: f.ExitCode, Reason: f.Reason})
	}
	return report
}
