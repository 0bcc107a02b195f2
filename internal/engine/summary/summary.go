// Package summary accumulates run signals from the event stream and
// renders the end-of-stream report.
package summary

import (
	"github.com/crimson-sun/desmoke/internal/model"
)

// Summarizer owns the run state for one invocation. It observes every
// event the engine emits and is read once at end-of-stream.
type Summarizer struct {
	report model.RunReport
}

// New creates an empty Summarizer.
func New() *Summarizer {
	return &Summarizer{}
}

// Observe folds one event into the run state.
func (s *Summarizer) Observe(ev model.Event) {
	switch ev.Kind {
	case model.KindSuiteSummary, model.KindExecutorSummary:
		// Several summary lines can appear in one run; the most recent wins.
		s.report.Counts = ev.Counts
	case model.KindFailingTest:
		s.report.Failures = append(s.report.Failures, *ev.Failure)
	case model.KindAssertion:
		s.report.Findings = append(s.report.Findings, ev.Output)
	case model.KindExitCode:
		s.report.ExitCode = ev.ExitCode
		s.report.HasExitCode = true
	}
}

// Report returns the accumulated run state.
func (s *Summarizer) Report() model.RunReport {
	return s.report
}
