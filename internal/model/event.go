package model

import "time"

// EventKind identifies which recognizer produced an event.
type EventKind int

const (
	KindPassthrough EventKind = iota // unmodified input line
	KindSuiteSummary
	KindExecutorSummary
	KindFailingTest
	KindExitCode
	KindAssertion
)

// Event is the engine's output for one input line, or for a multi-line
// group (assertion dump, failing-test block entry) completed by that line.
type Event struct {
	Kind        EventKind
	Output      string    // text to emit; empty means nothing to print
	Passthrough bool      // Output is the input line, byte for byte
	Timestamp   time.Time // parsed from the line when present

	// Signal fields for the summarizer, populated per Kind.
	Counts   *SuiteCounts // KindSuiteSummary, KindExecutorSummary
	Failure  *TestFailure // KindFailingTest
	ExitCode int          // KindExitCode
}

// SuiteCounts holds the totals extracted from a harness summary line.
type SuiteCounts struct {
	Suite     string // empty for the all-suites aggregate
	Ran       int
	Succeeded int
	Skipped   int
	Failed    int
	Errored   int
	Seconds   float64
}

// TestFailure is one entry from a failing-test listing.
type TestFailure struct {
	TestID   string
	ExitCode int
	Reason   string
}
