package model

// RunReport is the accumulated outcome of one processed stream, read once
// at end-of-stream to build the summary.
type RunReport struct {
	Counts      *SuiteCounts  // last summary observed, nil when none seen
	Failures    []TestFailure // in observation order
	Findings    []string      // reformatted assertion lines, in order
	ExitCode    int
	HasExitCode bool
}
