// Package resmoke reformats integration-test harness output. Each line is
// matched against an ordered recognizer table; the first match wins and
// unmatched lines pass through untouched.
package resmoke

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/crimson-sun/desmoke/internal/model"
)

// Prefix marks every line this tool synthesizes, so editor problem
// matchers can anchor on it and passthrough lines stay untouched.
const Prefix = "[desmoke]"

var (
	linePattern      = regexp.MustCompile(`^\[([\w:]+)\] (.+)$`)
	timestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:[+-]\d{4}|Z)?) (.*)$`)
	processPattern   = regexp.MustCompile(`^[a-z]+\d+\| `)

	summaryPattern = regexp.MustCompile(
		`^Summary of (.+?): (\d+) test\(s\) ran in ([\d.]+) seconds? \((\d+) succeeded, (\d+) were skipped, (\d+) failed, (\d+) errored\)`)
	exitPattern          = regexp.MustCompile(`^Exiting with code: (-?\d+)$`)
	failingHeaderPattern = regexp.MustCompile(`^The following tests failed \(with exit codes?\):$`)
	failingEntryPattern  = regexp.MustCompile(`^\s+(\S+) \((\d+)(?: (.+))?\)$`)
)

// blockState tracks whether we are inside a failing-test listing.
type blockState int

const (
	blockIdle blockState = iota
	blockFailures
)

// Processor classifies and reformats one resmoke log stream. Not safe for
// concurrent use; feed it lines in arrival order.
type Processor struct {
	block     blockState
	assertion collector
}

// New creates a Processor in its initial state.
func New() *Processor {
	return &Processor{}
}

// Process classifies a single line. The first event is always the
// passthrough copy of the input; a recognized line appends its reformatted
// event after it.
func (p *Processor) Process(line model.LogLine) []model.Event {
	events := []model.Event{{Kind: model.KindPassthrough, Output: line.Text, Passthrough: true}}

	m := linePattern.FindStringSubmatch(line.Text)
	if m == nil {
		p.block = blockIdle
		return events
	}
	tag, rest := m[1], m[2]
	ts, contents := splitTimestamp(rest)

	if strings.HasPrefix(tag, "js_test:") {
		p.block = blockIdle
		if ev, ok := p.assertion.step(contents, ts); ok {
			events = append(events, ev)
		}
		return events
	}

	if ev, ok := p.recognize(contents, ts); ok {
		events = append(events, ev)
	}
	return events
}

// recognizer pairs a predicate and pattern with the extraction rule that
// turns a match into an event. Order in the table is classification
// priority; the first hit is final.
type recognizer struct {
	name    string
	active  func(p *Processor) bool // nil means always
	pattern *regexp.Regexp
	handle  func(p *Processor, m []string, ts time.Time) (model.Event, bool)
}

var recognizers = []recognizer{
	{
		name:    "failing-entry",
		active:  func(p *Processor) bool { return p.block == blockFailures },
		pattern: failingEntryPattern,
		handle:  handleFailingEntry,
	},
	{name: "summary", pattern: summaryPattern, handle: handleSummary},
	{name: "exit-code", pattern: exitPattern, handle: handleExit},
	{name: "failing-header", pattern: failingHeaderPattern, handle: handleFailingHeader},
}

func (p *Processor) recognize(contents string, ts time.Time) (model.Event, bool) {
	for _, r := range recognizers {
		if r.active != nil && !r.active(p) {
			continue
		}
		m := r.pattern.FindStringSubmatch(contents)
		if m == nil {
			continue
		}
		return r.handle(p, m, ts)
	}
	// Any unrecognized line ends a failing-test listing.
	p.block = blockIdle
	return model.Event{}, false
}

func handleSummary(p *Processor, m []string, ts time.Time) (model.Event, bool) {
	p.block = blockIdle

	seconds, _ := strconv.ParseFloat(m[3], 64)
	counts := &model.SuiteCounts{
		Suite:     m[1],
		Ran:       atoi(m[2]),
		Seconds:   seconds,
		Succeeded: atoi(m[4]),
		Skipped:   atoi(m[5]),
		Failed:    atoi(m[6]),
		Errored:   atoi(m[7]),
	}

	kind := model.KindSuiteSummary
	label := "suite " + counts.Suite
	if counts.Suite == "all suites" {
		kind = model.KindExecutorSummary
		counts.Suite = ""
		label = "all suites"
	}

	out := fmt.Sprintf("%s %s: %d ran, %d succeeded, %d skipped, %d failed, %d errored (%.2fs)",
		Prefix, label, counts.Ran, counts.Succeeded, counts.Skipped, counts.Failed, counts.Errored, counts.Seconds)
	return model.Event{Kind: kind, Output: out, Timestamp: ts, Counts: counts}, true
}

func handleExit(p *Processor, m []string, ts time.Time) (model.Event, bool) {
	p.block = blockIdle
	code := atoi(m[1])
	return model.Event{
		Kind:      model.KindExitCode,
		Output:    fmt.Sprintf("%s exit code: %d", Prefix, code),
		Timestamp: ts,
		ExitCode:  code,
	}, true
}

func handleFailingHeader(p *Processor, _ []string, _ time.Time) (model.Event, bool) {
	p.block = blockFailures
	return model.Event{}, false
}

func handleFailingEntry(p *Processor, m []string, ts time.Time) (model.Event, bool) {
	failure := &model.TestFailure{
		TestID:   m[1],
		ExitCode: atoi(m[2]),
		Reason:   m[3],
	}
	out := fmt.Sprintf("%s failed: %s (exit code %d)", Prefix, failure.TestID, failure.ExitCode)
	if failure.Reason != "" {
		out = fmt.Sprintf("%s failed: %s (exit code %d: %s)", Prefix, failure.TestID, failure.ExitCode, failure.Reason)
	}
	return model.Event{Kind: model.KindFailingTest, Output: out, Timestamp: ts, Failure: failure}, true
}

// splitTimestamp strips a leading harness timestamp from line contents,
// keeping any indentation that follows it.
func splitTimestamp(contents string) (time.Time, string) {
	m := timestampPattern.FindStringSubmatch(contents)
	if m == nil {
		return time.Time{}, contents
	}
	for _, layout := range []string{"2006-01-02T15:04:05.000-0700", "2006-01-02T15:04:05.000Z0700", time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, m[1]); err == nil {
			return ts, m[2]
		}
	}
	return time.Time{}, m[2]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
