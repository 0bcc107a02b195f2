package resmoke

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/crimson-sun/desmoke/internal/engine/jsondiff"
	"github.com/crimson-sun/desmoke/internal/model"
)

// The shell prints "uncaught exception:" followed by a pretty-printed
// assertion message spanning several lines, then a traceback. The collector
// stitches those lines back together before parsing.
const assertionStart = "uncaught exception:"

var tracePattern = regexp.MustCompile(`^([\w.]*@)?([\w./]+):(\d+):(\d+)$`)

// assertPhase enumerates the collector's position inside a multi-line
// assertion dump.
type assertPhase int

const (
	phaseIdle  assertPhase = iota
	phaseBody              // collecting the assertion message
	phaseTrace             // collecting traceback frames
)

type collector struct {
	phase assertPhase
	body  []string
	trace []string
}

// step feeds one js_test line into the collector. It returns a completed
// assertion event when the line after a traceback closes the dump.
func (c *collector) step(contents string, ts time.Time) (model.Event, bool) {
	switch c.phase {
	case phaseIdle:
		c.start(contents)
		return model.Event{}, false

	case phaseBody:
		if tracePattern.MatchString(contents) {
			c.phase = phaseTrace
			c.trace = append(c.trace, contents)
			return model.Event{}, false
		}
		// The shell indents continuation lines of pretty-printed objects.
		c.body = append(c.body, strings.TrimSpace(contents))
		return model.Event{}, false

	case phaseTrace:
		if tracePattern.MatchString(contents) {
			c.trace = append(c.trace, contents)
			return model.Event{}, false
		}
		ev, ok := c.complete(ts)
		// The closing line may itself start the next assertion.
		c.start(contents)
		return ev, ok
	}
	return model.Event{}, false
}

func (c *collector) start(contents string) {
	c.phase = phaseIdle
	c.body = nil
	c.trace = nil
	if processPattern.MatchString(contents) {
		return // spawned server output, never part of an assertion
	}
	if rest, ok := strings.CutPrefix(contents, assertionStart); ok {
		c.phase = phaseBody
		c.body = []string{strings.TrimSpace(rest)}
	}
}

func (c *collector) complete(ts time.Time) (model.Event, bool) {
	raw := strings.Join(c.body, "")
	pos := positionFromTrace(c.trace)

	msg, ok := parseAssertion(raw, pos)
	if !ok {
		slog.Debug("assertion did not match any pattern", "assertion", raw)
		return model.Event{}, false
	}
	return model.Event{Kind: model.KindAssertion, Output: Prefix + " " + msg, Timestamp: ts}, true
}

// position is a file location extracted from a traceback frame.
type position struct {
	file   string
	line   string
	column string
}

func (p position) String() string {
	return fmt.Sprintf("%s:%s:%s", p.file, p.line, p.column)
}

// positionFromTrace picks the frame to report: the top-most frame inside
// the test directory, falling back to the first frame.
func positionFromTrace(trace []string) position {
	var first *position
	for _, frame := range trace {
		m := tracePattern.FindStringSubmatch(frame)
		if m == nil {
			continue
		}
		pos := position{file: m[2], line: m[3], column: m[4]}
		if strings.HasPrefix(pos.file, "jstests") {
			return pos
		}
		if first == nil {
			first = &pos
		}
	}
	if first != nil {
		return *first
	}
	return position{file: "<unknown>", line: "0", column: "0"}
}

var (
	inequalityPattern = regexp.MustCompile(`Error: (.+) != (.+) are not equal (:.*)?:`)
	jsErrorPattern    = regexp.MustCompile(`(\w+Error): (.*) :`)
	genericPattern    = regexp.MustCompile(`Error: (.*):$`)
)

// parseAssertion tries the assertion shapes in priority order: a failed
// equality assertion, a thrown JS error, then any other Error message.
func parseAssertion(raw string, pos position) (string, bool) {
	if m := inequalityPattern.FindStringSubmatch(raw); m != nil {
		return formatInequality(m, pos), true
	}
	if m := jsErrorPattern.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf("%s: warning: %s: %s", pos, m[1], m[2]), true
	}
	if m := genericPattern.FindStringSubmatch(raw); m != nil {
		msg := m[1]
		if msg == "" {
			msg = "<no message>"
		}
		return fmt.Sprintf("%s: error: %s", pos, msg), true
	}
	return "", false
}

// formatInequality renders a failed equality assertion. When both payloads
// parse as JSON a minimal deep diff is appended; otherwise the raw message
// stands alone.
func formatInequality(m []string, pos position) string {
	rawLeft, rawRight := m[1], m[2]

	msg := "<no message>"
	if m[3] != "" {
		msg = strings.TrimPrefix(m[3], ":")
		if parsed, err := jsondiff.Parse([]byte(msg)); err == nil {
			msg = jsondiff.Render(parsed)
		}
	}

	head := fmt.Sprintf("%s: error: assert equals failed: %s: %s != %s", pos, msg, rawLeft, rawRight)

	left, errL := jsondiff.Parse([]byte(rawLeft))
	right, errR := jsondiff.Parse([]byte(rawRight))
	if errL != nil || errR != nil {
		return head
	}

	dl, dr := jsondiff.Diff(left, right)
	if dl == nil && dr == nil {
		return head
	}
	return fmt.Sprintf("%s\nDiff:\nLeft: %s\nRight: %s", head, jsondiff.Render(*dl), jsondiff.Render(*dr))
}
