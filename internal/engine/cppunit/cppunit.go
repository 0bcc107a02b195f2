// Package cppunit reformats structured unit-test runner output. Each line
// is a JSON document; failing-test records carry the assertion location in
// their error attribute.
package cppunit

import (
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/crimson-sun/desmoke/internal/model"
)

const prefix = "[desmoke]"

// The error attribute has the shape "message @file:line".
var errorPattern = regexp.MustCompile(`^(.*)\s+@([\w./]+):(\d+)$`)

// Processor reformats one unit-test log stream. Stateless between lines.
type Processor struct{}

// New creates a Processor.
func New() *Processor {
	return &Processor{}
}

// Process classifies a single line. Failing-test records yield a
// reformatted location line after the passthrough copy; everything else,
// including non-JSON lines, passes through untouched.
func (p *Processor) Process(line model.LogLine) []model.Event {
	events := []model.Event{{Kind: model.KindPassthrough, Output: line.Text, Passthrough: true}}

	if !gjson.Valid(line.Text) {
		return events
	}
	doc := gjson.Parse(line.Text)
	if doc.Get("c").String() != "TEST" || doc.Get("msg").String() != "FAIL" {
		return events
	}

	m := errorPattern.FindStringSubmatch(doc.Get("attr.error").String())
	if m == nil {
		return events
	}

	out := fmt.Sprintf("%s %s:%s: %s", prefix, m[2], m[3], m[1])
	return append(events, model.Event{Kind: model.KindAssertion, Output: out, Timestamp: doc.Get("t.$date").Time()})
}
