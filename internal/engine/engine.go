// Package engine routes input lines to the processor for the detected log
// format and re-emits formatted events.
package engine

import (
	"log/slog"
	"strings"

	"github.com/crimson-sun/desmoke/internal/engine/cppunit"
	"github.com/crimson-sun/desmoke/internal/engine/resmoke"
	"github.com/crimson-sun/desmoke/internal/model"
)

// Format selects which log processor handles the stream.
type Format int

const (
	FormatAuto Format = iota // decide from the first line
	FormatResmoke
	FormatCppUnit
)

// ParseFormat converts a config string to a Format. Unknown strings mean auto.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "resmoke":
		return FormatResmoke
	case "cppunit":
		return FormatCppUnit
	default:
		return FormatAuto
	}
}

// processor is the per-format line handler.
type processor interface {
	Process(line model.LogLine) []model.Event
}

// Engine dispatches each line to the active format's processor, detecting
// the format from the first line when not forced.
type Engine struct {
	proc processor
}

// New creates an Engine for the given format.
func New(format Format) *Engine {
	e := &Engine{}
	switch format {
	case FormatResmoke:
		e.proc = resmoke.New()
	case FormatCppUnit:
		e.proc = cppunit.New()
	}
	return e
}

// Process classifies one line, in arrival order. The returned events keep
// that order: the passthrough copy first, reformatted lines after it.
func (e *Engine) Process(line model.LogLine) []model.Event {
	if e.proc == nil {
		e.proc = detect(line)
	}
	return e.proc.Process(line)
}

// detect makes a best guess from the first log line: harness runs open
// with a "[resmoke]" banner, anything else is treated as unit-test output.
func detect(line model.LogLine) processor {
	if strings.HasPrefix(line.Text, "[resmoke]") {
		slog.Debug("detected log format", "format", "resmoke")
		return resmoke.New()
	}
	slog.Debug("detected log format", "format", "cppunit")
	return cppunit.New()
}
