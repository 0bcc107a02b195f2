package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/desmoke/internal/model"
)

const fence = "----"

// Renderer turns a RunReport into the fixed-format report block. Sections
// whose underlying data is absent are omitted.
type Renderer struct {
	pass    lipgloss.Style
	fail    lipgloss.Style
	heading lipgloss.Style
}

// NewRenderer creates a Renderer. With color disabled all styles are
// no-ops and the output is plain text.
func NewRenderer(color bool) *Renderer {
	r := &Renderer{
		pass:    lipgloss.NewStyle(),
		fail:    lipgloss.NewStyle(),
		heading: lipgloss.NewStyle(),
	}
	if color {
		r.pass = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		r.fail = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		r.heading = lipgloss.NewStyle().Bold(true)
	}
	return r
}

// Render builds the report block between "----" fences.
func (r *Renderer) Render(report model.RunReport) string {
	var b strings.Builder
	b.WriteString(fence + "\n")

	if c := report.Counts; c != nil {
		label := "all suites"
		if c.Suite != "" {
			label = "suite " + c.Suite
		}
		succeeded := r.pass.Render(fmt.Sprintf("%d succeeded", c.Succeeded))
		failed := fmt.Sprintf("%d failed", c.Failed)
		if c.Failed > 0 {
			failed = r.fail.Render(failed)
		}
		fmt.Fprintf(&b, "%d ran, %s, %d skipped, %s, %d errored (%s)\n",
			c.Ran, succeeded, c.Skipped, failed, c.Errored, label)
	}

	if len(report.Failures) > 0 {
		b.WriteString(r.heading.Render("failed tests:") + "\n")
		for _, f := range report.Failures {
			if f.Reason != "" {
				fmt.Fprintf(&b, "  %s (exit code %d: %s)\n", f.TestID, f.ExitCode, f.Reason)
			} else {
				fmt.Fprintf(&b, "  %s (exit code %d)\n", f.TestID, f.ExitCode)
			}
		}
		// No richer prioritization signal exists in the stream, so the
		// suggested order is simply first-failed first.
		b.WriteString(r.heading.Render("investigate first:") + "\n")
		for i, f := range report.Failures {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, f.TestID)
		}
	}

	if len(report.Findings) > 0 {
		b.WriteString(r.heading.Render("findings:") + "\n")
		for _, f := range report.Findings {
			b.WriteString(f + "\n")
		}
	}

	if report.HasExitCode {
		line := fmt.Sprintf("exit code: %d", report.ExitCode)
		if report.ExitCode != 0 {
			line = r.fail.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fence)
	return b.String()
}
