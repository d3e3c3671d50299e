package diagnostics

import (
	"strings"

	"github.com/google/uuid"
)

// Verdict is the outcome of a single diagnostic check: one human-readable
// line plus a pass/fail flag for programmatic use.
type Verdict struct {
	Name   string
	Line   string
	Passed bool
}

// Report aggregates the verdicts of one diagnostic run.
type Report struct {
	RunID    string
	Verdicts []Verdict
}

func newReport(verdicts ...Verdict) *Report {
	return &Report{
		RunID:    uuid.New().String(),
		Verdicts: verdicts,
	}
}

// Render joins the verdict lines with newlines, in check order.
func (r *Report) Render() string {
	lines := make([]string, len(r.Verdicts))
	for i, v := range r.Verdicts {
		lines[i] = v.Line
	}
	return strings.Join(lines, "\n")
}

// Passed reports whether every verdict in the report passed.
func (r *Report) Passed() bool {
	for _, v := range r.Verdicts {
		if !v.Passed {
			return false
		}
	}
	return true
}
