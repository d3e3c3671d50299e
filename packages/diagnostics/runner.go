package diagnostics

import (
	"fmt"

	"github.com/apiprobe/apiprobe/packages/core/request"
	"github.com/apiprobe/apiprobe/packages/http"
)

const (
	// DefaultExpectedStatus is the status the functional check expects
	DefaultExpectedStatus = 200
	// DefaultIterations is the number of calls the performance check makes
	DefaultIterations = 5
)

// Category selects a subset of checks in run-selected mode.
type Category string

const (
	CategoryManual    Category = "manual"
	CategoryAutomated Category = "automated"
	CategoryLoad      Category = "load"
	CategorySecurity  Category = "security"
)

// Runner executes diagnostic checks against a logical request. Each check
// re-materializes the input on its own, so one check's header or body
// mutation never leaks into another.
type Runner struct {
	transport      http.Transport
	expectedStatus int
	iterations     int
	rate           float64
}

type Option func(*Runner)

// WithTransport sets the transport used for all checks. Tests inject a
// fake here.
func WithTransport(t http.Transport) Option {
	return func(r *Runner) {
		r.transport = t
	}
}

// WithExpectedStatus sets the status code the functional check passes on.
func WithExpectedStatus(status int) Option {
	return func(r *Runner) {
		r.expectedStatus = status
	}
}

// WithIterations sets the number of sequential calls in the performance check.
func WithIterations(n int) Option {
	return func(r *Runner) {
		r.iterations = n
	}
}

// WithRate caps the performance check at the given requests per second.
// Zero means unpaced.
func WithRate(rps float64) Option {
	return func(r *Runner) {
		r.rate = rps
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		expectedStatus: DefaultExpectedStatus,
		iterations:     DefaultIterations,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.transport == nil {
		r.transport = http.NewClient()
	}
	if r.iterations <= 0 {
		r.iterations = DefaultIterations
	}

	return r
}

// RunAll executes the four checks in fixed order and folds their verdicts
// into one report. A transport failure fails that check's verdict only;
// the remaining checks still run.
func (r *Runner) RunAll(in request.Input) *Report {
	return newReport(
		r.Functional(in),
		r.ErrorHandling(in),
		r.Performance(in),
		r.Security(in),
	)
}

// RunCategory maps a category label to a subset of checks. The manual
// category and unrecognized categories issue no requests.
func (r *Runner) RunCategory(in request.Input, category Category) *Report {
	switch category {
	case CategoryManual:
		return newReport(Verdict{
			Name:   "manual",
			Line:   "Manual testing: use an interactive client to send requests.",
			Passed: true,
		})
	case CategoryAutomated:
		return newReport(r.Functional(in), r.ErrorHandling(in))
	case CategoryLoad:
		return newReport(r.Performance(in))
	case CategorySecurity:
		return newReport(r.Security(in))
	}
	return newReport(Verdict{
		Name: "unknown",
		Line: fmt.Sprintf("Unknown test category: %q", string(category)),
	})
}
