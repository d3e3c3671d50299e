package diagnostics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/apiprobe/apiprobe/packages/core/request"
)

func failedVerdict(name string, err error) Verdict {
	return Verdict{
		Name: name,
		Line: fmt.Sprintf("%s: check failed: %v", checkTitle(name), err),
	}
}

func checkTitle(name string) string {
	switch name {
	case "error-handling":
		return "Error Handling"
	default:
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

// Functional materializes and executes the request once; it passes when
// the status code equals the expected status.
func (r *Runner) Functional(in request.Input) Verdict {
	const name = "functional"

	d, err := request.Materialize(in)
	if err != nil {
		return failedVerdict(name, err)
	}

	resp, err := r.transport.Do(d)
	if err != nil {
		return failedVerdict(name, err)
	}

	ok := resp.StatusCode == r.expectedStatus
	result := "FAIL"
	if ok {
		result = "PASS"
	}
	return Verdict{
		Name:   name,
		Line:   fmt.Sprintf("Functional: %s %s -> %d (%s)", in.Method, in.URL, resp.StatusCode, result),
		Passed: ok,
	}
}

// ErrorHandling probes a URL that should not exist: the resolved URL with
// trailing slashes stripped and "/nonexistent" appended, issued as a GET
// with the materialized query params and headers but no body. The observed
// status is reported without judgment.
func (r *Runner) ErrorHandling(in request.Input) Verdict {
	const name = "error-handling"

	d, err := request.Materialize(in)
	if err != nil {
		return failedVerdict(name, err)
	}

	probeURL := strings.TrimRight(d.URL, "/") + "/nonexistent"
	probe := &request.Descriptor{
		Method:      "GET",
		OriginalURL: d.OriginalURL,
		URL:         probeURL,
		QueryParams: d.QueryParams,
		Headers:     d.Headers,
	}

	resp, err := r.transport.Do(probe)
	if err != nil {
		return failedVerdict(name, err)
	}

	return Verdict{
		Name:   name,
		Line:   fmt.Sprintf("Error Handling: GET %s -> %d", probeURL, resp.StatusCode),
		Passed: true,
	}
}

// Performance materializes once and executes the request a fixed number of
// times, strictly sequentially, measuring wall time per call. It reports
// the arithmetic mean latency over all calls; the p95 comes from an
// HdrHistogram of the same samples. A non-zero rate paces the calls with a
// limiter but they stay sequential.
func (r *Runner) Performance(in request.Input) Verdict {
	const name = "performance"

	d, err := request.Materialize(in)
	if err != nil {
		return failedVerdict(name, err)
	}

	var limiter *rate.Limiter
	if r.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.rate), 1)
	}

	// 1us to 60s range, 3 significant digits
	histogram := hdrhistogram.New(1, 60_000_000, 3)
	var total time.Duration

	for i := 0; i < r.iterations; i++ {
		if limiter != nil {
			if err := limiter.Wait(context.Background()); err != nil {
				return failedVerdict(name, err)
			}
		}

		start := time.Now()
		_, err := r.transport.Do(d)
		elapsed := time.Since(start)
		if err != nil {
			return failedVerdict(name, err)
		}

		total += elapsed
		latencyUs := elapsed.Microseconds()
		if latencyUs < 1 {
			latencyUs = 1
		}
		_ = histogram.RecordValue(latencyUs)
	}

	avg := total / time.Duration(r.iterations)
	p95 := time.Duration(histogram.ValueAtQuantile(95)) * time.Microsecond
	return Verdict{
		Name:   name,
		Line:   fmt.Sprintf("Performance: avg %.3fs over %d calls (p95 %.3fs)", avg.Seconds(), r.iterations, p95.Seconds()),
		Passed: true,
	}
}

// Security materializes once, executes the request as configured, then
// executes it again with the Authorization header removed from a copied
// header map. Differing status codes imply the endpoint noticed the
// missing credentials; equal codes are flagged as unconfirmed access
// control.
//
// This check hits the live target twice. Test doubles must account for
// both calls.
func (r *Runner) Security(in request.Input) Verdict {
	const name = "security"

	d, err := request.Materialize(in)
	if err != nil {
		return failedVerdict(name, err)
	}

	withAuth, err := r.transport.Do(d)
	if err != nil {
		return failedVerdict(name, err)
	}

	stripped := &request.Descriptor{
		Method:      d.Method,
		OriginalURL: d.OriginalURL,
		URL:         d.URL,
		QueryParams: d.QueryParams,
		Headers:     d.HeadersCopy(),
		Body:        d.Body,
	}
	delete(stripped.Headers, "Authorization")

	noAuth, err := r.transport.Do(stripped)
	if err != nil {
		return failedVerdict(name, err)
	}

	if withAuth.StatusCode != noAuth.StatusCode {
		return Verdict{
			Name:   name,
			Line:   fmt.Sprintf("Security: missing auth -> %d (expected %d)", noAuth.StatusCode, withAuth.StatusCode),
			Passed: true,
		}
	}
	return Verdict{
		Name: name,
		Line: fmt.Sprintf("Security: no auth -> %d, check endpoint access control", noAuth.StatusCode),
	}
}
