// Package diagnostics runs a fixed battery of checks against a single
// logical HTTP request: a functional status check, an error-path probe, a
// sequential latency sample, and a with/without-Authorization comparison.
//
// Checks re-materialize the request input independently and are issued
// against the live target; the security check sends the request twice.
package diagnostics
