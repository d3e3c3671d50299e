// Package http executes materialized request descriptors.
//
// It wraps the standard library's http package with:
//   - a fixed, configurable request timeout (15s by default)
//   - redirect handling and connection pooling
//   - query-map merging and JSON/form/multipart body encoding
//   - best-effort JSON interpretation of response bodies
//
// The Transport interface is the seam between request execution and its
// callers; tests substitute a fake Transport instead of hitting the network.
package http
