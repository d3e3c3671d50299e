// Package output renders single-request results and diagnostic reports:
// a JSON payload echoing the request next to the response, and a colored
// console view of verdict lines.
package output
