package http

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Extract pulls a value out of a JSON response body using a gjson path
// (for example "users.0.id").
func (r *Response) Extract(path string) (any, error) {
	if !gjson.ValidBytes(r.Body) {
		return nil, fmt.Errorf("response body is not valid JSON")
	}
	result := gjson.GetBytes(r.Body, path)
	if !result.Exists() {
		return nil, fmt.Errorf("path %q not found in response body", path)
	}
	return result.Value(), nil
}
