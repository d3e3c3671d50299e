package output

import (
	"encoding/json"

	"github.com/apiprobe/apiprobe/packages/core/request"
	"github.com/apiprobe/apiprobe/packages/http"
)

// Result is the JSON payload for a single executed request: the echoed
// request next to the response.
type Result struct {
	Request  ResultRequest  `json:"request"`
	Response ResultResponse `json:"response"`
}

// ResultRequest echoes what was actually sent.
type ResultRequest struct {
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	ResolvedURL string            `json:"resolved_url"`
	QueryParams map[string]string `json:"query_params"`
	Headers     map[string]string `json:"headers"`
	BodyType    string            `json:"body_type,omitempty"`
	Body        any               `json:"body,omitempty"`
}

// ResultResponse carries the interpreted response.
type ResultResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
}

// FormBody is the echoed body shape for form-mode requests.
type FormBody struct {
	FormData map[string]string `json:"form_data"`
	Files    []string          `json:"files"`
}

// ErrorResult is the payload returned instead of a Result when the request
// could not be built or sent.
type ErrorResult struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// BuildResult assembles the single-request payload from the materialized
// descriptor, the input it came from, and the response. The resolved URL
// reflects any redirects the transport followed.
func BuildResult(in request.Input, d *request.Descriptor, resp *http.Response) *Result {
	r := &Result{
		Request: ResultRequest{
			Method:      in.Method,
			URL:         in.URL,
			ResolvedURL: resp.FinalURL,
			QueryParams: d.QueryParams,
			Headers:     d.Headers,
			BodyType:    in.BodyType,
		},
		Response: ResultResponse{
			Status:  resp.StatusCode,
			Headers: resp.Headers,
			Body:    resp.InterpretedBody(),
		},
	}

	if d.Body != nil {
		switch d.Body.Kind {
		case request.BodyJSON:
			r.Request.Body = d.Body.JSON
		case request.BodyForm:
			files := []string{}
			if d.Body.File != nil {
				files = append(files, d.Body.File.FieldName)
			}
			r.Request.Body = FormBody{FormData: d.Body.Form, Files: files}
		}
	}

	return r
}

// BuildError converts a materialization or transport failure into the
// error payload. Failures are reported as data, never re-raised.
func BuildError(kind string, err error) *ErrorResult {
	return &ErrorResult{Error: kind, Details: err.Error()}
}

// RenderJSON marshals any payload with two-space indentation.
func RenderJSON(payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
