package request

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// BodyTypeJSON selects JSON body mode; any other selector means form mode.
const BodyTypeJSON = "JSON"

// BodyKind tags the payload variant carried by a Descriptor.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyForm
)

// Input is the loosely-typed request description supplied by the caller:
// tabular params and headers, a body-type selector, raw JSON text, form
// rows and an optional file attachment.
type Input struct {
	Method     string
	URL        string
	Params     []ParamRow
	Headers    []HeaderRow
	BodyType   string
	JSONBody   string
	FormParams []ParamRow
	FileKey    string
	File       *FileAttachment
}

// Body is the materialized request payload.
type Body struct {
	Kind BodyKind
	JSON any    // parsed JSON value, Kind == BodyJSON
	Raw  string // original JSON text, Kind == BodyJSON
	Form map[string]string
	File *FileAttachment
}

// Descriptor is a ready-to-send request. Query-param keys that were
// consumed as path placeholders never appear in QueryParams.
type Descriptor struct {
	Method      string
	OriginalURL string
	URL         string
	QueryParams map[string]string
	Headers     map[string]string
	Body        *Body
}

// HasFile reports whether the descriptor carries a multipart file part.
func (d *Descriptor) HasFile() bool {
	return d.Body != nil && d.Body.Kind == BodyForm && d.Body.File != nil
}

// HeadersCopy returns a shallow copy of the header map so callers can
// mutate headers without touching the descriptor.
func (d *Descriptor) HeadersCopy() map[string]string {
	m := make(map[string]string, len(d.Headers))
	for k, v := range d.Headers {
		m[k] = v
	}
	return m
}

func setDefaultHeader(headers map[string]string, key, value string) {
	if _, ok := headers[key]; !ok {
		headers[key] = value
	}
}

func methodTakesBody(method string) bool {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// Materialize normalizes raw tabular input into a Descriptor. It resolves
// path placeholders, filters unusable rows, and builds the body payload.
// A non-empty JSON body that fails to parse returns an error wrapping
// ErrBodyParse.
func Materialize(in Input) (*Descriptor, error) {
	resolvedURL, remaining := ResolvePathVariables(in.URL, in.Params)

	d := &Descriptor{
		Method:      in.Method,
		OriginalURL: in.URL,
		URL:         resolvedURL,
		QueryParams: paramMap(remaining),
		Headers:     headerMap(in.Headers),
	}

	if !methodTakesBody(in.Method) {
		return d, nil
	}

	if in.BodyType == BodyTypeJSON && strings.TrimSpace(in.JSONBody) != "" {
		var value any
		if err := json.Unmarshal([]byte(in.JSONBody), &value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBodyParse, err)
		}
		setDefaultHeader(d.Headers, "Content-Type", "application/json")
		d.Body = &Body{Kind: BodyJSON, JSON: value, Raw: in.JSONBody}
		return d, nil
	}

	body := &Body{Kind: BodyForm, Form: paramMap(in.FormParams)}
	fileKey := strings.TrimSpace(in.FileKey)
	if fileKey != "" && in.File != nil {
		// Multipart branch: the transport sets the boundary Content-Type,
		// so no default header here.
		body.File = &FileAttachment{
			FieldName: fileKey,
			Filename:  filepath.Base(in.File.Filename),
			Content:   in.File.Content,
		}
	} else {
		setDefaultHeader(d.Headers, "Content-Type", "application/x-www-form-urlencoded")
	}
	d.Body = body
	return d, nil
}
