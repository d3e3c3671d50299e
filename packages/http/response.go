package http

import (
	"encoding/json"
	"strings"
	"time"
)

// Response is the outcome of one executed request. FinalURL is the URL the
// transport ended up at after following redirects.
type Response struct {
	StatusCode int
	Status     string
	FinalURL   string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// InterpretedBody returns the body parsed as a JSON value when it is valid
// JSON, otherwise the raw text. Best-effort classification, never an error.
func (r *Response) InterpretedBody() any {
	var value any
	if err := json.Unmarshal(r.Body, &value); err != nil {
		return string(r.Body)
	}
	return value
}

// Header looks a header up case-insensitively.
func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
