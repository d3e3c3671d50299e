// Package sender is the single-request operation: materialize, execute,
// and report the outcome as a JSON-serializable payload. Failures never
// escape as errors; they become the error payload.
package sender

import (
	"errors"

	"github.com/apiprobe/apiprobe/packages/core/request"
	"github.com/apiprobe/apiprobe/packages/http"
	"github.com/apiprobe/apiprobe/packages/output"
)

// Send executes one request through the given transport. The returned
// payload is either *output.Result or *output.ErrorResult; the raw
// response accompanies a successful payload and is nil otherwise.
func Send(t http.Transport, in request.Input) (any, *http.Response) {
	d, err := request.Materialize(in)
	if err != nil {
		if errors.Is(err, request.ErrBodyParse) {
			return output.BuildError("Body Parse Error", err), nil
		}
		return output.BuildError("Request Error", err), nil
	}

	resp, err := t.Do(d)
	if err != nil {
		return output.BuildError("Request Error", err), nil
	}

	return output.BuildResult(in, d, resp), resp
}
