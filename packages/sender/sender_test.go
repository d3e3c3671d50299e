package sender

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiprobe/apiprobe/packages/core/request"
	"github.com/apiprobe/apiprobe/packages/http"
	"github.com/apiprobe/apiprobe/packages/output"
)

func TestSend_Success(t *testing.T) {
	transport := http.TransportFunc(func(d *request.Descriptor) (*http.Response, error) {
		assert.Equal(t, "https://x.test/users/7", d.URL)
		return &http.Response{
			StatusCode: 200,
			FinalURL:   d.URL,
			Body:       []byte(`{"ok":true}`),
		}, nil
	})

	payload, resp := Send(transport, request.Input{
		Method: "GET",
		URL:    "https://x.test/users/{id}",
		Params: []request.ParamRow{{Key: "id", Value: "7"}},
	})

	result, ok := payload.(*output.Result)
	require.True(t, ok)
	assert.Equal(t, 200, result.Response.Status)
	assert.Equal(t, map[string]any{"ok": true}, result.Response.Body)
	require.NotNil(t, resp)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestSend_BodyParseErrorBecomesPayload(t *testing.T) {
	transport := http.TransportFunc(func(d *request.Descriptor) (*http.Response, error) {
		t.Fatal("transport must not be reached on a materialize failure")
		return nil, nil
	})

	payload, resp := Send(transport, request.Input{
		Method:   "POST",
		URL:      "https://x.test/users",
		BodyType: request.BodyTypeJSON,
		JSONBody: "not json",
	})

	e, ok := payload.(*output.ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "Body Parse Error", e.Error)
	assert.NotEmpty(t, e.Details)
	assert.Nil(t, resp)
}

func TestSend_TransportErrorBecomesPayload(t *testing.T) {
	transport := http.TransportFunc(func(d *request.Descriptor) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	payload, resp := Send(transport, request.Input{Method: "GET", URL: "https://x.test"})

	e, ok := payload.(*output.ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "Request Error", e.Error)
	assert.Contains(t, e.Details, "connection refused")
	assert.Nil(t, resp)
}
