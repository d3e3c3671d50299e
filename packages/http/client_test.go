package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiprobe/apiprobe/packages/core/request"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&request.Descriptor{
		Method:      "GET",
		URL:         server.URL + "/users",
		QueryParams: map[string]string{"page": "2"},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header("Content-Type"))
	assert.Contains(t, resp.BodyString(), "hello")
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"test"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 123}`))
	}))
	defer server.Close()

	d, err := request.Materialize(request.Input{
		Method:   "POST",
		URL:      server.URL,
		BodyType: request.BodyTypeJSON,
		JSONBody: `{"name":"test"}`,
	})
	require.NoError(t, err)

	client := NewClient()
	resp, err := client.Do(d)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Contains(t, resp.BodyString(), "123")
}

func TestClient_PostForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ada", r.PostFormValue("name"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d, err := request.Materialize(request.Input{
		Method:     "POST",
		URL:        server.URL,
		FormParams: []request.ParamRow{{Key: "name", Value: "ada"}},
	})
	require.NoError(t, err)

	client := NewClient()
	resp, err := client.Do(d)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_PostMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "cat", r.PostFormValue("caption"))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cat.png", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, []byte("png-bytes"), content)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d, err := request.Materialize(request.Input{
		Method:     "POST",
		URL:        server.URL,
		FormParams: []request.ParamRow{{Key: "caption", Value: "cat"}},
		FileKey:    "photo",
		File:       request.NewFileAttachment("photo", "/tmp/cat.png", []byte("png-bytes")),
	})
	require.NoError(t, err)

	client := NewClient()
	resp, err := client.Do(d)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := client.Do(&request.Descriptor{Method: "GET", URL: server.URL})

	require.Error(t, err)
	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestClient_ConnectionRefused(t *testing.T) {
	client := NewClient(WithTimeout(time.Second))
	_, err := client.Do(&request.Descriptor{Method: "GET", URL: "http://127.0.0.1:1"})

	require.Error(t, err)
	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
	assert.NotEmpty(t, terr.Message)
}

func TestClient_InvalidScheme(t *testing.T) {
	client := NewClient()
	_, err := client.Do(&request.Descriptor{Method: "GET", URL: "ftp://example.com/file"})

	require.Error(t, err)
	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestClient_FinalURLAfterRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/final" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithFollowRedirects(true))
	resp, err := client.Do(&request.Descriptor{Method: "GET", URL: server.URL + "/start"})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, server.URL+"/final", resp.FinalURL)
}

func TestClient_NoFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithFollowRedirects(false))
	resp, err := client.Do(&request.Descriptor{Method: "GET", URL: server.URL + "/start"})

	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
}

func TestClient_DefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "probe", r.Header.Get("User-Agent"))
		assert.Equal(t, "row-wins", r.Header.Get("X-Conflict"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeaders(map[string]string{
		"User-Agent": "probe",
		"X-Conflict": "default",
	}))
	resp, err := client.Do(&request.Descriptor{
		Method:  "GET",
		URL:     server.URL,
		Headers: map[string]string{"X-Conflict": "row-wins"},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestResponse_InterpretedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"json object", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"json array", `[1,2]`, []any{float64(1), float64(2)}},
		{"plain text", "hello world", "hello world"},
		{"broken json", `{"a":`, `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{Body: []byte(tt.body)}
			assert.Equal(t, tt.want, r.InterpretedBody())
		})
	}
}

func TestResponse_Extract(t *testing.T) {
	r := &Response{Body: []byte(`{"users":[{"id":7,"name":"ada"}]}`)}

	v, err := r.Extract("users.0.name")
	require.NoError(t, err)
	assert.Equal(t, "ada", v)

	_, err = r.Extract("users.3.name")
	assert.Error(t, err)

	broken := &Response{Body: []byte("not json")}
	_, err = broken.Extract("a")
	assert.Error(t, err)
}

func TestTransportFunc(t *testing.T) {
	called := false
	var tr Transport = TransportFunc(func(d *request.Descriptor) (*Response, error) {
		called = true
		return &Response{StatusCode: 204}, nil
	})

	resp, err := tr.Do(&request.Descriptor{Method: "GET", URL: "https://x.test"})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestBuildURL_MergesExistingQuery(t *testing.T) {
	d := &request.Descriptor{
		Method:      "GET",
		URL:         "https://x.test/items?sort=asc",
		QueryParams: map[string]string{"page": "2"},
	}

	u := buildURL(d)

	assert.Contains(t, u, "sort=asc")
	assert.Contains(t, u, "page=2")
}

func TestBuildBody_JSONRawPassthrough(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &v))
	d := &request.Descriptor{
		Method: "POST",
		URL:    "https://x.test",
		Body:   &request.Body{Kind: request.BodyJSON, JSON: v, Raw: `{"a":1}`},
	}

	body, ct, err := buildBody(d)

	require.NoError(t, err)
	assert.Empty(t, ct)
	raw, _ := io.ReadAll(body)
	assert.JSONEq(t, `{"a":1}`, string(raw))
}
