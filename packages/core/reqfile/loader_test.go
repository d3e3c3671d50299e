package reqfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiprobe/apiprobe/packages/core/request"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "req.yaml", `
name: get user
method: GET
url: https://api.example.com/users/{id}
params:
  - key: id
    value: "42"
  - key: page
    value: "2"
headers:
  - key: Authorization
    value: Bearer tok
  - key: X-Disabled
    value: nope
    enabled: false
`)

	in, name, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "get user", name)
	assert.Equal(t, "GET", in.Method)
	assert.Equal(t, "https://api.example.com/users/{id}", in.URL)
	assert.Equal(t, []request.ParamRow{{Key: "id", Value: "42"}, {Key: "page", Value: "2"}}, in.Params)
	require.Len(t, in.Headers, 2)
	assert.True(t, in.Headers[0].Enabled, "enabled defaults to true when omitted")
	assert.False(t, in.Headers[1].Enabled)
}

func TestLoad_JSONBody(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "req.yaml", `
method: POST
url: https://api.example.com/users
body:
  type: JSON
  json: '{"name":"ada"}'
`)

	in, _, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, request.BodyTypeJSON, in.BodyType)
	assert.Equal(t, `{"name":"ada"}`, in.JSONBody)
}

func TestLoad_FormBodyWithFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cat.png", "png-bytes")
	path := writeFile(t, dir, "req.yaml", `
method: POST
url: https://api.example.com/upload
body:
  type: Form Data
  form:
    - key: caption
      value: cat
  fileKey: photo
  file: ./cat.png
`)

	in, _, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []request.ParamRow{{Key: "caption", Value: "cat"}}, in.FormParams)
	assert.Equal(t, "photo", in.FileKey)
	require.NotNil(t, in.File)
	assert.Equal(t, "cat.png", in.File.Filename)
	assert.Equal(t, []byte("png-bytes"), in.File.Content)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(writeFile(t, dir, "nomethod.yaml", "url: https://x.test\n"))
	assert.ErrorContains(t, err, "method is required")

	_, _, err = Load(writeFile(t, dir, "nourl.yaml", "method: GET\n"))
	assert.ErrorContains(t, err, "url is required")
}

func TestLoad_MissingBodyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "req.yaml", `
method: POST
url: https://api.example.com/upload
body:
  fileKey: photo
  file: ./missing.png
`)

	_, _, err := Load(path)

	assert.ErrorContains(t, err, "reading body file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "req.yaml", "method: [unclosed\n")

	_, _, err := Load(path)

	assert.ErrorContains(t, err, "parsing request file")
}
