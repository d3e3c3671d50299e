package reqfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/apiprobe/apiprobe/packages/core/request"
)

// File is the YAML shape of a request definition.
type File struct {
	Name    string      `yaml:"name"`
	Method  string      `yaml:"method"`
	URL     string      `yaml:"url"`
	Params  []paramRow  `yaml:"params"`
	Headers []headerRow `yaml:"headers"`
	Body    *bodySpec   `yaml:"body"`
}

type paramRow struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type headerRow struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Enabled *bool  `yaml:"enabled"` // nil means enabled
}

type bodySpec struct {
	Type    string     `yaml:"type"` // "JSON" or anything else for form mode
	JSON    string     `yaml:"json"`
	Form    []paramRow `yaml:"form"`
	FileKey string     `yaml:"fileKey"`
	File    string     `yaml:"file"` // path, relative to the definition file
}

// Load reads a YAML request definition and converts it to a request.Input.
// A body file reference is read once, here; its path resolves relative to
// the definition file's directory.
func Load(path string) (request.Input, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return request.Input{}, "", fmt.Errorf("reading request file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return request.Input{}, "", fmt.Errorf("parsing request file: %w", err)
	}

	if f.Method == "" {
		return request.Input{}, "", fmt.Errorf("request file %s: method is required", path)
	}
	if f.URL == "" {
		return request.Input{}, "", fmt.Errorf("request file %s: url is required", path)
	}

	in := request.Input{
		Method: f.Method,
		URL:    f.URL,
	}

	for _, p := range f.Params {
		in.Params = append(in.Params, request.ParamRow{Key: p.Key, Value: p.Value})
	}

	for _, h := range f.Headers {
		enabled := true
		if h.Enabled != nil {
			enabled = *h.Enabled
		}
		in.Headers = append(in.Headers, request.HeaderRow{Enabled: enabled, Key: h.Key, Value: h.Value})
	}

	if f.Body != nil {
		in.BodyType = f.Body.Type
		in.JSONBody = f.Body.JSON
		for _, p := range f.Body.Form {
			in.FormParams = append(in.FormParams, request.ParamRow{Key: p.Key, Value: p.Value})
		}
		in.FileKey = f.Body.FileKey

		if f.Body.File != "" {
			filePath := f.Body.File
			if !filepath.IsAbs(filePath) {
				filePath = filepath.Join(filepath.Dir(path), filePath)
			}
			content, err := os.ReadFile(filePath)
			if err != nil {
				return request.Input{}, "", fmt.Errorf("reading body file: %w", err)
			}
			in.File = request.NewFileAttachment(f.Body.FileKey, filePath, content)
		}
	}

	return in, f.Name, nil
}
