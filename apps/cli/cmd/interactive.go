package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/apiprobe/apiprobe/packages/core/request"
)

// runInteractiveForm collects the request description through a terminal
// form. Params, headers and form fields are entered one per line as
// key=value; header lines starting with '#' are kept but disabled.
func runInteractiveForm() (request.Input, error) {
	var (
		formMethod   string
		formURL      string
		formParams   string
		formHeaders  string
		formBodyType string
		formJSON     string
		formData     string
		formFileKey  string
		formFilePath string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("HTTP method").
				Options(
					huh.NewOption("GET", "GET"),
					huh.NewOption("POST", "POST"),
					huh.NewOption("PUT", "PUT"),
					huh.NewOption("DELETE", "DELETE"),
					huh.NewOption("PATCH", "PATCH"),
					huh.NewOption("HEAD", "HEAD"),
					huh.NewOption("OPTIONS", "OPTIONS"),
				).
				Value(&formMethod),
			huh.NewInput().
				Title("URL template").
				Placeholder("https://api.example.com/users/{id}").
				Value(&formURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("url is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Parameters (key=value, one per line; placeholder keys fill the path)").
				Value(&formParams),
			huh.NewText().
				Title("Headers (key=value, one per line; prefix with # to disable)").
				Value(&formHeaders),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Body type").
				Options(
					huh.NewOption("JSON", "JSON"),
					huh.NewOption("Form Data", "Form Data"),
				).
				Value(&formBodyType),
			huh.NewText().
				Title("JSON body (JSON mode only)").
				Placeholder(`{"name": "ada"}`).
				Value(&formJSON),
			huh.NewText().
				Title("Form data (key=value, one per line; form mode only)").
				Value(&formData),
			huh.NewInput().
				Title("File key (multipart field name, optional)").
				Value(&formFileKey),
			huh.NewInput().
				Title("File to upload (path, optional)").
				Value(&formFilePath),
		),
	)

	if err := form.Run(); err != nil {
		return request.Input{}, err
	}

	in := request.Input{
		Method:   formMethod,
		URL:      strings.TrimSpace(formURL),
		BodyType: formBodyType,
		JSONBody: formJSON,
		FileKey:  formFileKey,
	}

	for _, line := range splitLines(formParams) {
		k, v := parseRow(line)
		in.Params = append(in.Params, request.ParamRow{Key: k, Value: v})
	}

	for _, line := range splitLines(formHeaders) {
		enabled := true
		if strings.HasPrefix(line, "#") {
			enabled = false
			line = strings.TrimPrefix(line, "#")
		}
		k, v := parseRow(line)
		in.Headers = append(in.Headers, request.HeaderRow{Enabled: enabled, Key: k, Value: v})
	}

	for _, line := range splitLines(formData) {
		k, v := parseRow(line)
		in.FormParams = append(in.FormParams, request.ParamRow{Key: k, Value: v})
	}

	if strings.TrimSpace(formFilePath) != "" {
		content, err := os.ReadFile(strings.TrimSpace(formFilePath))
		if err != nil {
			return request.Input{}, err
		}
		in.File = request.NewFileAttachment(formFileKey, strings.TrimSpace(formFilePath), content)
	}

	return in, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
