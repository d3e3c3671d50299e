package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiprobe/apiprobe/packages/core/config"
	"github.com/apiprobe/apiprobe/packages/core/reqfile"
	"github.com/apiprobe/apiprobe/packages/core/request"
	"github.com/apiprobe/apiprobe/packages/http"
)

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// requestFlags collects the flags both send and check use to describe the
// request. The request can come from flags, a YAML file, or the
// interactive form; the file and form win over individual flags.
type requestFlags struct {
	file        string
	interactive bool

	method   string
	url      string
	params   []string
	headers  []string
	bodyType string
	jsonBody string
	form     []string
	fileKey  string
	filePath string

	// network
	timeout  string
	insecure bool
	proxy    string
	noFollow bool

	configPath string
	noColor    bool
}

func addRequestFlags(cmd *cobra.Command, f *requestFlags) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML request definition file")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "Fill in the request through an interactive form")

	cmd.Flags().StringVarP(&f.method, "method", "X", "GET", "HTTP method (GET/POST/PUT/DELETE/PATCH/HEAD/OPTIONS)")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "URL template, placeholders as {id} or :id")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "Parameter row key=value (repeatable; rows matching a placeholder fill the path)")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "Header row key=value (repeatable)")
	cmd.Flags().StringVar(&f.bodyType, "body-type", "JSON", `Body mode: "JSON" or anything else for form data`)
	cmd.Flags().StringVar(&f.jsonBody, "json", "", "Raw JSON body text")
	cmd.Flags().StringArrayVar(&f.form, "form", nil, "Form-data row key=value (repeatable)")
	cmd.Flags().StringVar(&f.fileKey, "file-key", "", "Multipart field name for the uploaded file")
	cmd.Flags().StringVar(&f.filePath, "upload", "", "Path of the file to attach")

	cmd.Flags().StringVar(&f.timeout, "timeout", getEnvString("APIPROBE_TIMEOUT", ""), "Request timeout, e.g. 15s (env: APIPROBE_TIMEOUT)")
	cmd.Flags().BoolVarP(&f.insecure, "insecure", "k", getEnvBool("APIPROBE_INSECURE", false), "Disable SSL certificate validation (env: APIPROBE_INSECURE)")
	cmd.Flags().StringVar(&f.proxy, "proxy", getEnvString("APIPROBE_PROXY", ""), "Proxy URL for HTTP requests (env: APIPROBE_PROXY)")
	cmd.Flags().BoolVar(&f.noFollow, "no-follow-redirects", false, "Do not follow redirects")

	cmd.Flags().StringVar(&f.configPath, "config", getEnvString("APIPROBE_CONFIG", ""), "Path to config file (env: APIPROBE_CONFIG)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", getEnvBool("APIPROBE_NO_COLOR", false), "Disable colored output (env: APIPROBE_NO_COLOR)")
}

// parseRow splits a key=value argument. An argument without '=' keeps the
// whole text as the key and an empty value, which the usability filter
// later drops.
func parseRow(arg string) (string, string) {
	k, v, found := strings.Cut(arg, "=")
	if !found {
		return arg, ""
	}
	return k, v
}

func (f *requestFlags) buildInput() (request.Input, error) {
	if f.file != "" {
		in, _, err := reqfile.Load(f.file)
		return in, err
	}

	if f.interactive {
		return runInteractiveForm()
	}

	if f.url == "" {
		return request.Input{}, fmt.Errorf("--url is required (or use --file / --interactive)")
	}

	in := request.Input{
		Method:   f.method,
		URL:      f.url,
		BodyType: f.bodyType,
		JSONBody: f.jsonBody,
		FileKey:  f.fileKey,
	}

	for _, arg := range f.params {
		k, v := parseRow(arg)
		in.Params = append(in.Params, request.ParamRow{Key: k, Value: v})
	}
	for _, arg := range f.headers {
		k, v := parseRow(arg)
		in.Headers = append(in.Headers, request.HeaderRow{Enabled: true, Key: k, Value: v})
	}
	for _, arg := range f.form {
		k, v := parseRow(arg)
		in.FormParams = append(in.FormParams, request.ParamRow{Key: k, Value: v})
	}

	if f.filePath != "" {
		content, err := os.ReadFile(f.filePath)
		if err != nil {
			return request.Input{}, fmt.Errorf("reading upload file: %w", err)
		}
		in.File = request.NewFileAttachment(f.fileKey, f.filePath, content)
	}

	return in, nil
}

// newTransport builds the HTTP client from config with flag overrides.
func (f *requestFlags) newTransport() (*http.Client, *config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	opts := []http.ClientOption{}

	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid timeout %q: %w", f.timeout, err)
		}
		opts = append(opts, http.WithTimeout(d))
	} else if cfg.Timeout > 0 {
		opts = append(opts, http.WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond))
	}

	follow := cfg.GetFollowRedirects()
	if f.noFollow {
		follow = false
	}
	opts = append(opts, http.WithFollowRedirects(follow))

	if cfg.MaxRedirects > 0 {
		opts = append(opts, http.WithMaxRedirects(cfg.MaxRedirects))
	}

	validate := cfg.GetValidateSSL()
	if f.insecure {
		validate = false
	}
	opts = append(opts, http.WithValidateSSL(validate))

	proxy := cfg.Proxy
	if f.proxy != "" {
		proxy = f.proxy
	}
	if proxy != "" {
		opts = append(opts, http.WithProxy(proxy))
	}

	if len(cfg.Headers) > 0 {
		opts = append(opts, http.WithDefaultHeaders(cfg.Headers))
	}

	return http.NewClient(opts...), cfg, nil
}
