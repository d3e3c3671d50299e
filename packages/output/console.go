package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/apiprobe/apiprobe/packages/diagnostics"
)

// toolsByCategory lists well-known external tools per test category. Pure
// presentation data, shown alongside the manual-category verdict.
var toolsByCategory = map[diagnostics.Category][]string{
	diagnostics.CategoryManual:    {"Postman", "Insomnia", "Swagger"},
	diagnostics.CategoryAutomated: {"pytest", "JUnit", "RestAssured"},
	diagnostics.CategoryLoad:      {"JMeter", "Gatling"},
	diagnostics.CategorySecurity:  {"OWASP ZAP", "Burp Suite"},
}

// ToolsFor returns the tool names associated with a category.
func ToolsFor(category diagnostics.Category) []string {
	return toolsByCategory[category]
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatReport prints a diagnostic report, one verdict line per check.
func (f *ConsoleFormatter) FormatReport(report *diagnostics.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if f.verbose {
		fmt.Fprintf(f.writer, "%s\n", bold("Run "+report.RunID))
	}

	for _, v := range report.Verdicts {
		marker := green("✓")
		if !v.Passed {
			marker = red("✗")
		}
		fmt.Fprintf(f.writer, "%s %s\n", marker, v.Line)
	}
}

// FormatTools prints the external-tool suggestions for a category.
func (f *ConsoleFormatter) FormatTools(category diagnostics.Category) {
	tools := ToolsFor(category)
	if len(tools) == 0 {
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", cyan("tools:"), strings.Join(tools, ", "))
}

// FormatError prints an error payload.
func (f *ConsoleFormatter) FormatError(e *ErrorResult) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s: %s\n", red("error:"), e.Error, e.Details)
}
