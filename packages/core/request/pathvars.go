package request

import (
	"regexp"
	"strings"
)

// Path placeholders come in two syntaxes: {id} and :id.
var placeholderPattern = regexp.MustCompile(`\{(\w+)\}|:(\w+)`)

// ResolvePathVariables substitutes placeholder values from params into the
// URL template and returns the resolved URL together with the rows that were
// not consumed by a placeholder.
//
// Rows with an empty key or value (after trimming) are dropped. When the
// same placeholder key appears in several rows, the last one wins. Values
// are substituted raw; query-string encoding happens at transport time.
// Placeholders without a matching row are left in the URL as written.
func ResolvePathVariables(url string, params []ParamRow) (string, []ParamRow) {
	names := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(url, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		names[name] = true
	}

	pathValues := make(map[string]string)
	var remaining []ParamRow
	for _, row := range params {
		if !row.Usable() {
			continue
		}
		t := row.Trimmed()
		if names[t.Key] {
			pathValues[t.Key] = t.Value
		} else {
			remaining = append(remaining, t)
		}
	}

	for name, value := range pathValues {
		url = strings.ReplaceAll(url, "{"+name+"}", value)
		url = strings.ReplaceAll(url, ":"+name, value)
	}

	return url, remaining
}
