package request

import (
	"path/filepath"
	"strings"
)

// ParamRow is a single key/value row from a parameter or form-data table.
type ParamRow struct {
	Key   string
	Value string
}

// HeaderRow is a single header table row. Rows with Enabled=false are
// ignored during materialization.
type HeaderRow struct {
	Enabled bool
	Key     string
	Value   string
}

// FileAttachment is an in-memory file destined for a multipart form part.
type FileAttachment struct {
	FieldName string
	Filename  string
	Content   []byte
}

// Usable reports whether the row carries both a key and a value after
// trimming. Rows that are not usable are silently dropped.
func (r ParamRow) Usable() bool {
	return strings.TrimSpace(r.Key) != "" && strings.TrimSpace(r.Value) != ""
}

// Trimmed returns the row with surrounding whitespace removed from both fields.
func (r ParamRow) Trimmed() ParamRow {
	return ParamRow{Key: strings.TrimSpace(r.Key), Value: strings.TrimSpace(r.Value)}
}

// Usable reports whether the header row is enabled and carries both a key
// and a value after trimming.
func (r HeaderRow) Usable() bool {
	return r.Enabled && strings.TrimSpace(r.Key) != "" && strings.TrimSpace(r.Value) != ""
}

// NewFileAttachment builds an attachment from a field key, an original file
// path (only its base name is kept) and the file content.
func NewFileAttachment(fieldName, path string, content []byte) *FileAttachment {
	return &FileAttachment{
		FieldName: strings.TrimSpace(fieldName),
		Filename:  filepath.Base(path),
		Content:   content,
	}
}

// paramMap folds usable rows into a map. Later duplicate keys overwrite
// earlier ones.
func paramMap(rows []ParamRow) map[string]string {
	m := make(map[string]string)
	for _, row := range rows {
		if !row.Usable() {
			continue
		}
		t := row.Trimmed()
		m[t.Key] = t.Value
	}
	return m
}

func headerMap(rows []HeaderRow) map[string]string {
	m := make(map[string]string)
	for _, row := range rows {
		if !row.Usable() {
			continue
		}
		m[strings.TrimSpace(row.Key)] = strings.TrimSpace(row.Value)
	}
	return m
}
