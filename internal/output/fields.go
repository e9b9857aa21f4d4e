package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/emptymon/internal/model"
)

type Field struct {
	Key    string
	Header string
}

// FieldSelection は出力列の並び。
type FieldSelection struct {
	Fields []Field
}

var fieldRegistry = map[string]string{
	"file":     "FILE",
	"line":     "LINE",
	"method":   "METHOD",
	"location": "LOCATION",
}

var fieldAliases = map[string]string{
	"path": "file",
	"loc":  "location",
	"name": "method",
}

// DefaultFieldKeys は --fields 未指定時の列。
var DefaultFieldKeys = []string{"file", "line", "method"}

// ResolveFields parses a comma-separated column list. An empty value selects
// DefaultFieldKeys.
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return selectionFor(DefaultFieldKeys), nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		if alias, ok := fieldAliases[key]; ok {
			key = alias
		}
		if _, ok := fieldRegistry[key]; !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		keys = append(keys, key)
	}
	return selectionFor(keys), nil
}

func selectionFor(keys []string) FieldSelection {
	sel := FieldSelection{Fields: make([]Field, 0, len(keys))}
	for _, key := range keys {
		sel.Fields = append(sel.Fields, Field{Key: key, Header: fieldRegistry[key]})
	}
	return sel
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(f model.Finding, fields []Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = formatFieldValue(f, field.Key)
	}
	return out
}

func formatFieldValue(f model.Finding, key string) string {
	switch key {
	case "file":
		return f.File
	case "line":
		return strconv.Itoa(f.Line)
	case "method":
		return string(f.Method)
	case "location":
		return f.Location()
	default:
		return ""
	}
}
