package ingest

import (
	"strings"

	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/normalize"
)

// headerRule maps a lower-cased header substring to a canonical field
type headerRule struct {
	substr string
	field  string
}

// headerRules is checked in order; the first substring found wins. More
// specific words come before generic ones ("exhibitor name" before "name").
var headerRules = []headerRule{
	{"booth", normalize.FieldBoothNumber},
	{"exhibitor", normalize.FieldExhibitorName},
	{"company", normalize.FieldExhibitorName},
	{"special", normalize.FieldSpecialInstructions},
	{"instruction", normalize.FieldSpecialInstructions},
	{"note", normalize.FieldSpecialInstructions},
	{"description", normalize.FieldDescription},
	{"comment", normalize.FieldComments},
	{"colo", normalize.FieldColor},
	{"qty", normalize.FieldQuantity},
	{"quant", normalize.FieldQuantity},
	{"status", normalize.FieldStatus},
	{"hour", normalize.FieldHour},
	{"order date", normalize.FieldOrderDate},
	{"order_date", normalize.FieldOrderDate},
	{"date", normalize.FieldDate},
	{"section", normalize.FieldSection},
	{"order id", normalize.FieldID},
	{"order_id", normalize.FieldID},
	{"order #", normalize.FieldID},
	{"order number", normalize.FieldID},
	{"item", normalize.FieldItem},
	{"name", normalize.FieldItem},
}

// CanonicalHeader maps an upstream header to a canonical field name using
// case-insensitive substring matching. ok is false for unknown headers.
func CanonicalHeader(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "", false
	}
	if h == "id" {
		return normalize.FieldID, true
	}

	for _, rule := range headerRules {
		if strings.Contains(h, rule.substr) {
			return rule.field, true
		}
	}
	return "", false
}

// DetectHeaderRow returns the index of the first row with a cell mentioning
// "booth", falling back to the first row.
func DetectHeaderRow(values [][]any) int {
	for i, row := range values {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(normalize.ToString(cell)), "booth") {
				return i
			}
		}
	}
	return 0
}

// Records turns a list-of-lists table into row maps keyed by canonical
// field names. Unknown headers are kept verbatim. Tables without at least
// a header and one data row yield nil.
func Records(values [][]any) []normalize.Row {
	if len(values) < 2 {
		return nil
	}

	headerIdx := DetectHeaderRow(values)
	headers := make([]string, len(values[headerIdx]))
	for i, cell := range values[headerIdx] {
		raw := normalize.ToString(cell)
		if field, ok := CanonicalHeader(raw); ok {
			headers[i] = field
		} else {
			headers[i] = raw
		}
	}

	logger.Debug("using table headers", logger.Fields{"headers": headers, "header_row": headerIdx})

	var rows []normalize.Row
	for _, cells := range values[headerIdx+1:] {
		if isBlank(cells) {
			continue
		}

		row := make(normalize.Row, len(headers))
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			// first non-empty column wins when two headers share a field
			if existing, ok := row[headers[i]]; ok && normalize.ToString(existing) != "" {
				continue
			}
			row[headers[i]] = cell
		}
		rows = append(rows, row)
	}

	return rows
}

// CanonicalizeKeys rewrites the keys of a JSON object onto canonical field
// names, leaving unknown keys as they are.
func CanonicalizeKeys(obj map[string]any) normalize.Row {
	row := make(normalize.Row, len(obj))
	for k, v := range obj {
		key := k
		if field, ok := CanonicalHeader(k); ok {
			key = field
		}
		if existing, ok := row[key]; ok && normalize.ToString(existing) != "" {
			continue
		}
		row[key] = v
	}
	return row
}

func isBlank(row []any) bool {
	for _, cell := range row {
		if normalize.ToString(cell) != "" {
			return false
		}
	}
	return true
}
