package payload

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/matthieukhl/expotrack/internal/ingest"
	"github.com/matthieukhl/expotrack/internal/normalize"
)

// Kind identifies which upstream shape a Payload holds
type Kind string

const (
	KindRows          Kind = "rows"
	KindJSONArray     Kind = "json-array"
	KindDelimitedText Kind = "delimited-text"
	KindKeyValueText  Kind = "key-value-text"
)

// ErrEmpty is returned when a payload holds no usable records
var ErrEmpty = errors.New("payload contains no records")

// Payload is one raw upstream response. Every variant turns itself into
// row maps keyed by canonical field names.
type Payload interface {
	Kind() Kind
	Records() ([]normalize.Row, error)
}

// Rows is a list-of-lists table with a header row somewhere near the top
type Rows struct {
	Values [][]any
}

func (Rows) Kind() Kind { return KindRows }

func (p Rows) Records() ([]normalize.Row, error) {
	rows := ingest.Records(p.Values)
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

// JSONArray is a list of JSON objects with arbitrary key casing
type JSONArray struct {
	Items []map[string]any
}

func (JSONArray) Kind() Kind { return KindJSONArray }

func (p JSONArray) Records() ([]normalize.Row, error) {
	if len(p.Items) == 0 {
		return nil, ErrEmpty
	}
	rows := make([]normalize.Row, 0, len(p.Items))
	for _, item := range p.Items {
		rows = append(rows, ingest.CanonicalizeKeys(item))
	}
	return rows, nil
}

var (
	fencedRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")
	// wrapper keys chat replies use around the actual list
	wrapperKeys = []string{"orders", "items", "checklist", "checklist_items", "data", "rows", "records", "results"}
)

// FromValues wraps a spreadsheet values grid
func FromValues(values [][]any) Payload {
	return Rows{Values: values}
}

// Sniff inspects a raw text response and picks the matching variant:
// JSON (fenced or bare), then a pipe-delimited table, then "Key: value" lines.
func Sniff(raw string) Payload {
	text := strings.TrimSpace(raw)

	for _, candidate := range jsonCandidates(text) {
		p, ok := decodeJSON(candidate)
		if !ok {
			continue
		}
		// a bracketed cell like "Chair [2]" parses as JSON but holds no records
		if rows, err := p.Records(); err == nil && len(rows) > 0 {
			return p
		}
	}

	if isDelimited(text) {
		return DelimitedText{Text: text}
	}

	return KeyValueText{Text: text}
}

// jsonCandidates returns the substrings worth trying as JSON, most specific first
func jsonCandidates(text string) []string {
	var out []string
	if m := fencedRegex.FindStringSubmatch(text); len(m) > 1 {
		out = append(out, m[1])
	}
	out = append(out, text)

	if start, end := strings.Index(text, "["), strings.LastIndex(text, "]"); start >= 0 && end > start {
		out = append(out, text[start:end+1])
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		out = append(out, text[start:end+1])
	}
	return out
}

func decodeJSON(s string) (Payload, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '[' && s[0] != '{') {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return fromJSONValue(v)
}

func fromJSONValue(v any) (Payload, bool) {
	switch val := v.(type) {
	case []any:
		if len(val) == 0 {
			return JSONArray{}, true
		}
		if _, isList := val[0].([]any); isList {
			grid := make([][]any, 0, len(val))
			for _, r := range val {
				if cells, ok := r.([]any); ok {
					grid = append(grid, cells)
				}
			}
			return Rows{Values: grid}, true
		}

		items := make([]map[string]any, 0, len(val))
		for _, r := range val {
			if obj, ok := r.(map[string]any); ok {
				items = append(items, obj)
			}
		}
		return JSONArray{Items: items}, true

	case map[string]any:
		for _, key := range wrapperKeys {
			for k, inner := range val {
				if strings.EqualFold(k, key) {
					if p, ok := fromJSONValue(inner); ok {
						return p, true
					}
				}
			}
		}
		return JSONArray{Items: []map[string]any{val}}, true
	}

	return nil, false
}
