package payload

import (
	"regexp"
	"strings"

	"github.com/matthieukhl/expotrack/internal/ingest"
	"github.com/matthieukhl/expotrack/internal/normalize"
)

var (
	separatorRegex = regexp.MustCompile(`^\|?\s*:?-{2,}:?\s*(\|\s*:?-{2,}:?\s*)*\|?$`)
	bulletRegex    = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s*`)
	keyValueRegex  = regexp.MustCompile(`^([^:]{1,40}):\s*(.*)$`)
)

// DelimitedText is a pipe-delimited (markdown-style) table
type DelimitedText struct {
	Text string
}

func (DelimitedText) Kind() Kind { return KindDelimitedText }

func (p DelimitedText) Records() ([]normalize.Row, error) {
	var grid [][]any
	for _, line := range strings.Split(p.Text, "\n") {
		line = strings.TrimSpace(line)
		if strings.Count(line, "|") < 1 || separatorRegex.MatchString(line) {
			continue
		}

		line = strings.TrimPrefix(line, "|")
		line = strings.TrimSuffix(line, "|")

		parts := strings.Split(line, "|")
		cells := make([]any, len(parts))
		for i, part := range parts {
			cells[i] = strings.TrimSpace(stripMarkdown(part))
		}
		grid = append(grid, cells)
	}

	rows := ingest.Records(grid)
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

// KeyValueText is free text where each record is a block of "Key: value"
// lines and a new record starts at every booth line.
type KeyValueText struct {
	Text string
}

func (KeyValueText) Kind() Kind { return KindKeyValueText }

func (p KeyValueText) Records() ([]normalize.Row, error) {
	var rows []normalize.Row
	current := normalize.Row{}

	flush := func() {
		if len(current) > 0 {
			rows = append(rows, current)
		}
		current = normalize.Row{}
	}

	for _, line := range strings.Split(p.Text, "\n") {
		line = strings.TrimSpace(stripMarkdown(line))
		line = bulletRegex.ReplaceAllString(line, "")
		if line == "" {
			continue
		}

		m := keyValueRegex.FindStringSubmatch(line)
		if len(m) < 3 {
			continue
		}

		field, ok := ingest.CanonicalHeader(m[1])
		value := strings.TrimSpace(m[2])
		if !ok || value == "" {
			continue
		}

		if field == normalize.FieldBoothNumber {
			flush()
		} else if _, seen := current[field]; seen {
			// a repeated field without a booth line still means a new record
			flush()
		}
		current[field] = value
	}
	flush()

	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

func isDelimited(text string) bool {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.Count(line, "|") >= 2 {
			lines++
		}
	}
	return lines >= 2
}

func stripMarkdown(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
