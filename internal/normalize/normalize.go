package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/matthieukhl/expotrack/internal/models"
)

// Row is one upstream record with arbitrary string keys
type Row map[string]any

// Default quantities per call site
const (
	DefaultOrderQuantity     = 1
	DefaultChecklistQuantity = 1
	ChatChecklistQuantity    = 0
)

// Lookup returns the first value found under the field's aliases, trying
// exact keys first and then a case-insensitive match.
func Lookup(row Row, field string) (any, bool) {
	names := aliases[field]
	if len(names) == 0 {
		names = []string{field}
	}

	for _, name := range names {
		if v, ok := row[name]; ok {
			return v, true
		}
	}

	// sorted so rows with keys differing only in case or spacing resolve the same way every time
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range names {
		for _, k := range keys {
			if strings.EqualFold(strings.TrimSpace(k), name) {
				return row[k], true
			}
		}
	}

	return nil, false
}

// String returns the trimmed text of a field, or "" when absent
func String(row Row, field string) string {
	v, ok := Lookup(row, field)
	if !ok {
		return ""
	}
	return ToString(v)
}

// ToString renders an upstream value as trimmed text
func ToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// ParseCompleted interprets the heterogeneous encodings of a completion flag
func ParseCompleted(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		_, ok := truthy[strings.ToUpper(strings.TrimSpace(val))]
		return ok
	case float64:
		return val != 0
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return false
	}
}

// ParseQuantity coerces v to a non-negative integer, going through float
// first so "1.0" is accepted. Anything unusable yields def.
func ParseQuantity(v any, def int) int {
	var f float64
	switch val := v.(type) {
	case nil:
		return def
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case float64:
		f = val
	case float32:
		f = float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return def
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return def
	}
	return int(f)
}

// MapOrderStatus folds free-form upstream statuses onto the delivery pipeline.
// Statuses are matched word by word; a keyword preceded by a negation
// ("not delivered") does not count.
func MapOrderStatus(raw string) string {
	words := statusWords(raw)

	switch {
	case len(words) == 0:
		return models.OrderStatusInProcess
	case hasSequence(words, "out", "for", "deliver"):
		return models.OrderStatusOutForDelivery
	case mentions(words, "deliver", "complete", "done"):
		return models.OrderStatusDelivered
	case mentions(words, "route", "transit", "ship"):
		return models.OrderStatusInRoute
	default:
		return models.OrderStatusInProcess
	}
}

var negations = map[string]bool{"not": true, "no": true, "never": true}

func statusWords(raw string) []string {
	return strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// mentions reports whether a word starts with one of the prefixes and is
// not negated by the word before it
func mentions(words []string, prefixes ...string) bool {
	for i, w := range words {
		if i > 0 && negations[words[i-1]] {
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(w, p) {
				return true
			}
		}
	}
	return false
}

// hasSequence reports whether consecutive words start with the given prefixes
func hasSequence(words []string, prefixes ...string) bool {
	for i := 0; i+len(prefixes) <= len(words); i++ {
		if i > 0 && negations[words[i-1]] {
			continue
		}
		match := true
		for j, p := range prefixes {
			if !strings.HasPrefix(words[i+j], p) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// IDGenerator synthesizes identifiers for records that arrive without one.
// The counter lives for a single parse pass, so ids are only unique within it.
type IDGenerator struct {
	prefix string
	n      int
}

func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier for a record of the given booth
func (g *IDGenerator) Next(booth string) string {
	g.n++
	return fmt.Sprintf("%s-%s-%03d", g.prefix, booth, g.n)
}

func validBooth(booth string) bool {
	return booth != "" && booth != "0"
}

// Order builds a canonical order from a raw row. Rows without a usable
// booth number are rejected.
func Order(row Row, ids *IDGenerator, source string) (models.Order, bool) {
	booth := String(row, FieldBoothNumber)
	if !validBooth(booth) {
		return models.Order{}, false
	}

	id := String(row, FieldID)
	if id == "" {
		id = ids.Next(booth)
	}

	qty, _ := Lookup(row, FieldQuantity)
	status, _ := Lookup(row, FieldStatus)

	o := models.Order{
		ID:            id,
		BoothNumber:   booth,
		ExhibitorName: String(row, FieldExhibitorName),
		Item:          String(row, FieldItem),
		Description:   String(row, FieldDescription),
		Color:         String(row, FieldColor),
		Quantity:      ParseQuantity(qty, DefaultOrderQuantity),
		Status:        MapOrderStatus(ToString(status)),
		OrderDate:     String(row, FieldOrderDate),
		Comments:      String(row, FieldComments),
		Section:       String(row, FieldSection),
		DataSource:    source,
	}
	if o.Description == "" {
		o.Description = o.Item
	}

	return o, true
}

// ChecklistItem builds a canonical checklist item from a raw row. Rows
// without booth, exhibitor or item name are rejected.
func ChecklistItem(row Row, ids *IDGenerator, defaultQuantity int, source string) (models.ChecklistItem, bool) {
	booth := String(row, FieldBoothNumber)
	if !validBooth(booth) {
		return models.ChecklistItem{}, false
	}

	exhibitor := String(row, FieldExhibitorName)
	name := String(row, FieldItem)
	if exhibitor == "" || name == "" {
		return models.ChecklistItem{}, false
	}

	id := String(row, FieldID)
	if id == "" {
		id = ids.Next(booth)
	}

	qty, _ := Lookup(row, FieldQuantity)
	status, _ := Lookup(row, FieldStatus)
	completed := ParseCompleted(status)

	return models.ChecklistItem{
		ID:                  id,
		BoothNumber:         booth,
		Section:             String(row, FieldSection),
		ExhibitorName:       exhibitor,
		Quantity:            ParseQuantity(qty, defaultQuantity),
		Name:                name,
		SpecialInstructions: String(row, FieldSpecialInstructions),
		Status:              completed,
		Date:                String(row, FieldDate),
		Hour:                String(row, FieldHour),
		Priority:            models.PriorityFor(completed),
		DataSource:          source,
	}, true
}

// Orders normalizes a parse pass of rows, dropping unusable ones
func Orders(rows []Row, source string) []models.Order {
	ids := NewIDGenerator("ORD")
	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		if o, ok := Order(row, ids, source); ok {
			orders = append(orders, o)
		}
	}
	return orders
}

// Checklist normalizes a parse pass of rows, dropping unusable ones
func Checklist(rows []Row, defaultQuantity int, source string) []models.ChecklistItem {
	ids := NewIDGenerator("CHK")
	items := make([]models.ChecklistItem, 0, len(rows))
	for _, row := range rows {
		if item, ok := ChecklistItem(row, ids, defaultQuantity, source); ok {
			items = append(items, item)
		}
	}
	return items
}
