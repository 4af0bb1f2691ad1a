package ingest

import (
	"testing"

	"github.com/matthieukhl/expotrack/internal/normalize"
)

func TestCanonicalHeader(t *testing.T) {
	tests := map[string]string{
		"Booth #":              normalize.FieldBoothNumber,
		"BOOTH NUMBER":         normalize.FieldBoothNumber,
		"boothNumber":          normalize.FieldBoothNumber,
		"Exhibitor Name":       normalize.FieldExhibitorName,
		"Item Name":            normalize.FieldItem,
		"Item":                 normalize.FieldItem,
		"Special Instructions": normalize.FieldSpecialInstructions,
		"Qty":                  normalize.FieldQuantity,
		"Quantity":             normalize.FieldQuantity,
		"Status":               normalize.FieldStatus,
		"Date":                 normalize.FieldDate,
		"Order Date":           normalize.FieldOrderDate,
		"Hour":                 normalize.FieldHour,
		"Colour":               normalize.FieldColor,
		"Comments":             normalize.FieldComments,
		"Section":              normalize.FieldSection,
		"ID":                   normalize.FieldID,
		"Order #":              normalize.FieldID,
	}

	for header, want := range tests {
		got, ok := CanonicalHeader(header)
		if !ok || got != want {
			t.Errorf("CanonicalHeader(%q) = %q (ok=%v), want %q", header, got, ok, want)
		}
	}

	for _, header := range []string{"", "Price", "Warehouse"} {
		if _, ok := CanonicalHeader(header); ok {
			t.Errorf("expected %q to be unknown", header)
		}
	}
}

func TestDetectHeaderRow(t *testing.T) {
	values := [][]any{
		{"Expo Convention Contractors"},
		{""},
		{"Booth #", "Exhibitor Name", "Item Name"},
		{"100", "APACKAGING GROUP, LLC", "White Chair"},
	}
	if got := DetectHeaderRow(values); got != 2 {
		t.Errorf("header row = %d, want 2", got)
	}

	if got := DetectHeaderRow([][]any{{"a", "b"}, {"1", "2"}}); got != 0 {
		t.Errorf("fallback header row = %d, want 0", got)
	}
}

func TestRecords(t *testing.T) {
	values := [][]any{
		{"Checklist export"},
		{"Booth #", "Section", "Exhibitor Name", "Quantity", "Item Name", "Status", "Price"},
		{"100", "Section 1", "APACKAGING GROUP, LLC", "4", "White Chair", "TRUE", "12"},
		{"", "", "", ""},
		{"101", "Section 1", "Pure Beauty Labs, LLC"},
	}

	rows := Records(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first[normalize.FieldBoothNumber] != "100" || first[normalize.FieldItem] != "White Chair" {
		t.Errorf("unexpected first row %v", first)
	}
	if first["Price"] != "12" {
		t.Errorf("unknown headers should be kept verbatim, got %v", first)
	}

	short := rows[1]
	if _, ok := short[normalize.FieldItem]; ok {
		t.Errorf("short row should not carry missing cells, got %v", short)
	}
}

func TestRecords_TooShort(t *testing.T) {
	if rows := Records([][]any{{"Booth #"}}); rows != nil {
		t.Errorf("expected nil for header-only table, got %v", rows)
	}
	if rows := Records(nil); rows != nil {
		t.Errorf("expected nil for empty table, got %v", rows)
	}
}

func TestCanonicalizeKeys(t *testing.T) {
	row := CanonicalizeKeys(map[string]any{
		"BoothNumber":   "A-245",
		"EXHIBITOR":     "TechFlow Innovations",
		"extra_field":   true,
		"itemName":      "Display",
		"Delivery Note": "rear door",
	})

	if row[normalize.FieldBoothNumber] != "A-245" {
		t.Errorf("booth = %v", row[normalize.FieldBoothNumber])
	}
	if row[normalize.FieldExhibitorName] != "TechFlow Innovations" {
		t.Errorf("exhibitor = %v", row[normalize.FieldExhibitorName])
	}
	if row[normalize.FieldItem] != "Display" {
		t.Errorf("item = %v", row[normalize.FieldItem])
	}
	if row["extra_field"] != true {
		t.Errorf("unknown keys should survive, got %v", row)
	}
}
