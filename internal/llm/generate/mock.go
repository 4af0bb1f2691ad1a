package generate

import (
	"context"
	"strings"
	"time"

	"github.com/matthieukhl/expotrack/internal/types"
)

// MockGenerator answers data queries with canned replies in the formats
// the chat service actually produces
type MockGenerator struct {
	model string
	delay time.Duration
}

func NewMockGenerator(model string) *MockGenerator {
	return &MockGenerator{model: model}
}

// WithDelay simulates provider latency
func (g *MockGenerator) WithDelay(d time.Duration) *MockGenerator {
	g.delay = d
	return g
}

func (g *MockGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	prompt = strings.ToLower(prompt)

	if strings.Contains(prompt, "checklist") {
		return g.generateChecklistTable(), nil
	}

	if strings.Contains(prompt, "json") {
		return g.generateOrdersJSON(), nil
	}

	if strings.Contains(prompt, "order") {
		return g.generateOrdersText(), nil
	}

	return "I could not find any matching data in the connected spreadsheets.", nil
}

func (g *MockGenerator) Model() string {
	return g.model + "-mock"
}

func (g *MockGenerator) generateOrdersJSON() string {
	return "Here are the orders from the Orders sheet:\n\n```json\n" + `[
  {"Booth #": "A-245", "Exhibitor Name": "TechFlow Innovations", "Item": "Premium Booth Setup Package", "Status": "Out for delivery", "Date": "June 14, 2025", "Quantity": "1", "Color": "White", "Comments": "Rush delivery requested", "Section": "Section A"},
  {"Booth #": "B-156", "Exhibitor Name": "GreenWave Energy", "Item": "Marketing Materials Bundle", "Status": "Delivered", "Date": "June 12, 2025", "Quantity": "5", "Color": "Green", "Comments": "Eco-friendly materials requested", "Section": "Section B"}
]` + "\n```"
}

func (g *MockGenerator) generateOrdersText() string {
	return `Orders found:

- Booth #: A-245
- Exhibitor Name: TechFlow Innovations
- Item: Premium Booth Setup Package
- Status: Out for delivery
- Quantity: 1

- Booth #: B-156
- Exhibitor Name: GreenWave Energy
- Item: Marketing Materials Bundle
- Status: Delivered
- Quantity: 5`
}

func (g *MockGenerator) generateChecklistTable() string {
	return `| Booth # | Section | Exhibitor Name | Quantity | Item Name | Special Instructions | Status | Date | Hour |
|---|---|---|---|---|---|---|---|---|
| 100 | Section 1 | APACKAGING GROUP, LLC | 4 | White Chair | | TRUE | | |
| 100 | Section 1 | APACKAGING GROUP, LLC | 1 | White Shelving Unit | | FALSE | | |
| 101 | Section 1 | Pure Beauty Labs, LLC | 1 | Mini Refrigerator - Color May Vary | | TRUE | | |`
}

// Compile-time interface check
var _ types.Generator = (*MockGenerator)(nil)
