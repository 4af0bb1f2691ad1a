package chat

import (
	"fmt"
	"strings"
)

var orderFields = []string{
	"Booth #", "Exhibitor Name", "Item", "Status", "Date", "Quantity", "Color", "Comments", "Section",
}

var checklistFields = []string{
	"Booth #", "Section", "Exhibitor Name", "Quantity", "Item Name", "Special Instructions", "Status", "Date", "Hour",
}

// PromptBuilder writes the data queries sent to the chat service
type PromptBuilder struct {
	ordersSheet    string
	checklistSheet string
	maxRows        int
}

func NewPromptBuilder(ordersSheet, checklistSheet string, maxRows int) *PromptBuilder {
	if ordersSheet == "" {
		ordersSheet = "Orders"
	}
	if checklistSheet == "" {
		checklistSheet = "Booth Checklist"
	}
	if maxRows <= 0 {
		maxRows = 50
	}
	return &PromptBuilder{
		ordersSheet:    ordersSheet,
		checklistSheet: checklistSheet,
		maxRows:        maxRows,
	}
}

// OrdersPrompt asks for orders as a JSON array
func (pb *PromptBuilder) OrdersPrompt(booth string) string {
	var prompt strings.Builder

	prompt.WriteString(pb.scope(pb.ordersSheet, "orders", booth))
	prompt.WriteString("\n\n")
	prompt.WriteString("Return the result as a JSON array of objects using exactly these keys:\n")
	prompt.WriteString(strings.Join(quote(orderFields), ", "))
	prompt.WriteString("\n\n")
	prompt.WriteString("Use an empty string for any missing value. Return only the JSON, without commentary.")

	return prompt.String()
}

// ChecklistPrompt asks for checklist rows as a pipe-delimited table
func (pb *PromptBuilder) ChecklistPrompt(booth string) string {
	var prompt strings.Builder

	prompt.WriteString(pb.scope(pb.checklistSheet, "checklist items", booth))
	prompt.WriteString("\n\n")
	prompt.WriteString("Format the result as a pipe-delimited table with this header row:\n")
	prompt.WriteString("| " + strings.Join(checklistFields, " | ") + " |")
	prompt.WriteString("\n\n")
	prompt.WriteString("Write TRUE in the Status column for completed items and FALSE otherwise. ")
	prompt.WriteString("Leave cells empty when a value is missing.")

	return prompt.String()
}

func (pb *PromptBuilder) scope(sheet, what, booth string) string {
	if booth != "" {
		return fmt.Sprintf("Show me all %s for booth %s from the %s sheet.", what, booth, sheet)
	}
	return fmt.Sprintf("Show me the first %d %s from the %s sheet.", pb.maxRows, what, sheet)
}

func quote(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = `"` + f + `"`
	}
	return out
}
