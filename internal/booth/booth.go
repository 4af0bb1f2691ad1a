package booth

import (
	"math"
	"sort"
	"strings"

	"github.com/matthieukhl/expotrack/internal/models"
)

// Match compares booth numbers case-insensitively, ignoring surrounding space
func Match(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FilterOrders keeps the orders of one booth, in input order
func FilterOrders(orders []models.Order, booth string) []models.Order {
	out := make([]models.Order, 0)
	for _, o := range orders {
		if Match(o.BoothNumber, booth) {
			out = append(out, o)
		}
	}
	return out
}

// FilterChecklist keeps the checklist items of one booth, in input order
func FilterChecklist(items []models.ChecklistItem, booth string) []models.ChecklistItem {
	out := make([]models.ChecklistItem, 0)
	for _, item := range items {
		if Match(item.BoothNumber, booth) {
			out = append(out, item)
		}
	}
	return out
}

// OrderSummary counts a booth's orders
type OrderSummary struct {
	Total     int
	Delivered int
}

func SummarizeOrders(orders []models.Order) OrderSummary {
	s := OrderSummary{Total: len(orders)}
	for _, o := range orders {
		if o.IsDelivered() {
			s.Delivered++
		}
	}
	return s
}

// ChecklistSummary counts a booth's checklist progress
type ChecklistSummary struct {
	ExhibitorName string
	Section       string
	Total         int
	Completed     int
	Pending       int
	Percentage    int
}

// SummarizeChecklist derives counts for a booth's items. Exhibitor name and
// section come from the first item.
func SummarizeChecklist(items []models.ChecklistItem, booth string) ChecklistSummary {
	s := ChecklistSummary{
		ExhibitorName: "Booth " + booth,
		Section:       "Unknown",
		Total:         len(items),
	}
	if len(items) > 0 {
		s.ExhibitorName = items[0].ExhibitorName
		s.Section = items[0].Section
	}

	for _, item := range items {
		if item.Status {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	s.Percentage = Percentage(s.Completed, s.Total)

	return s
}

// Percentage is completed/total as a whole percent, 0 for an empty total
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// SortChecklist orders items by priority, incomplete first, keeping the
// upstream order within a priority
func SortChecklist(items []models.ChecklistItem) []models.ChecklistItem {
	out := make([]models.ChecklistItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
