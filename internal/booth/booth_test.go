package booth

import (
	"testing"

	"github.com/matthieukhl/expotrack/internal/models"
)

func TestFilterOrders(t *testing.T) {
	orders := []models.Order{
		{ID: "1", BoothNumber: "A-245"},
		{ID: "2", BoothNumber: "b-156"},
		{ID: "3", BoothNumber: " a-245 "},
	}

	got := FilterOrders(orders, "a-245")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("FilterOrders = %+v", got)
	}

	none := FilterOrders(orders, "Z-999")
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestSummarizeOrders(t *testing.T) {
	orders := []models.Order{
		{Status: models.OrderStatusDelivered},
		{Status: models.OrderStatusInRoute},
		{Status: models.OrderStatusDelivered},
	}

	s := SummarizeOrders(orders)
	if s.Total != 3 || s.Delivered != 2 {
		t.Errorf("SummarizeOrders = %+v", s)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{6, 10, 60},
		{5, 7, 71},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{4, 4, 100},
	}

	for _, tt := range tests {
		if got := Percentage(tt.completed, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSummarizeChecklist(t *testing.T) {
	items := []models.ChecklistItem{
		{BoothNumber: "100", ExhibitorName: "APACKAGING GROUP, LLC", Section: "Section 1", Status: true},
		{BoothNumber: "100", ExhibitorName: "other", Section: "other", Status: false},
		{BoothNumber: "100", Status: true},
	}

	s := SummarizeChecklist(items, "100")
	if s.ExhibitorName != "APACKAGING GROUP, LLC" || s.Section != "Section 1" {
		t.Errorf("identity taken from wrong item: %+v", s)
	}
	if s.Total != 3 || s.Completed != 2 || s.Pending != 1 || s.Percentage != 67 {
		t.Errorf("counts = %+v", s)
	}

	empty := SummarizeChecklist(nil, "999")
	if empty.ExhibitorName != "Booth 999" || empty.Section != "Unknown" || empty.Total != 0 || empty.Percentage != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestSortChecklist(t *testing.T) {
	items := []models.ChecklistItem{
		{ID: "a", Priority: models.PriorityComplete},
		{ID: "b", Priority: models.PriorityIncomplete},
		{ID: "c", Priority: models.PriorityComplete},
		{ID: "d", Priority: models.PriorityIncomplete},
	}

	got := SortChecklist(items)
	want := []string{"b", "d", "a", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
	if items[0].ID != "a" {
		t.Error("input slice was reordered")
	}
}

func ids(items []models.ChecklistItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
