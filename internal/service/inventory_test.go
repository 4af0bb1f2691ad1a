package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matthieukhl/expotrack/internal/cache"
	"github.com/matthieukhl/expotrack/internal/models"
	"github.com/matthieukhl/expotrack/internal/source"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingStrategy[T any] struct {
	name    string
	records []T
	err     error
	calls   int
}

func (s *countingStrategy[T]) Name() string           { return s.name }
func (s *countingStrategy[T]) Timeout() time.Duration { return time.Second }

func (s *countingStrategy[T]) Fetch(ctx context.Context) ([]T, error) {
	s.calls++
	return s.records, s.err
}

type fixture struct {
	inv       *Inventory
	clock     *fakeClock
	orders    *countingStrategy[models.Order]
	checklist *countingStrategy[models.ChecklistItem]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mockOrders, err := source.MockOrders()
	if err != nil {
		t.Fatal(err)
	}
	mockChecklist, err := source.MockChecklist()
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		clock:     &fakeClock{now: time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)},
		orders:    &countingStrategy[models.Order]{name: source.NameSheets, records: mockOrders},
		checklist: &countingStrategy[models.ChecklistItem]{name: source.NameSheets, records: mockChecklist},
	}

	sources := &source.Sources{
		Orders:    source.NewChain[models.Order](source.KindOrders, nil, f.orders),
		Checklist: source.NewChain[models.ChecklistItem](source.KindChecklist, nil, f.checklist),
	}
	c := cache.New(cache.DefaultTTL, cache.WithClock(f.clock))
	f.inv = NewInventory(sources, c, f.clock)
	return f
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestBoothOrdersServedFromCache(t *testing.T) {
	f := newFixture(t)

	first, err := f.inv.BoothOrders("A-245", false)
	if err != nil {
		t.Fatalf("BoothOrders: %v", err)
	}
	if first.TotalOrders != 2 || first.DeliveredOrders != 0 {
		t.Errorf("counts = %d/%d", first.TotalOrders, first.DeliveredOrders)
	}

	f.clock.Advance(119 * time.Second)
	second, _ := f.inv.BoothOrders("A-245", false)

	if mustJSON(t, first) != mustJSON(t, second) {
		t.Error("cached response differs from the first one")
	}
	if f.orders.calls != 1 {
		t.Errorf("upstream called %d times, want 1", f.orders.calls)
	}
}

func TestCacheExpiresAtTTL(t *testing.T) {
	f := newFixture(t)

	f.inv.AllOrders(false)
	f.clock.Advance(cache.DefaultTTL)
	f.inv.AllOrders(false)

	if f.orders.calls != 2 {
		t.Errorf("upstream called %d times, want 2", f.orders.calls)
	}
}

func TestForceRefreshBypassesNestedCache(t *testing.T) {
	f := newFixture(t)

	f.inv.BoothChecklist("100", false)
	f.clock.Advance(time.Second)

	resp, err := f.inv.BoothChecklist("100", true)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.ForceRefreshed {
		t.Error("force_refreshed not set")
	}
	if f.checklist.calls != 2 {
		t.Errorf("upstream called %d times, want 2", f.checklist.calls)
	}
	if resp.LastUpdated != "2025-06-14T09:00:01.000000" {
		t.Errorf("LastUpdated = %q", resp.LastUpdated)
	}
}

func TestClearCache(t *testing.T) {
	f := newFixture(t)

	f.inv.AllChecklist(false)
	f.inv.BoothChecklist("101", false)
	if f.inv.Cache().Len() != 2 {
		t.Fatalf("cache size = %d, want 2", f.inv.Cache().Len())
	}

	f.inv.ClearCache()
	if f.inv.Cache().Len() != 0 {
		t.Errorf("cache size after clear = %d", f.inv.Cache().Len())
	}

	f.inv.AllChecklist(false)
	if f.checklist.calls != 2 {
		t.Errorf("upstream called %d times, want 2", f.checklist.calls)
	}
}

func TestBoothChecklistIncompleteFirst(t *testing.T) {
	f := newFixture(t)

	resp, err := f.inv.BoothChecklist("100", false)
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalItems != 10 || resp.CompletedItems != 6 || resp.PendingItems != 4 {
		t.Errorf("counts = %d/%d/%d", resp.TotalItems, resp.CompletedItems, resp.PendingItems)
	}
	if resp.ProgressPercentage != 60 || resp.CompletionPercentage != 60 {
		t.Errorf("percentages = %d/%d", resp.ProgressPercentage, resp.CompletionPercentage)
	}
	if resp.ExhibitorName != "APACKAGING GROUP, LLC" || resp.Section != "Section 1" {
		t.Errorf("identity = %q / %q", resp.ExhibitorName, resp.Section)
	}

	seenComplete := false
	for _, item := range resp.Items {
		if item.Status {
			seenComplete = true
		} else if seenComplete {
			t.Fatalf("incomplete item %q listed after a complete one", item.Name)
		}
	}
}

func TestUnknownBooth(t *testing.T) {
	f := newFixture(t)

	resp, err := f.inv.BoothChecklist("999", false)
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalItems != 0 || resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.ExhibitorName != "Booth 999" || resp.Section != "Unknown" {
		t.Errorf("identity = %q / %q", resp.ExhibitorName, resp.Section)
	}
}

func TestChainFailure(t *testing.T) {
	f := newFixture(t)
	f.orders.records = nil
	f.orders.err = errors.New("upstream down")

	if got := f.inv.AllOrders(false); got == nil || len(got) != 0 {
		t.Errorf("AllOrders = %#v, want empty list", got)
	}

	resp, err := f.inv.BoothOrders("A-245", false)
	if err == nil {
		t.Fatal("expected error")
	}
	if resp.Booth != "A-245" || resp.TotalOrders != 0 || resp.Orders == nil {
		t.Errorf("unexpected fallback body %+v", resp)
	}
	if f.inv.Cache().Len() != 0 {
		t.Error("failures must not be cached")
	}
}

func TestStatusAndHealth(t *testing.T) {
	f := newFixture(t)
	f.inv.AllOrders(false)

	h := f.inv.Health()
	if h.Status != "healthy" || h.CacheSize != 1 || h.SheetsConnected {
		t.Errorf("health = %+v", h)
	}

	s := f.inv.Status()
	if s.Version != Version || s.Database != "Mock Data" || !s.CacheEnabled {
		t.Errorf("status = %+v", s)
	}
}
