package service

import (
	"fmt"

	"github.com/matthieukhl/expotrack/internal/booth"
	"github.com/matthieukhl/expotrack/internal/cache"
	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/models"
	"github.com/matthieukhl/expotrack/internal/source"
)

// Cache keys
const (
	KeyAllOrders    = "all_orders"
	KeyAllChecklist = "all_checklist_items"
)

func boothOrdersKey(b string) string    { return "booth_" + b }
func boothChecklistKey(b string) string { return "checklist_booth_" + b }

// Inventory answers every read endpoint from cache or the source chains
type Inventory struct {
	sources *source.Sources
	cache   *cache.Cache
	clock   cache.Clock
}

func NewInventory(sources *source.Sources, c *cache.Cache, clock cache.Clock) *Inventory {
	if clock == nil {
		clock = cache.SystemClock{}
	}
	return &Inventory{
		sources: sources,
		cache:   c,
		clock:   clock,
	}
}

// Cache exposes the backing cache
func (inv *Inventory) Cache() *cache.Cache {
	return inv.cache
}

// Sources exposes the backing chains
func (inv *Inventory) Sources() *source.Sources {
	return inv.sources
}

// AllOrders returns every order. It never fails: when the chain does, the
// result is an empty list.
func (inv *Inventory) AllOrders(forceRefresh bool) []models.Order {
	orders, err := inv.allOrders(forceRefresh)
	if err != nil {
		logger.Error("Failed to load orders", logger.Fields{"error": err.Error()})
		return []models.Order{}
	}
	return orders
}

func (inv *Inventory) allOrders(forceRefresh bool) ([]models.Order, error) {
	if v, ok := inv.cache.Get(KeyAllOrders, !forceRefresh); ok {
		if orders, ok := v.([]models.Order); ok {
			return orders, nil
		}
	}

	res, err := inv.sources.Orders.Fetch()
	if err != nil {
		return nil, err
	}

	inv.cache.Set(KeyAllOrders, res.Records)
	return res.Records, nil
}

// BoothOrders returns the orders of one booth with delivery counts
func (inv *Inventory) BoothOrders(boothNumber string, forceRefresh bool) (models.BoothOrders, error) {
	key := boothOrdersKey(boothNumber)
	if v, ok := inv.cache.Get(key, !forceRefresh); ok {
		if resp, ok := v.(models.BoothOrders); ok {
			return resp, nil
		}
	}

	all, err := inv.allOrders(forceRefresh)
	if err != nil {
		return EmptyBoothOrders(boothNumber, forceRefresh), fmt.Errorf("failed to load orders for booth %s: %w", boothNumber, err)
	}

	orders := booth.FilterOrders(all, boothNumber)
	summary := booth.SummarizeOrders(orders)

	resp := models.BoothOrders{
		Booth:           boothNumber,
		Orders:          orders,
		TotalOrders:     summary.Total,
		DeliveredOrders: summary.Delivered,
		LastUpdated:     inv.now(),
		ForceRefreshed:  forceRefresh,
	}

	inv.cache.Set(key, resp)
	return resp, nil
}

// AllChecklist returns every checklist item. Like AllOrders it never fails.
func (inv *Inventory) AllChecklist(forceRefresh bool) []models.ChecklistItem {
	items, err := inv.allChecklist(forceRefresh)
	if err != nil {
		logger.Error("Failed to load checklist", logger.Fields{"error": err.Error()})
		return []models.ChecklistItem{}
	}
	return items
}

func (inv *Inventory) allChecklist(forceRefresh bool) ([]models.ChecklistItem, error) {
	if v, ok := inv.cache.Get(KeyAllChecklist, !forceRefresh); ok {
		if items, ok := v.([]models.ChecklistItem); ok {
			return items, nil
		}
	}

	res, err := inv.sources.Checklist.Fetch()
	if err != nil {
		return nil, err
	}

	inv.cache.Set(KeyAllChecklist, res.Records)
	return res.Records, nil
}

// BoothChecklist returns one booth's items, incomplete first, with progress
func (inv *Inventory) BoothChecklist(boothNumber string, forceRefresh bool) (models.BoothChecklist, error) {
	key := boothChecklistKey(boothNumber)
	if v, ok := inv.cache.Get(key, !forceRefresh); ok {
		if resp, ok := v.(models.BoothChecklist); ok {
			return resp, nil
		}
	}

	all, err := inv.allChecklist(forceRefresh)
	if err != nil {
		return EmptyBoothChecklist(boothNumber, forceRefresh), fmt.Errorf("failed to load checklist for booth %s: %w", boothNumber, err)
	}

	items := booth.SortChecklist(booth.FilterChecklist(all, boothNumber))
	summary := booth.SummarizeChecklist(items, boothNumber)

	resp := models.BoothChecklist{
		Booth:                boothNumber,
		ExhibitorName:        summary.ExhibitorName,
		Section:              summary.Section,
		TotalItems:           summary.Total,
		CompletedItems:       summary.Completed,
		PendingItems:         summary.Pending,
		ProgressPercentage:   summary.Percentage,
		CompletionPercentage: summary.Percentage,
		Items:                items,
		LastUpdated:          inv.now(),
		ForceRefreshed:       forceRefresh,
	}

	inv.cache.Set(key, resp)
	return resp, nil
}

// ClearCache wipes every cached response
func (inv *Inventory) ClearCache() {
	inv.cache.Clear()
}

func (inv *Inventory) now() string {
	return inv.clock.Now().Format(models.TimestampLayout)
}

// EmptyBoothOrders is the zero-valued body served when a booth lookup fails
func EmptyBoothOrders(boothNumber string, forceRefresh bool) models.BoothOrders {
	return models.BoothOrders{
		Booth:          boothNumber,
		Orders:         []models.Order{},
		ForceRefreshed: forceRefresh,
	}
}

// EmptyBoothChecklist is the zero-valued body served when a booth lookup fails
func EmptyBoothChecklist(boothNumber string, forceRefresh bool) models.BoothChecklist {
	return models.BoothChecklist{
		Booth:          boothNumber,
		ExhibitorName:  "Booth " + boothNumber,
		Section:        "Unknown",
		Items:          []models.ChecklistItem{},
		ForceRefreshed: forceRefresh,
	}
}
