package source

import (
	"github.com/matthieukhl/expotrack/internal/chat"
	"github.com/matthieukhl/expotrack/internal/config"
	"github.com/matthieukhl/expotrack/internal/database"
	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/metrics"
	"github.com/matthieukhl/expotrack/internal/models"
	"github.com/matthieukhl/expotrack/internal/normalize"
	"github.com/matthieukhl/expotrack/internal/sheets"
)

// Record kinds, also used as snapshot keys
const (
	KindOrders    = "orders"
	KindChecklist = "checklist"
)

// Upstreams holds whichever upstream clients are configured; nil means absent
type Upstreams struct {
	Sheets    *sheets.Client
	Chat      *chat.Engine
	Snapshots *database.DB
}

// Sources is the pair of chains the service reads from
type Sources struct {
	Orders    *Chain[models.Order]
	Checklist *Chain[models.ChecklistItem]
	Upstreams Upstreams
}

// New builds both chains. Absent upstreams are left out of the chain.
func New(cfg *config.Config, up Upstreams, m *metrics.Metrics) *Sources {
	return &Sources{
		Orders:    NewOrderChain(cfg, up, m),
		Checklist: NewChecklistChain(cfg, up, m),
		Upstreams: up,
	}
}

func NewOrderChain(cfg *config.Config, up Upstreams, m *metrics.Metrics) *Chain[models.Order] {
	var strategies []Strategy[models.Order]

	if up.Sheets != nil {
		strategies = append(strategies, NewSheetsStrategy[models.Order](up.Sheets, cfg.Sheets.OrdersSheet, cfg.Sheets.Timeout,
			func(rows []normalize.Row) []models.Order { return normalize.Orders(rows, LabelSheets) }))
	}
	if up.Chat != nil {
		strategies = append(strategies, NewChatOrders[models.Order](up.Chat, cfg.Chat.Timeout,
			func(rows []normalize.Row) []models.Order { return normalize.Orders(rows, LabelChat) }))
	}

	var snapshot *SnapshotStrategy[models.Order]
	if up.Snapshots != nil {
		snapshot = NewSnapshotStrategy[models.Order](up.Snapshots, KindOrders)
		strategies = append(strategies, snapshot)
	}
	strategies = append(strategies, NewMockStrategy(MockOrders))

	chain := NewChain(KindOrders, m, strategies...)
	if snapshot != nil {
		chain.OnLiveResult(snapshot.Save)
	}
	return chain
}

func NewChecklistChain(cfg *config.Config, up Upstreams, m *metrics.Metrics) *Chain[models.ChecklistItem] {
	var strategies []Strategy[models.ChecklistItem]

	if up.Sheets != nil {
		strategies = append(strategies, NewSheetsStrategy[models.ChecklistItem](up.Sheets, cfg.Sheets.ChecklistSheet, cfg.Sheets.Timeout,
			func(rows []normalize.Row) []models.ChecklistItem {
				return normalize.Checklist(rows, normalize.DefaultChecklistQuantity, LabelSheets)
			}))
	}
	if up.Chat != nil {
		strategies = append(strategies, NewChatChecklist[models.ChecklistItem](up.Chat, cfg.Chat.Timeout,
			func(rows []normalize.Row) []models.ChecklistItem {
				return normalize.Checklist(rows, normalize.ChatChecklistQuantity, LabelChat)
			}))
	}

	var snapshot *SnapshotStrategy[models.ChecklistItem]
	if up.Snapshots != nil {
		snapshot = NewSnapshotStrategy[models.ChecklistItem](up.Snapshots, KindChecklist)
		strategies = append(strategies, snapshot)
	}
	strategies = append(strategies, NewMockStrategy(MockChecklist))

	chain := NewChain(KindChecklist, m, strategies...)
	if snapshot != nil {
		chain.OnLiveResult(snapshot.Save)
	}
	return chain
}

func logWarnSnapshot(kind string, err error) {
	logger.Warn("Failed to save snapshot", logger.Fields{
		"kind":  kind,
		"error": err.Error(),
	})
}
