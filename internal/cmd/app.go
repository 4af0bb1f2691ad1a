package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matthieukhl/expotrack/internal/cache"
	"github.com/matthieukhl/expotrack/internal/chat"
	"github.com/matthieukhl/expotrack/internal/config"
	"github.com/matthieukhl/expotrack/internal/database"
	"github.com/matthieukhl/expotrack/internal/llm"
	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/metrics"
	"github.com/matthieukhl/expotrack/internal/service"
	"github.com/matthieukhl/expotrack/internal/sheets"
	"github.com/matthieukhl/expotrack/internal/source"
)

// app is everything a command needs, wired from configuration
type app struct {
	cfg       *config.Config
	metrics   *metrics.Metrics
	upstreams source.Upstreams
	sources   *source.Sources
	inventory *service.Inventory
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Configure(os.Stderr, cfg.Log.Level)
	return cfg, nil
}

// newApp connects whichever upstreams are configured. Unconfigured ones are
// skipped with a warning; the mock dataset always remains.
func newApp(cfg *config.Config, reg prometheus.Registerer) (*app, error) {
	m := metrics.New(reg)
	var up source.Upstreams

	client, err := sheets.NewClient(&cfg.Sheets)
	switch {
	case err == nil:
		up.Sheets = client
	case errors.Is(err, sheets.ErrNotConfigured):
		logger.Warn("Spreadsheet upstream not configured, skipping", logger.Fields{"reason": err.Error()})
	default:
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	generator, err := llm.NewGenerator(&cfg.Chat)
	switch {
	case err == nil:
		up.Chat = chat.NewEngine(generator, &cfg.Chat, &cfg.Sheets)
	case errors.Is(err, llm.ErrDisabled):
		logger.Warn("Chat upstream not configured, skipping", nil)
	default:
		logger.Warn("Chat upstream unavailable, skipping", logger.Fields{"error": err.Error()})
	}

	if cfg.Snapshot.DSN != "" {
		db, err := database.NewConnection(&cfg.Snapshot)
		if err != nil {
			logger.Warn("Snapshot store unavailable, skipping", logger.Fields{"error": err.Error()})
		} else {
			up.Snapshots = db
		}
	}

	sources := source.New(cfg, up, m)
	c := cache.New(cfg.Cache.TTL, cache.WithMetrics(m))

	return &app{
		cfg:       cfg,
		metrics:   m,
		upstreams: up,
		sources:   sources,
		inventory: service.NewInventory(sources, c, nil),
	}, nil
}

func (a *app) Close() {
	if a.upstreams.Snapshots != nil {
		a.upstreams.Snapshots.Close()
	}
}
