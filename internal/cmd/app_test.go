package cmd

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matthieukhl/expotrack/internal/config"
	"github.com/matthieukhl/expotrack/internal/source"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("EXPOTRACK_TEST_SHEETS_KEY", "")

	return &config.Config{
		Cache: config.CacheConfig{TTL: time.Minute},
		Sheets: config.SheetsConfig{
			SpreadsheetID:  "sheet",
			OrdersSheet:    "Orders",
			ChecklistSheet: "Booth Checklist",
			APIKeyEnv:      "EXPOTRACK_TEST_SHEETS_KEY",
		},
	}
}

func TestNewAppMockOnly(t *testing.T) {
	a, err := newApp(testConfig(t), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	if a.upstreams.Sheets != nil || a.upstreams.Chat != nil || a.upstreams.Snapshots != nil {
		t.Errorf("expected no upstreams, got %+v", a.upstreams)
	}
	if names := a.sources.Orders.Strategies(); len(names) != 1 || names[0] != source.NameMock {
		t.Errorf("orders strategies = %v", names)
	}
	if a.inventory.Cache().TTL() != time.Minute {
		t.Errorf("cache ttl = %v", a.inventory.Cache().TTL())
	}
}

func TestNewAppAllUpstreams(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sheets.APIKey = "k"
	cfg.Chat = config.ChatConfig{Provider: "mock", Model: "m"}
	cfg.Snapshot = config.SnapshotConfig{Driver: "sqlite3", DSN: ":memory:"}

	a, err := newApp(cfg, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	want := []string{source.NameSheets, source.NameChat, source.NameSnapshot, source.NameMock}
	got := a.sources.Checklist.Strategies()
	if len(got) != len(want) {
		t.Fatalf("strategies = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("strategies = %v, want %v", got, want)
		}
	}
}

func TestNewAppSkipsBrokenSnapshotStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Snapshot = config.SnapshotConfig{Driver: "postgres", DSN: "x"}

	a, err := newApp(cfg, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	if a.upstreams.Snapshots != nil {
		t.Error("snapshot store should be skipped")
	}
}

func TestPluralize(t *testing.T) {
	if pluralize(1, "record", "records") != "record" || pluralize(0, "record", "records") != "records" {
		t.Error("pluralize picked the wrong form")
	}
}
