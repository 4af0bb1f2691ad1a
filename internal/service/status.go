package service

// Version is reported by the status endpoint
const Version = "3.0.0"

// Health summarizes process and upstream state
type Health struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	CacheSize         int    `json:"cache_size"`
	SheetsConnected   bool   `json:"sheets_connected"`
	ChatConnected     bool   `json:"chat_connected"`
	SnapshotConnected bool   `json:"snapshot_connected"`
}

// PlatformStatus is the integration status block the dashboard polls
type PlatformStatus struct {
	Platform     string `json:"platform"`
	Status       string `json:"status"`
	Database     string `json:"database"`
	LastSync     string `json:"last_sync"`
	Version      string `json:"version"`
	CacheEnabled bool   `json:"cache_enabled"`
}

func (inv *Inventory) Health() Health {
	up := inv.sources.Upstreams

	h := Health{
		Status:          "healthy",
		Timestamp:       inv.now(),
		CacheSize:       inv.cache.Len(),
		SheetsConnected: up.Sheets != nil,
		ChatConnected:   up.Chat != nil,
	}
	if up.Snapshots != nil {
		h.SnapshotConnected = up.Snapshots.HealthCheck() == nil
	}
	return h
}

func (inv *Inventory) Status() PlatformStatus {
	database := "Mock Data"
	switch up := inv.sources.Upstreams; {
	case up.Sheets != nil:
		database = "Google Sheets Integration"
	case up.Chat != nil:
		database = "Chat Query Integration"
	}

	return PlatformStatus{
		Platform:     "Expo Convention Contractors",
		Status:       "connected",
		Database:     database,
		LastSync:     inv.now(),
		Version:      Version,
		CacheEnabled: true,
	}
}
