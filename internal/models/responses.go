package models

// BoothOrders is the response body of the per-booth orders endpoint
type BoothOrders struct {
	Booth           string  `json:"booth"`
	Orders          []Order `json:"orders"`
	TotalOrders     int     `json:"total_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	LastUpdated     string  `json:"last_updated"`
	ForceRefreshed  bool    `json:"force_refreshed"`
	Error           string  `json:"error,omitempty"`
}

// BoothChecklist is the response body of the per-booth checklist endpoint.
// CompletionPercentage mirrors ProgressPercentage for older dashboard builds.
type BoothChecklist struct {
	Booth                string          `json:"booth"`
	ExhibitorName        string          `json:"exhibitor_name"`
	Section              string          `json:"section"`
	TotalItems           int             `json:"total_items"`
	CompletedItems       int             `json:"completed_items"`
	PendingItems         int             `json:"pending_items"`
	ProgressPercentage   int             `json:"progress_percentage"`
	CompletionPercentage int             `json:"completion_percentage"`
	Items                []ChecklistItem `json:"items"`
	LastUpdated          string          `json:"last_updated"`
	ForceRefreshed       bool            `json:"force_refreshed"`
	Error                string          `json:"error,omitempty"`
}

// TimestampLayout matches the ISO format the dashboard already parses
const TimestampLayout = "2006-01-02T15:04:05.000000"
