package models

// Order is a logistics request (furniture, signage, equipment) tied to a booth
type Order struct {
	ID            string `json:"id" yaml:"id"`
	BoothNumber   string `json:"booth_number" yaml:"booth_number"`
	ExhibitorName string `json:"exhibitor_name" yaml:"exhibitor_name"`
	Item          string `json:"item" yaml:"item"`
	Description   string `json:"description" yaml:"description"`
	Color         string `json:"color" yaml:"color"`
	Quantity      int    `json:"quantity" yaml:"quantity"`
	Status        string `json:"status" yaml:"status"`
	OrderDate     string `json:"order_date" yaml:"order_date"` // kept as upstream text
	Comments      string `json:"comments" yaml:"comments"`
	Section       string `json:"section" yaml:"section"`
	DataSource    string `json:"data_source,omitempty" yaml:"data_source"`
}

// Delivery pipeline statuses
const (
	OrderStatusInProcess      = "in-process"
	OrderStatusInRoute        = "in-route"
	OrderStatusOutForDelivery = "out-for-delivery"
	OrderStatusDelivered      = "delivered"
)

// IsDelivered reports whether the order reached the end of the pipeline
func (o Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}
