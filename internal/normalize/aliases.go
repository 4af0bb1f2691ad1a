package normalize

// Canonical field names. Tabular ingestion maps headers onto these, and
// they are always the first alias tried.
const (
	FieldID                  = "id"
	FieldBoothNumber         = "booth_number"
	FieldExhibitorName       = "exhibitor_name"
	FieldItem                = "item"
	FieldDescription         = "description"
	FieldColor               = "color"
	FieldQuantity            = "quantity"
	FieldStatus              = "status"
	FieldOrderDate           = "order_date"
	FieldComments            = "comments"
	FieldSection             = "section"
	FieldSpecialInstructions = "special_instructions"
	FieldDate                = "date"
	FieldHour                = "hour"
)

// aliases lists the upstream spellings of each canonical field, in lookup order
var aliases = map[string][]string{
	FieldID:                  {"id", "ID", "Order ID", "order_id", "Order #"},
	FieldBoothNumber:         {"booth_number", "Booth #", "Booth", "booth", "Booth Number"},
	FieldExhibitorName:       {"exhibitor_name", "Exhibitor Name", "Exhibitor", "exhibitor", "Company"},
	FieldItem:                {"item", "Item", "Item Name", "item_name", "name", "Name"},
	FieldDescription:         {"description", "Description"},
	FieldColor:               {"color", "Color", "Colour"},
	FieldQuantity:            {"quantity", "Quantity", "Qty", "qty"},
	FieldStatus:              {"status", "Status"},
	FieldOrderDate:           {"order_date", "Order Date", "Date", "date"},
	FieldComments:            {"comments", "Comments", "Comment"},
	FieldSection:             {"section", "Section"},
	FieldSpecialInstructions: {"special_instructions", "Special Instructions", "Notes"},
	FieldDate:                {"date", "Date"},
	FieldHour:                {"hour", "Hour", "Time"},
}

// Aliases returns the lookup order for a canonical field
func Aliases(field string) []string {
	return aliases[field]
}

// truthy holds the upper-cased strings that mean "completed"
var truthy = map[string]struct{}{
	"TRUE":     {},
	"CHECKED":  {},
	"YES":      {},
	"1":        {},
	"COMPLETE": {},
	"DONE":     {},
}
