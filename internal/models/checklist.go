package models

// ChecklistItem is a physical setup task or equipment line tied to a booth
type ChecklistItem struct {
	ID                  string `json:"id" yaml:"id"`
	BoothNumber         string `json:"booth_number" yaml:"booth_number"`
	Section             string `json:"section" yaml:"section"`
	ExhibitorName       string `json:"exhibitor_name" yaml:"exhibitor_name"`
	Quantity            int    `json:"quantity" yaml:"quantity"`
	Name                string `json:"name" yaml:"name"`
	SpecialInstructions string `json:"special_instructions" yaml:"special_instructions"`
	Status              bool   `json:"status" yaml:"status"`
	Date                string `json:"date" yaml:"date"`
	Hour                string `json:"hour" yaml:"hour"`
	Priority            int    `json:"priority" yaml:"priority"`
	DataSource          string `json:"data_source,omitempty" yaml:"data_source"`
}

// Checklist priorities, lower sorts first
const (
	PriorityIncomplete = 1
	PriorityComplete   = 5
)

// PriorityFor derives the sort priority from the completion flag
func PriorityFor(completed bool) int {
	if completed {
		return PriorityComplete
	}
	return PriorityIncomplete
}
