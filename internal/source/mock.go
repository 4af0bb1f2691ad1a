package source

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/matthieukhl/expotrack/internal/models"
	"github.com/matthieukhl/expotrack/internal/normalize"
)

//go:embed mockdata.yaml
var mockDataYAML []byte

type mockDataset struct {
	Orders    []models.Order         `yaml:"orders"`
	Checklist []models.ChecklistItem `yaml:"checklist"`
}

var loadMockData = sync.OnceValues(func() (*mockDataset, error) {
	var ds mockDataset
	if err := yaml.Unmarshal(mockDataYAML, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse bundled mock data: %w", err)
	}

	ids := normalize.NewIDGenerator("CHK")
	for i := range ds.Checklist {
		item := &ds.Checklist[i]
		if item.ID == "" {
			item.ID = ids.Next(item.BoothNumber)
		}
		item.Priority = models.PriorityFor(item.Status)
		item.DataSource = LabelMock
	}
	for i := range ds.Orders {
		ds.Orders[i].DataSource = LabelMock
	}

	return &ds, nil
})

// MockOrders returns the bundled orders
func MockOrders() ([]models.Order, error) {
	ds, err := loadMockData()
	if err != nil {
		return nil, err
	}
	return ds.Orders, nil
}

// MockChecklist returns the bundled checklist items
func MockChecklist() ([]models.ChecklistItem, error) {
	ds, err := loadMockData()
	if err != nil {
		return nil, err
	}
	return ds.Checklist, nil
}
