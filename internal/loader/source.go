package loader

import (
	"sync"

	"StockInsight/internal/model"
)

// Source defines the interface for reading the daily price table.
type Source interface {
	Load() ([]model.Record, error)
	Name() string
}

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Records []model.Record
	Err     error

	mu    sync.Mutex
	calls int
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load() ([]model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

// Calls reports how many times Load has run.
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
