package loader

import (
	"fmt"
	"sync"
	"time"

	"StockInsight/internal/model"
)

// Dataset holds the table loaded for the lifetime of the process.
// Readers always see a complete snapshot; Reload swaps snapshots atomically.
type Dataset struct {
	mu       sync.RWMutex
	source   Source
	records  []model.Record
	loadedAt time.Time
}

// NewDataset loads the source eagerly. A load failure is returned unchanged in meaning.
func NewDataset(src Source) (*Dataset, error) {
	d := &Dataset{source: src}
	if _, err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Records returns the current snapshot. Callers must not modify it.
func (d *Dataset) Records() []model.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.records
}

// Snapshot returns the current records together with their load time, read under one lock.
func (d *Dataset) Snapshot() ([]model.Record, time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.records, d.loadedAt
}

// LoadedAt returns when the current snapshot was loaded.
func (d *Dataset) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}

// SourceName returns the name of the underlying source.
func (d *Dataset) SourceName() string {
	return d.source.Name()
}

// Reload reads the source again and replaces the snapshot.
// On failure the previous snapshot is kept. Returns the new row count.
func (d *Dataset) Reload() (int, error) {
	records, err := d.source.Load()
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", d.source.Name(), err)
	}

	d.mu.Lock()
	d.records = records
	d.loadedAt = time.Now()
	d.mu.Unlock()

	return len(records), nil
}
