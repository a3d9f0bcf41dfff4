package repository

import (
	"context"
	"errors"
	"time"

	"mooring/internal/monitor"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Batch is one received snapshot, flattened
type Batch struct {
	ID         string
	Port       string
	ReceivedAt time.Time
	Readings   []monitor.Reading
}

// BatchSummary describes a stored batch without its readings
type BatchSummary struct {
	ID         string    `json:"id"`
	Port       string    `json:"port"`
	ReceivedAt time.Time `json:"receivedAt"`
	Records    int       `json:"records"`
}

// ReadingStore persists received readings
type ReadingStore interface {
	// Write operations
	SaveBatch(ctx context.Context, batch Batch) error

	// Read operations
	GetBatch(ctx context.Context, id string) (*BatchSummary, error)
	ListBatches(ctx context.Context, limit int) ([]BatchSummary, error)
	History(ctx context.Context, key string, limit int) ([]monitor.Sample, error)
	CountReadings(ctx context.Context) (int, error)

	// Close releases resources
	Close() error
}
