package interfaces

import (
	"context"

	"github.com/bobmcallan/verdex/internal/models"
)

// ReportStore persists generated PDF reports
type ReportStore interface {
	// Save writes a report under the given filename
	Save(ctx context.Context, filename string, data []byte) error

	// Load reads a stored report. Returns models.ErrNotFound when absent
	// and models.ErrInvalidInput for unsafe filenames.
	Load(ctx context.Context, filename string) ([]byte, error)

	// List returns stored report filenames, newest first
	List(ctx context.Context) ([]string, error)
}

// SnapshotCache caches fetched market snapshots per symbol
type SnapshotCache interface {
	// Get returns the cached snapshot for a symbol, or models.ErrNotFound
	Get(ctx context.Context, symbol string) (*models.MarketSnapshot, error)

	// Put stores a snapshot, replacing any existing entry
	Put(ctx context.Context, snapshot *models.MarketSnapshot) error

	// Close releases the underlying store
	Close() error
}
