// Package marketcache caches market snapshots in BadgerHold
package marketcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
	"github.com/bobmcallan/verdex/internal/models"
)

// Store caches fetched market snapshots per symbol with a TTL so
// repeated analyses of the same ticker skip the upstream fetch.
type Store struct {
	store  *badgerhold.Store
	ttl    time.Duration
	logger *common.Logger
}

// snapshotRecord is the persisted cache entry.
type snapshotRecord struct {
	Symbol   string `badgerhold:"key"`
	Snapshot models.MarketSnapshot
}

// NewStore opens the cache database at path.
func NewStore(path string, ttl time.Duration, logger *common.Logger) (*Store, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if ttl <= 0 {
		ttl = common.FreshnessSnapshot
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}

	return &Store{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get returns the cached snapshot for a symbol. Stale or missing
// entries return models.ErrNotFound.
func (s *Store) Get(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	var record snapshotRecord
	err := s.store.Get(symbol, &record)
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: snapshot %s", models.ErrNotFound, symbol)
		}
		return nil, fmt.Errorf("failed to read snapshot cache: %w", err)
	}

	if !common.IsFresh(record.Snapshot.FetchedAt, s.ttl) {
		s.logger.Debug().Str("symbol", symbol).Msg("Snapshot cache entry stale")
		return nil, fmt.Errorf("%w: snapshot %s expired", models.ErrNotFound, symbol)
	}

	return &record.Snapshot, nil
}

// Put stores a snapshot, replacing any existing entry.
func (s *Store) Put(ctx context.Context, snapshot *models.MarketSnapshot) error {
	record := snapshotRecord{
		Symbol:   snapshot.Symbol,
		Snapshot: *snapshot,
	}

	if err := s.store.Upsert(snapshot.Symbol, &record); err != nil {
		return fmt.Errorf("failed to write snapshot cache: %w", err)
	}

	s.logger.Debug().
		Str("symbol", snapshot.Symbol).
		Int("bars", len(snapshot.Series)).
		Msg("Cached market snapshot")

	return nil
}

// Close releases the underlying Badger store.
func (s *Store) Close() error {
	return s.store.Close()
}

// RunGC triggers a value log garbage collection cycle on the
// underlying Badger store. Called periodically by the app.
func (s *Store) RunGC() {
	db := s.store.Badger()
	for {
		if err := db.RunValueLogGC(0.5); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Debug().Err(err).Msg("Snapshot cache GC finished")
			}
			return
		}
	}
}

// Ensure Store implements SnapshotCache
var _ interfaces.SnapshotCache = (*Store)(nil)
