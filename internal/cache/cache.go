package cache

import (
	"sync"
	"time"

	"github.com/rpatil/nse-market-proxy/internal/model"
)

// Store holds the process-wide cache slot behind a mutex so concurrent
// requests observe a consistent entry.
type Store struct {
	mu         sync.Mutex
	stocks     []model.StockQuote
	indices    map[string]model.IndexSnapshot
	snapshot   *model.MarketSnapshot
	capturedAt time.Time

	// Injectable for tests.
	now func() time.Time
}

// New creates an empty cache store.
func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) fresh(ttl time.Duration) bool {
	return !s.capturedAt.IsZero() && s.now().Sub(s.capturedAt) < ttl
}

// StocksIfFresh returns the cached bulk quote list when the entry is within
// ttl and a stocks payload is present.
func (s *Store) StocksIfFresh(ttl time.Duration) ([]model.StockQuote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh(ttl) || s.stocks == nil {
		return nil, false
	}
	return s.stocks, true
}

// IndicesIfFresh returns the cached index mapping when the entry is within
// ttl and an indices payload is present. An empty mapping counts as absent:
// it is what a failed fetch produces, and serving it for a whole TTL would
// turn one upstream blip into a minute of blank indices.
func (s *Store) IndicesIfFresh(ttl time.Duration) (map[string]model.IndexSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh(ttl) || len(s.indices) == 0 {
		return nil, false
	}
	return s.indices, true
}

// SnapshotIfFresh returns the cached full snapshot when the entry is within
// ttl and a complete snapshot is present.
func (s *Store) SnapshotIfFresh(ttl time.Duration) (*model.MarketSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh(ttl) || s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

// SetStocks merges a fresh bulk quote list into the slot, keeping whatever
// other payloads are there, and re-stamps the entry.
func (s *Store) SetStocks(stocks []model.StockQuote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks = stocks
	s.capturedAt = s.now()
}

// SetIndices merges a fresh index mapping into the slot and re-stamps the
// entry.
func (s *Store) SetIndices(indices map[string]model.IndexSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indices = indices
	s.capturedAt = s.now()
}

// SetSnapshot replaces the entire slot with a full snapshot. The stocks and
// indices payloads are taken from the snapshot itself, so subsequent
// category hits serve the snapshot's (possibly shorter) data.
func (s *Store) SetSnapshot(snap *model.MarketSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
	s.stocks = snap.Stocks
	s.indices = snap.Indices
	s.capturedAt = s.now()
}

// Clear resets the slot to its uninitialized state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks = nil
	s.indices = nil
	s.snapshot = nil
	s.capturedAt = time.Time{}
}
