package market

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rpatil/nse-market-proxy/internal/cache"
	"github.com/rpatil/nse-market-proxy/internal/model"
	"github.com/rpatil/nse-market-proxy/internal/nse"
)

// Config holds orchestrator settings.
type Config struct {
	TTL            time.Duration // Cache entry time-to-live (default: 60s)
	QuotePacing    time.Duration // Sleep between bulk symbol fetches (default: 500ms)
	SnapshotPacing time.Duration // Sleep between snapshot symbol fetches (default: 300ms)
}

// DefaultConfig returns the stock deployment's settings.
func DefaultConfig() Config {
	return Config{
		TTL:            60 * time.Second,
		QuotePacing:    500 * time.Millisecond,
		SnapshotPacing: 300 * time.Millisecond,
	}
}

// Service orchestrates upstream fetches and the shared cache slot.
type Service struct {
	cfg    Config
	client *nse.Client
	cache  *cache.Store
	logger *slog.Logger

	// group collapses concurrent misses on the same category into one
	// in-flight fetch sequence.
	group singleflight.Group

	// Injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Service around the given client and cache.
func New(cfg Config, client *nse.Client, store *cache.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:    cfg,
		client: client,
		cache:  store,
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Stocks returns quotes for the full tracked universe, served from cache
// when fresh. A miss re-warms the session, walks all tracked symbols with
// pacing, and merges the result into the shared slot.
func (s *Service) Stocks(ctx context.Context) []model.StockQuote {
	if stocks, ok := s.cache.StocksIfFresh(s.cfg.TTL); ok {
		s.logger.Info("serving cached stocks", "count", len(stocks))
		return stocks
	}

	v, _, _ := s.group.Do("stocks", func() (any, error) {
		if stocks, ok := s.cache.StocksIfFresh(s.cfg.TTL); ok {
			return stocks, nil
		}

		s.client.Warmup(ctx)
		stocks := s.fetchTracked(ctx, model.TrackedSymbols, s.cfg.QuotePacing)
		s.cache.SetStocks(stocks)
		return stocks, nil
	})
	return v.([]model.StockQuote)
}

// Indices returns the allow-listed index mapping, served from cache when
// fresh.
func (s *Service) Indices(ctx context.Context) map[string]model.IndexSnapshot {
	if indices, ok := s.cache.IndicesIfFresh(s.cfg.TTL); ok {
		return indices
	}

	v, _, _ := s.group.Do("indices", func() (any, error) {
		if indices, ok := s.cache.IndicesIfFresh(s.cfg.TTL); ok {
			return indices, nil
		}

		s.client.Warmup(ctx)
		indices := s.client.FetchIndices(ctx)
		s.cache.SetIndices(indices)
		return indices, nil
	})
	return v.(map[string]model.IndexSnapshot)
}

// Movers returns the day's top gainers and losers. Never cached: every
// call re-warms and hits upstream.
func (s *Service) Movers(ctx context.Context) model.MoversPair {
	s.client.Warmup(ctx)
	return s.client.FetchMovers(ctx)
}

// All returns the complete market snapshot, served from cache when fresh.
// A miss rebuilds everything — indices, movers, and a shortened symbol walk
// — and replaces the entire cache entry.
func (s *Service) All(ctx context.Context) *model.MarketSnapshot {
	if snap, ok := s.cache.SnapshotIfFresh(s.cfg.TTL); ok {
		s.logger.Info("serving cached snapshot")
		return snap
	}

	v, _, _ := s.group.Do("all", func() (any, error) {
		if snap, ok := s.cache.SnapshotIfFresh(s.cfg.TTL); ok {
			return snap, nil
		}

		s.client.Warmup(ctx)

		now := s.now()
		snap := &model.MarketSnapshot{
			Indices:      s.client.FetchIndices(ctx),
			Movers:       s.client.FetchMovers(ctx),
			Stocks:       s.fetchTracked(ctx, model.TrackedSymbols[:model.SnapshotSymbolLimit], s.cfg.SnapshotPacing),
			Timestamp:    now.Format(time.RFC3339),
			MarketStatus: marketStatus(now),
		}
		s.cache.SetSnapshot(snap)
		return snap, nil
	})
	return v.(*model.MarketSnapshot)
}

// Quote fetches a single symbol, bypassing the cache entirely. The symbol
// is uppercased before the lookup. Unlike the bulk paths, a fetch failure
// here surfaces to the caller.
func (s *Service) Quote(ctx context.Context, symbol string) (model.StockQuote, error) {
	s.client.Warmup(ctx)
	return s.client.FetchQuote(ctx, strings.ToUpper(symbol))
}

// ClearCache unconditionally resets the shared slot.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.logger.Info("cache cleared")
}

// fetchTracked walks symbols in order, one at a time, sleeping pace between
// calls. Failed symbols are logged and skipped; the result preserves the
// universe's order.
func (s *Service) fetchTracked(ctx context.Context, symbols []string, pace time.Duration) []model.StockQuote {
	stocks := make([]model.StockQuote, 0, len(symbols))
	for i, symbol := range symbols {
		if i > 0 {
			s.sleep(pace)
		}
		quote, err := s.client.FetchQuote(ctx, symbol)
		if err != nil {
			s.logger.Warn("skipping symbol", "symbol", symbol, "err", err)
			continue
		}
		stocks = append(stocks, quote)
	}
	return stocks
}

// marketStatus reports the exchange as open for local hours 9 through 15.
func marketStatus(t time.Time) string {
	if h := t.Hour(); h >= 9 && h < 16 {
		return "open"
	}
	return "closed"
}
