package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpatil/nse-market-proxy/internal/cache"
	"github.com/rpatil/nse-market-proxy/internal/nse"
)

// upstreamCounts tracks how many times each endpoint family was hit.
type upstreamCounts struct {
	warmups atomic.Int64
	quotes  atomic.Int64
	indices atomic.Int64
	movers  atomic.Int64
}

// newUpstream starts a fake NSE serving canned payloads for every endpoint.
func newUpstream(t *testing.T, counts *upstreamCounts) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			counts.warmups.Add(1)
		case "/api/quote-equity":
			counts.quotes.Add(1)
			symbol := r.URL.Query().Get("symbol")
			fmt.Fprintf(w, `{"metadata": {"companyName": "%s Ltd"}, "priceInfo": {"lastPrice": 100.5}}`, symbol)
		case "/api/allIndices":
			counts.indices.Add(1)
			io.WriteString(w, `{"data": [{"index": "NIFTY 50", "last": 24000.0}, {"index": "NIFTY AUTO", "last": 1.0}]}`)
		case "/api/live-analysis-variations":
			counts.movers.Add(1)
			io.WriteString(w, `{"NIFTY": {"data": [{"symbol": "GAIN1", "lastPrice": 10.0}]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestService(t *testing.T, upstreamURL string, cfg Config) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := nse.NewClient(upstreamURL, nse.WithLogger(logger), nse.WithWarmupDelay(0))
	svc := New(cfg, client, cache.New(), logger)
	svc.sleep = func(time.Duration) {}
	return svc
}

func testConfig() Config {
	return Config{TTL: time.Minute}
}

func TestStocksCachedWithinTTL(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	first := svc.Stocks(ctx)
	if len(first) != 20 {
		t.Fatalf("len(stocks) = %d, want 20", len(first))
	}
	if got := counts.quotes.Load(); got != 20 {
		t.Fatalf("quote fetches = %d, want 20", got)
	}

	second := svc.Stocks(ctx)
	if got := counts.quotes.Load(); got != 20 {
		t.Errorf("quote fetches after cached call = %d, want 20", got)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached response differs from the original")
	}
}

func TestStocksRefetchedPastTTL(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, Config{TTL: 20 * time.Millisecond})
	ctx := context.Background()

	svc.Stocks(ctx)
	time.Sleep(30 * time.Millisecond)
	svc.Stocks(ctx)

	if got := counts.quotes.Load(); got != 40 {
		t.Errorf("quote fetches = %d, want 40 after the entry went stale", got)
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	svc.Indices(ctx)
	if got := counts.indices.Load(); got != 1 {
		t.Fatalf("index fetches = %d, want 1", got)
	}

	svc.ClearCache()

	svc.Indices(ctx)
	if got := counts.indices.Load(); got != 2 {
		t.Errorf("index fetches after clear = %d, want 2", got)
	}
}

func TestIndicesFilteredAndCached(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	indices := svc.Indices(ctx)
	if len(indices) != 1 {
		t.Fatalf("len(indices) = %d, want 1 (allow-list filter)", len(indices))
	}
	if _, ok := indices["NIFTY 50"]; !ok {
		t.Error("NIFTY 50 missing")
	}

	svc.Indices(ctx)
	if got := counts.indices.Load(); got != 1 {
		t.Errorf("index fetches = %d, want 1 (second call cached)", got)
	}
}

func TestIndicesRefetchedAfterUpstreamFailure(t *testing.T) {
	var fails atomic.Bool
	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/allIndices" {
			return
		}
		fetches.Add(1)
		if fails.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{"data": [{"index": "NIFTY 50", "last": 24000.0}]}`)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	// A failed fetch yields an empty mapping that must not occupy the
	// cache slot for the rest of the TTL.
	fails.Store(true)
	if first := svc.Indices(ctx); len(first) != 0 {
		t.Fatalf("len(first) = %d, want 0 while upstream fails", len(first))
	}

	fails.Store(false)
	second := svc.Indices(ctx)
	if got := fetches.Load(); got != 2 {
		t.Errorf("index fetches = %d, want 2 (empty result should not be cached)", got)
	}
	if len(second) != 1 {
		t.Errorf("len(second) = %d, want 1 once upstream recovers", len(second))
	}
}

func TestMoversNeverCached(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	svc.Movers(ctx)
	svc.Movers(ctx)

	// Two calls, two legs each.
	if got := counts.movers.Load(); got != 4 {
		t.Errorf("mover fetches = %d, want 4", got)
	}
	// Every call re-warms.
	if got := counts.warmups.Load(); got != 2 {
		t.Errorf("warmups = %d, want 2", got)
	}
}

func TestAllBuildsSnapshotAndReplacesSlot(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, testConfig())
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 10, 30, 0, 0, time.Local) }
	ctx := context.Background()

	snap := svc.All(ctx)

	if len(snap.Stocks) != 15 {
		t.Errorf("len(snap.Stocks) = %d, want 15", len(snap.Stocks))
	}
	if len(snap.Indices) != 1 {
		t.Errorf("len(snap.Indices) = %d, want 1", len(snap.Indices))
	}
	if len(snap.Movers.Gainers) != 1 {
		t.Errorf("len(snap.Movers.Gainers) = %d, want 1", len(snap.Movers.Gainers))
	}
	if snap.MarketStatus != "open" {
		t.Errorf("MarketStatus = %q, want %q", snap.MarketStatus, "open")
	}

	// The full snapshot shares the slot: a stocks request now serves the
	// snapshot's shorter list without touching upstream.
	quotesBefore := counts.quotes.Load()
	stocks := svc.Stocks(ctx)
	if got := counts.quotes.Load(); got != quotesBefore {
		t.Errorf("quote fetches = %d, want %d (stocks should be served from the snapshot)", got, quotesBefore)
	}
	if len(stocks) != 15 {
		t.Errorf("len(stocks) = %d, want 15 (snapshot evicted the bulk list)", len(stocks))
	}

	// Second /api/all call within TTL is a cache hit.
	moversBefore := counts.movers.Load()
	svc.All(ctx)
	if got := counts.movers.Load(); got != moversBefore {
		t.Errorf("mover fetches = %d, want %d (snapshot should be cached)", got, moversBefore)
	}
}

func TestQuoteBypassesCacheAndUppercases(t *testing.T) {
	var gotSymbols []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/quote-equity" {
			mu.Lock()
			gotSymbols = append(gotSymbols, r.URL.Query().Get("symbol"))
			mu.Unlock()
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	if _, err := svc.Quote(ctx, "reliance"); err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if _, err := svc.Quote(ctx, "reliance"); err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if len(gotSymbols) != 2 {
		t.Fatalf("upstream quote hits = %d, want 2 (no caching)", len(gotSymbols))
	}
	for _, s := range gotSymbols {
		if s != "RELIANCE" {
			t.Errorf("symbol sent upstream = %q, want %q", s, "RELIANCE")
		}
	}
}

func TestQuoteSurfacesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, testConfig())

	if _, err := svc.Quote(context.Background(), "FOO"); err == nil {
		t.Error("Quote should surface an upstream 503")
	}
}

func TestConcurrentMissesCollapse(t *testing.T) {
	var counts upstreamCounts
	server := newUpstream(t, &counts)
	svc := newTestService(t, server.URL, testConfig())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Indices(ctx)
		}()
	}
	wg.Wait()

	if got := counts.indices.Load(); got != 1 {
		t.Errorf("index fetches = %d, want 1 (concurrent misses should share one fetch)", got)
	}
}

func TestMarketStatus(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{8, "closed"},
		{9, "open"},
		{12, "open"},
		{15, "open"},
		{16, "closed"},
		{23, "closed"},
		{0, "closed"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour_%02d", tt.hour), func(t *testing.T) {
			at := time.Date(2026, 8, 30, tt.hour, 30, 0, 0, time.Local)
			if got := marketStatus(at); got != tt.want {
				t.Errorf("marketStatus(hour=%d) = %q, want %q", tt.hour, got, tt.want)
			}
		})
	}
}

func TestFetchTrackedSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		if strings.HasPrefix(symbol, "T") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"priceInfo": {"lastPrice": 1.0}}`)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, testConfig())

	stocks := svc.Stocks(context.Background())

	// TCS, TITAN fail; the remaining 18 survive in universe order.
	if len(stocks) != 18 {
		t.Fatalf("len(stocks) = %d, want 18", len(stocks))
	}
	if stocks[0].Symbol != "RELIANCE" {
		t.Errorf("stocks[0].Symbol = %q, want %q", stocks[0].Symbol, "RELIANCE")
	}
	for _, q := range stocks {
		if strings.HasPrefix(q.Symbol, "T") {
			t.Errorf("failed symbol %q should have been skipped", q.Symbol)
		}
	}
}
