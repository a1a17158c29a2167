// Package refresh implements the optional background snapshot refresher.
//
// When enabled, it rebuilds the full market snapshot on a fixed interval
// and pushes each result to the stream hub, so WebSocket clients see
// updates without polling the REST surface. The on-demand cache semantics
// are untouched: the refresher is just another caller of the orchestrator.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rpatil/nse-market-proxy/internal/model"
)

// SnapshotSource produces the complete market snapshot.
type SnapshotSource interface {
	All(ctx context.Context) *model.MarketSnapshot
}

// Broadcaster receives each refreshed snapshot.
type Broadcaster interface {
	Broadcast(v any)
}

// Config holds refresher settings.
type Config struct {
	Interval time.Duration // Refresh interval (default: the cache TTL)
}

// Refresher periodically rebuilds the snapshot and broadcasts it.
type Refresher struct {
	cfg    Config
	source SnapshotSource
	sink   Broadcaster
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Refresher.
func New(cfg Config, source SnapshotSource, sink Broadcaster, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		cfg:    cfg,
		source: source,
		sink:   sink,
		logger: logger,
	}
}

// Start begins the refresh loop.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("snapshot refresher started", "interval", r.cfg.Interval)
	return nil
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("snapshot refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main refresh loop.
func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// Refresh immediately on start.
	r.refresh()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

func (r *Refresher) refresh() {
	start := time.Now()
	snap := r.source.All(r.ctx)
	r.sink.Broadcast(snap)

	r.logger.Info("snapshot refreshed",
		"stocks", len(snap.Stocks),
		"indices", len(snap.Indices),
		"duration", time.Since(start),
	)
}
