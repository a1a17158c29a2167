// Package market implements the cache/fetch orchestrator.
//
// Each request category (stocks, indices, movers, all) maps to a fetch
// sequence against the NSE client. Cached categories check the shared slot
// first; on a miss the session is re-warmed, the sequence runs with
// inter-request pacing, and the result is written back. Movers is served
// uncached on every call, as the upstream-facing behavior has always been.
// Symbol fetches within a sequence run strictly one at a time — the pacing
// sleep is the rate-limiting strategy.
package market
