// Package nse provides the client for NSE India's internal JSON endpoints.
//
// The endpoints reject requests that do not look like a browser session:
// every call carries a fixed browser header set, and a warm-up GET against
// the homepage must establish cookies before data endpoints accept traffic.
//
// Endpoints used:
//   - /api/quote-equity?symbol=X
//   - /api/allIndices
//   - /api/live-analysis-variations?index=gainers|losers
package nse
