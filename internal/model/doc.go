// Package model defines the data shapes served by the NSE market proxy.
//
// Conventions:
//   - Prices and changes: float64, as returned by the NSE JSON endpoints
//   - Timestamps: RFC 3339 strings, populated at fetch time
//   - Index names: exchange display names ("NIFTY 50"), used as map keys
package model
