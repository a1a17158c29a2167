package model

// TrackedSymbols is the fixed universe polled for bulk quote requests.
// Order matters: responses preserve it, and the full-snapshot path only
// takes the first SnapshotSymbolLimit entries.
var TrackedSymbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK",
	"HINDUNILVR", "ITC", "SBIN", "BHARTIARTL", "KOTAKBANK",
	"LT", "AXISBANK", "ASIANPAINT", "MARUTI", "BAJFINANCE",
	"TITAN", "SUNPHARMA", "ULTRACEMCO", "NESTLEIND", "WIPRO",
}

// SnapshotSymbolLimit caps how many tracked symbols the full-snapshot
// fetch walks, to keep its wall time down.
const SnapshotSymbolLimit = 15

// watchedIndices is the allow-list applied to the allIndices response.
var watchedIndices = map[string]bool{
	"NIFTY 50":         true,
	"NIFTY BANK":       true,
	"NIFTY IT":         true,
	"NIFTY MIDCAP 100": true,
}

// WatchedIndex reports whether name is on the index allow-list.
func WatchedIndex(name string) bool {
	return watchedIndices[name]
}
