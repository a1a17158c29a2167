package model

// StockQuote is a reshaped NSE quote-equity response for a single symbol.
// Instances are built once per fetch and never mutated afterwards.
type StockQuote struct {
	Symbol         string  `json:"symbol"`
	CompanyName    string  `json:"name"`
	LastPrice      float64 `json:"price"`
	Change         float64 `json:"change"`
	PercentChange  float64 `json:"pChange"`
	PreviousClose  float64 `json:"previousClose"`
	Open           float64 `json:"open"`
	DayHigh        float64 `json:"dayHigh"`
	DayLow         float64 `json:"dayLow"`
	Volume         int64   `json:"volume"`
	TradedValue    float64 `json:"value"`
	LastUpdateTime string  `json:"lastUpdateTime"`

	// FetchedAt is the RFC 3339 instant this quote was pulled from upstream.
	FetchedAt string `json:"timestamp"`
}

// IndexSnapshot is one entry of the allIndices response, kept only for
// indices on the watch list.
type IndexSnapshot struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"pChange"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
}

// MoverQuote is the slim quote shape used in gainers/losers lists.
type MoverQuote struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"name"`
	LastPrice     float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"pChange"`
}

// MoversPair holds the day's top gainers and losers, at most ten per side,
// in the order upstream returned them.
type MoversPair struct {
	Gainers []MoverQuote `json:"gainers"`
	Losers  []MoverQuote `json:"losers"`
}

// MarketSnapshot is the complete payload served by /api/all.
type MarketSnapshot struct {
	Indices      map[string]IndexSnapshot `json:"indices"`
	Stocks       []StockQuote             `json:"stocks"`
	Movers       MoversPair               `json:"movers"`
	Timestamp    string                   `json:"timestamp"`
	MarketStatus string                   `json:"market_status"`
}
