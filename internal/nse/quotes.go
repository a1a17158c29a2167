package nse

import (
	"context"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rpatil/nse-market-proxy/internal/model"
)

// FetchQuote fetches the live quote for a single symbol. The upstream
// schema is not guaranteed stable, so every field access falls back to its
// zero value when absent; only transport failures, non-200 status and
// unparseable bodies produce an error.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (model.StockQuote, error) {
	body, err := c.get(ctx, "/api/quote-equity?symbol="+url.QueryEscape(symbol))
	if err != nil {
		return model.StockQuote{}, err
	}

	root := gjson.ParseBytes(body)
	price := root.Get("priceInfo")

	name := root.Get("metadata.companyName").String()
	if name == "" {
		name = symbol
	}

	return model.StockQuote{
		Symbol:         symbol,
		CompanyName:    name,
		LastPrice:      price.Get("lastPrice").Float(),
		Change:         price.Get("change").Float(),
		PercentChange:  price.Get("pChange").Float(),
		PreviousClose:  price.Get("previousClose").Float(),
		Open:           price.Get("open").Float(),
		DayHigh:        price.Get("intraDayHighLow.max").Float(),
		DayLow:         price.Get("intraDayHighLow.min").Float(),
		Volume:         price.Get("totalTradedVolume").Int(),
		TradedValue:    price.Get("totalTradedValue").Float(),
		LastUpdateTime: price.Get("lastUpdateTime").String(),
		FetchedAt:      c.now().Format(time.RFC3339),
	}, nil
}
