package nse

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/rpatil/nse-market-proxy/internal/model"
)

// moversLimit caps how many entries are kept per side.
const moversLimit = 10

// FetchMovers fetches the day's top gainers and losers. The two legs are
// independent: when one fails, only that side degrades to an empty list.
func (c *Client) FetchMovers(ctx context.Context) model.MoversPair {
	return model.MoversPair{
		Gainers: c.fetchMoversLeg(ctx, "gainers"),
		Losers:  c.fetchMoversLeg(ctx, "losers"),
	}
}

func (c *Client) fetchMoversLeg(ctx context.Context, direction string) []model.MoverQuote {
	quotes := []model.MoverQuote{}

	body, err := c.get(ctx, "/api/live-analysis-variations?index="+direction)
	if err != nil {
		c.logger.Warn("failed to fetch movers", "direction", direction, "err", err)
		return quotes
	}

	items := gjson.GetBytes(body, "NIFTY.data").Array()
	if len(items) > moversLimit {
		items = items[:moversLimit]
	}

	for _, item := range items {
		quotes = append(quotes, model.MoverQuote{
			Symbol:        item.Get("symbol").String(),
			CompanyName:   item.Get("meta.companyName").String(),
			LastPrice:     item.Get("lastPrice").Float(),
			Change:        item.Get("change").Float(),
			PercentChange: item.Get("pChange").Float(),
		})
	}

	return quotes
}
