package nse

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/rpatil/nse-market-proxy/internal/model"
)

// FetchIndices fetches the allIndices endpoint and keeps only the indices
// on the watch list. Any failure collapses to an empty map.
func (c *Client) FetchIndices(ctx context.Context) map[string]model.IndexSnapshot {
	indices := make(map[string]model.IndexSnapshot)

	body, err := c.get(ctx, "/api/allIndices")
	if err != nil {
		c.logger.Warn("failed to fetch indices", "err", err)
		return indices
	}

	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		name := item.Get("index").String()
		if !model.WatchedIndex(name) {
			return true
		}
		indices[name] = model.IndexSnapshot{
			Name:          name,
			Value:         item.Get("last").Float(),
			Change:        item.Get("variation").Float(),
			PercentChange: item.Get("percentChange").Float(),
			Open:          item.Get("open").Float(),
			High:          item.Get("high").Float(),
			Low:           item.Get("low").Float(),
		}
		return true
	})

	return indices
}
