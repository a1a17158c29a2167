// Package cache implements the single shared snapshot slot.
//
// One entry exists process-wide: a stocks-only refresh and a full-snapshot
// refresh write into the same slot, so refreshing one category can evict
// another's data. That staleness is accepted — the data is advisory and
// re-polled at most once per TTL, so a lost sub-payload heals on the next
// miss.
package cache
