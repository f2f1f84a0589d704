package models

import (
	"strings"
	"time"
)

// SortField selects the key the list-tickers result is ordered by.
type SortField string

// SortOrder selects the direction of the ordering.
type SortOrder string

const (
	SortByScore      SortField = "score"
	SortByVolatility SortField = "volatility"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortField maps a raw query-string value to a SortField.
// Unrecognized values fall back to SortByScore; malformed input is
// deliberately not an error (see TickerQuery).
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortByVolatility):
		return SortByVolatility
	default:
		return SortByScore
	}
}

// ParseSortOrder maps a raw query-string value to a SortOrder,
// falling back to ascending.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(OrderDesc):
		return OrderDesc
	default:
		return OrderAsc
	}
}

// DateWindow is the inclusive [Start, End] date range of close-price
// observations to include.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// TickerQuery describes one list-tickers request: filters, sort key and
// direction, whether to embed the close-price series, the price window,
// and the requested page.
//
// Every field is optional from the caller's point of view. Malformed values
// never reject the request; they silently fall back to the defaults below.
// That policy is inherited from the system this one replaces and is pinned
// by tests rather than enforced ad hoc.
type TickerQuery struct {
	IncludePrices  bool       // embed the price series and volatility per company
	ExchangeSymbol string     // exact-match filter; empty means no filter
	MinScoreTotal  *int       // inclusive lower bound on score total; nil means no filter
	Window         DateWindow // price window; zero bounds are filled by the service defaults
	SortBy         SortField  // default SortByScore
	SortOrder      SortOrder  // default OrderAsc
	Page           int        // 1-based; values below 1 become 1
}

// Normalized returns a copy with the silent defaults applied.
func (q TickerQuery) Normalized() TickerQuery {
	q.SortBy = ParseSortField(string(q.SortBy))
	q.SortOrder = ParseSortOrder(string(q.SortOrder))
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}
