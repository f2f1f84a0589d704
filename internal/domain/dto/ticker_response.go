package dto

import (
	"time"

	"github.com/cperes/tickerpulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// PricePoint is one close-price observation as it appears on the wire.
type PricePoint struct {
	Price float64 `json:"price" example:"120.53"`
	Date  string  `json:"date" example:"2020-05-22"`
}

// TickerEntry is one company in the list-tickers response when the price
// series was not requested. ScoreTotal stays null (not omitted) for
// companies without a score row.
type TickerEntry struct {
	ID             int64    `json:"id" example:"1"`
	TickerSymbol   string   `json:"ticker_symbol" example:"AAPL"`
	Name           string   `json:"name" example:"Apple Inc."`
	ExchangeSymbol string   `json:"exchange_symbol" example:"NasdaqGS"`
	ScoreTotal     *float64 `json:"score_total"`
}

// TickerPricesEntry is one company in the list-tickers response when the
// price series was requested: the summary fields plus the windowed series
// and its volatility. Prices is [] (never null) for companies with no
// observation in the window.
type TickerPricesEntry struct {
	TickerEntry
	Prices     []PricePoint `json:"prices"`
	Volatility float64      `json:"volatility"`
}

// PageMeta carries pagination metadata for list responses.
type PageMeta struct {
	Page int `json:"page" example:"1"`
}

// TickerListResponse is the body of GET /api/v1/tickers without prices.
type TickerListResponse struct {
	Data []TickerEntry `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// TickerPricesListResponse is the body of GET /api/v1/tickers with prices.
type TickerPricesListResponse struct {
	Data []TickerPricesEntry `json:"data"`
	Meta PageMeta            `json:"meta"`
}

// TickerDetailResponse is the body of GET /api/v1/tickers/:ticker.
//
// CloseData is a single PricePoint when only the latest observation was
// requested, a []PricePoint when the full series was, and null when the
// ticker is unknown or has no observations. Data is null for an unknown
// ticker; that outcome is a 404, not an error body.
type TickerDetailResponse struct {
	Data      *models.Company `json:"data"`
	CloseData interface{}     `json:"closeData" swaggertype:"object"`
}

// TickerScoreResponse is the body of GET /api/v1/tickers/:ticker/score.
type TickerScoreResponse struct {
	Data      *models.Company `json:"data"`
	ScoreData *models.Score   `json:"scoreData"`
}

// NewTickerEntry maps an aggregated company view to its summary wire form.
func NewTickerEntry(v models.CompanyView) TickerEntry {
	return TickerEntry{
		ID:             v.ID,
		TickerSymbol:   v.TickerSymbol,
		Name:           v.Name,
		ExchangeSymbol: v.ExchangeSymbol,
		ScoreTotal:     v.ScoreTotal,
	}
}

// NewTickerPricesEntry maps an aggregated company view, including its price
// series and volatility, to its wire form.
func NewTickerPricesEntry(v models.CompanyView) TickerPricesEntry {
	return TickerPricesEntry{
		TickerEntry: NewTickerEntry(v),
		Prices:      NewPricePoints(v.Prices),
		Volatility:  v.Volatility,
	}
}

// NewPricePoint maps one observation, formatting the date as YYYY-MM-DD.
func NewPricePoint(p models.ClosePrice) PricePoint {
	return PricePoint{Price: p.Price, Date: p.Date.Format(dateLayout)}
}

// NewPricePoints maps a series, always returning a non-nil slice so empty
// series marshal as [] rather than null.
func NewPricePoints(prices []models.ClosePrice) []PricePoint {
	out := make([]PricePoint, 0, len(prices))
	for _, p := range prices {
		out = append(out, NewPricePoint(p))
	}
	return out
}

// FormatDate renders a time in the wire date layout.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }
