package models

import "time"

// Company is one row of the companies table. Read-only from this service's
// perspective; identities are assigned by whatever loaded the dataset.
type Company struct {
	ID             int64  `json:"id" example:"1"`
	TickerSymbol   string `json:"ticker_symbol" example:"AAPL"`
	Name           string `json:"name" example:"Apple Inc."`
	ExchangeSymbol string `json:"exchange_symbol" example:"NasdaqGS"`
	ScoreID        *int64 `json:"score_id,omitempty"`
}

// Score is an externally computed composite rating for a company.
// At most one score exists per company; the loader enforces uniqueness,
// this service does not defend against duplicates.
type Score struct {
	ID    int64   `json:"id" example:"1"`
	Total float64 `json:"total" example:"17"`
}

// ClosePrice is one closing price observation for one company on one date.
// No two observations share (company, date).
type ClosePrice struct {
	CompanyID int64     `json:"-"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price" example:"120.53"`
}

// TickerRow is one flat row of the list-tickers query: company and score
// columns, plus nullable price columns when the close-price window was
// joined in. A row with nil Price/Date means the company had no observation
// inside the window.
type TickerRow struct {
	ID             int64
	TickerSymbol   string
	Name           string
	ExchangeSymbol string
	ScoreTotal     *float64
	Price          *float64
	Date           *time.Time
}

// CompanyView is the aggregated per-company record produced from TickerRows.
//
// Prices is ordered ascending by date and is empty (never nil) when the
// company had no observation inside the window. Volatility is only
// meaningful when prices were requested; it is 0 for fewer than 2
// observations.
type CompanyView struct {
	ID             int64
	TickerSymbol   string
	Name           string
	ExchangeSymbol string
	ScoreTotal     *float64
	Prices         []ClosePrice
	Volatility     float64
}
