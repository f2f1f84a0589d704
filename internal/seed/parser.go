package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cperes/tickerpulse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ParseCompanies reads companies.csv rows:
//
//	id,ticker_symbol,name,exchange_symbol,score_id
//
// score_id may be empty for companies without a score. The first line is a
// header and is skipped.
func ParseCompanies(r io.Reader) ([]models.Company, error) {
	records, err := readAll(r, 5)
	if err != nil {
		return nil, err
	}

	out := make([]models.Company, 0, len(records))
	for i, rec := range records {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid company id %q", i+2, rec[0])
		}
		c := models.Company{
			ID:             id,
			TickerSymbol:   rec[1],
			Name:           rec[2],
			ExchangeSymbol: rec[3],
		}
		if rec[4] != "" {
			scoreID, err := strconv.ParseInt(rec[4], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid score id %q", i+2, rec[4])
			}
			c.ScoreID = &scoreID
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseScores reads scores.csv rows:
//
//	id,total
func ParseScores(r io.Reader) ([]models.Score, error) {
	records, err := readAll(r, 2)
	if err != nil {
		return nil, err
	}

	out := make([]models.Score, 0, len(records))
	for i, rec := range records {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score id %q", i+2, rec[0])
		}
		total, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score total %q", i+2, rec[1])
		}
		out = append(out, models.Score{ID: id, Total: total})
	}
	return out, nil
}

// ParsePrices reads prices.csv rows:
//
//	company_id,date,price
//
// with dates in YYYY-MM-DD form and strictly positive prices.
func ParsePrices(r io.Reader) ([]models.ClosePrice, error) {
	records, err := readAll(r, 3)
	if err != nil {
		return nil, err
	}

	out := make([]models.ClosePrice, 0, len(records))
	for i, rec := range records {
		companyID, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid company id %q", i+2, rec[0])
		}
		date, err := time.Parse(dateLayout, rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q", i+2, rec[1])
		}
		price, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q", i+2, rec[2])
		}
		if price <= 0 {
			return nil, fmt.Errorf("line %d: price must be positive, got %v", i+2, price)
		}
		out = append(out, models.ClosePrice{CompanyID: companyID, Date: date, Price: price})
	}
	return out, nil
}

// readAll consumes a CSV stream, drops the header line, and enforces the
// expected field count.
func readAll(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv file")
	}
	return records[1:], nil
}
