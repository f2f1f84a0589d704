package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cperes/tickerpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// ErrQueryFailed marks failures of the underlying query executor
// (connectivity, malformed SQL, timeouts). It is distinct from the
// not-found outcome, which repository methods report as (nil, nil).
var ErrQueryFailed = errors.New("query execution failed")

func queryFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrQueryFailed, err)
}

// CompanyRepository defines the contract for DB operations on companies,
// scores and close prices.
type CompanyRepository interface {
	ListTickerRows(ctx context.Context, q models.TickerQuery) ([]models.TickerRow, error)
	GetCompanyByTicker(ctx context.Context, ticker string) (*models.Company, error)
	GetScoreByID(ctx context.Context, id int64) (*models.Score, error)
	GetClosePrices(ctx context.Context, companyID int64, window models.DateWindow) ([]models.ClosePrice, error)
	GetLatestClosePrice(ctx context.Context, companyID int64) (*models.ClosePrice, error)

	InsertCompanies(ctx context.Context, companies []models.Company) error
	InsertScores(ctx context.Context, scores []models.Score) error
	InsertClosePrices(ctx context.Context, prices []models.ClosePrice) error
	DeleteAllCompanies(ctx context.Context) error
	DeleteAllScores(ctx context.Context) error
	DeleteAllClosePrices(ctx context.Context) error
	HasSeedForFile(ctx context.Context, filename string) (bool, error)
	UpsertSeedLog(ctx context.Context, filename string, rowCount int) error
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// ListTickerRows executes the list-tickers statement for q and returns the
// flat rows in the order the statement produced them. The caller reduces
// them into per-company views; this method does no grouping.
func (r *companyRepository) ListTickerRows(ctx context.Context, q models.TickerQuery) ([]models.TickerRow, error) {
	query, args := listTickersQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed("list ticker rows", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.TickerRow
	for rows.Next() {
		var (
			row   models.TickerRow
			total sql.NullFloat64
			price sql.NullFloat64
			date  sql.NullTime
		)

		if q.IncludePrices {
			err = rows.Scan(&row.ID, &row.TickerSymbol, &row.Name, &row.ExchangeSymbol, &total, &price, &date)
		} else {
			err = rows.Scan(&row.ID, &row.TickerSymbol, &row.Name, &row.ExchangeSymbol, &total)
		}
		if err != nil {
			return nil, queryFailed("scan ticker row", err)
		}

		if total.Valid {
			row.ScoreTotal = &total.Float64
		}
		if price.Valid {
			row.Price = &price.Float64
		}
		if date.Valid {
			row.Date = &date.Time
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("list ticker rows", err)
	}

	return out, nil
}

// GetCompanyByTicker looks up exactly one company by exact ticker symbol
// match. An unknown ticker returns (nil, nil); not-found is data here, not
// an error.
func (r *companyRepository) GetCompanyByTicker(ctx context.Context, ticker string) (*models.Company, error) {
	var (
		c       models.Company
		scoreID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, ticker_symbol, name, exchange_symbol, score_id FROM companies WHERE ticker_symbol = $1`,
		ticker,
	).Scan(&c.ID, &c.TickerSymbol, &c.Name, &c.ExchangeSymbol, &scoreID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, queryFailed("get company by ticker", err)
	}
	if scoreID.Valid {
		c.ScoreID = &scoreID.Int64
	}
	return &c, nil
}

// GetScoreByID returns the score row referenced by a company's score_id,
// or (nil, nil) when no such row exists.
func (r *companyRepository) GetScoreByID(ctx context.Context, id int64) (*models.Score, error) {
	var s models.Score
	err := r.db.QueryRowContext(ctx,
		`SELECT id, total FROM company_scores WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, queryFailed("get score by id", err)
	}
	return &s, nil
}

// GetClosePrices returns a company's observations inside the inclusive
// window, ascending by date. No observations yields an empty slice.
func (r *companyRepository) GetClosePrices(ctx context.Context, companyID int64, window models.DateWindow) ([]models.ClosePrice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT company_id, date, price FROM close_prices WHERE company_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC`,
		companyID, window.Start, window.End,
	)
	if err != nil {
		return nil, queryFailed("get close prices", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ClosePrice
	for rows.Next() {
		var p models.ClosePrice
		if err := rows.Scan(&p.CompanyID, &p.Date, &p.Price); err != nil {
			return nil, queryFailed("scan close price", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("get close prices", err)
	}
	return out, nil
}

// GetLatestClosePrice returns a company's most recent observation, or
// (nil, nil) when it has none at all.
func (r *companyRepository) GetLatestClosePrice(ctx context.Context, companyID int64) (*models.ClosePrice, error) {
	var p models.ClosePrice
	err := r.db.QueryRowContext(ctx,
		`SELECT company_id, date, price FROM close_prices WHERE company_id = $1 ORDER BY date DESC LIMIT 1`,
		companyID,
	).Scan(&p.CompanyID, &p.Date, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, queryFailed("get latest close price", err)
	}
	return &p, nil
}

// InsertCompanies bulk-inserts companies in a single transaction using
// COPY. Used by the seed loader only; the API surface is read-only.
func (r *companyRepository) InsertCompanies(ctx context.Context, companies []models.Company) error {
	return r.copyIn(ctx,
		pq.CopyIn("companies", "id", "ticker_symbol", "name", "exchange_symbol", "score_id"),
		len(companies),
		func(stmt *sql.Stmt, i int) error {
			c := companies[i]
			var scoreID interface{}
			if c.ScoreID != nil {
				scoreID = *c.ScoreID
			}
			_, err := stmt.ExecContext(ctx, c.ID, c.TickerSymbol, c.Name, c.ExchangeSymbol, scoreID)
			return err
		},
	)
}

// InsertScores bulk-inserts score rows in a single transaction.
func (r *companyRepository) InsertScores(ctx context.Context, scores []models.Score) error {
	return r.copyIn(ctx,
		pq.CopyIn("company_scores", "id", "total"),
		len(scores),
		func(stmt *sql.Stmt, i int) error {
			_, err := stmt.ExecContext(ctx, scores[i].ID, scores[i].Total)
			return err
		},
	)
}

// InsertClosePrices bulk-inserts close-price observations in a single
// transaction.
func (r *companyRepository) InsertClosePrices(ctx context.Context, prices []models.ClosePrice) error {
	return r.copyIn(ctx,
		pq.CopyIn("close_prices", "company_id", "date", "price"),
		len(prices),
		func(stmt *sql.Stmt, i int) error {
			p := prices[i]
			_, err := stmt.ExecContext(ctx, p.CompanyID, p.Date, p.Price)
			return err
		},
	)
}

// copyIn runs one COPY statement for n rows inside a transaction.
func (r *companyRepository) copyIn(ctx context.Context, copyStmt string, n int, exec func(stmt *sql.Stmt, i int) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, copyStmt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	// flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// DeleteAllCompanies removes every company row. Used by forced re-seeds.
func (r *companyRepository) DeleteAllCompanies(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM companies`)
	return err
}

// DeleteAllScores removes every score row. Used by forced re-seeds.
func (r *companyRepository) DeleteAllScores(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM company_scores`)
	return err
}

// DeleteAllClosePrices removes every close-price row. Used by forced re-seeds.
func (r *companyRepository) DeleteAllClosePrices(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM close_prices`)
	return err
}

// HasSeedForFile checks whether a seed file was already loaded.
func (r *companyRepository) HasSeedForFile(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM seed_log WHERE filename = $1)`,
		filename,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertSeedLog records (or updates) a seed entry for a given file.
func (r *companyRepository) UpsertSeedLog(ctx context.Context, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO seed_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  seeded_at = NOW()
	`, filename, rowCount)
	return err
}
