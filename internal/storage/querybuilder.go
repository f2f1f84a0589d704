package storage

import (
	"fmt"
	"strings"

	"github.com/cperes/tickerpulse/internal/domain/models"
)

// fragment is one piece of SQL text plus the values bound to its `?`
// placeholders, in order of appearance.
type fragment struct {
	sql  string
	args []interface{}
}

// selectBuilder assembles a parameterized SELECT statement from a
// projection, join clauses, a predicate list and order keys.
//
// Fragments are written with `?` placeholders; Build rewrites them into
// Postgres positional parameters ($1, $2, ...) in text order, so the
// returned args line up with the statement no matter which clauses were
// added. Values never end up concatenated into the statement text.
//
// The builder is deterministic: the same sequence of calls yields the same
// statement text and the same parameter order.
type selectBuilder struct {
	columns []string
	from    string
	joins   []fragment
	preds   []fragment
	orderBy []string
}

func newSelect(from string, columns ...string) *selectBuilder {
	return &selectBuilder{from: from, columns: columns}
}

// Column appends a projected column.
func (b *selectBuilder) Column(expr string) *selectBuilder {
	b.columns = append(b.columns, expr)
	return b
}

// Join appends a join clause. Placeholder values (e.g. the bounds of a
// filtered subquery) are bound positionally at Build time.
func (b *selectBuilder) Join(clause string, args ...interface{}) *selectBuilder {
	b.joins = append(b.joins, fragment{sql: clause, args: args})
	return b
}

// Where appends one predicate; predicates are ANDed together.
func (b *selectBuilder) Where(pred string, args ...interface{}) *selectBuilder {
	b.preds = append(b.preds, fragment{sql: pred, args: args})
	return b
}

// OrderBy appends one order key. The expression must not contain user
// input; callers pass fixed column expressions and a direction taken from
// the models.SortOrder enum.
func (b *selectBuilder) OrderBy(expr string) *selectBuilder {
	b.orderBy = append(b.orderBy, expr)
	return b
}

// Build renders the statement and its positional parameter list.
func (b *selectBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	n := 0

	// rewrite `?` placeholders into $1..$n in text order
	number := func(f fragment) string {
		out := f.sql
		for range f.args {
			n++
			out = strings.Replace(out, "?", fmt.Sprintf("$%d", n), 1)
		}
		args = append(args, f.args...)
		return out
	}

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(number(j))
	}
	if len(b.preds) > 0 {
		sb.WriteString(" WHERE ")
		for i, p := range b.preds {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			sb.WriteString(number(p))
		}
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	return sb.String(), args
}

// listTickersQuery translates a normalized TickerQuery into the statement
// for the list operation.
//
// Base projection: company id, ticker symbol, name, exchange symbol and the
// left-joined score total. When q.IncludePrices is set, a pre-filtered
// close-price subquery restricted to the window is left-joined in, yielding
// one row per (company, matching date) or one row with NULL price columns
// for companies with no observation in the window.
//
// Ordering: a score sort is pushed down (Postgres default null ordering:
// NULLS LAST ascending, NULLS FIRST descending). A volatility sort cannot
// be pushed down (volatility only exists after aggregation), so only the
// deterministic c.id / p.date keys are emitted and the caller sorts in
// memory. The secondary keys also make identical queries return identical
// row order, which the idempotence contract of the list operation relies
// on.
func listTickersQuery(q models.TickerQuery) (string, []interface{}) {
	b := newSelect("companies c",
		"c.id", "c.ticker_symbol", "c.name", "c.exchange_symbol", "s.total",
	).Join("LEFT JOIN company_scores s ON s.id = c.score_id")

	if q.IncludePrices {
		b.Column("p.price").Column("p.date")
		b.Join(
			"LEFT JOIN (SELECT company_id, price, date FROM close_prices WHERE date >= ? AND date <= ?) p ON p.company_id = c.id",
			q.Window.Start, q.Window.End,
		)
	}

	if q.ExchangeSymbol != "" {
		b.Where("c.exchange_symbol = ?", q.ExchangeSymbol)
	}
	if q.MinScoreTotal != nil {
		// a NULL total never satisfies >=, so unscored companies drop out
		b.Where("s.total >= ?", *q.MinScoreTotal)
	}

	if q.SortBy == models.SortByScore {
		// direction comes from the closed SortOrder enum, never from raw input
		b.OrderBy("s.total " + strings.ToUpper(string(q.SortOrder)))
	}
	b.OrderBy("c.id ASC")
	if q.IncludePrices {
		b.OrderBy("p.date ASC")
	}

	return b.Build()
}
