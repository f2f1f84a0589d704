package service

import (
	"context"
	"sort"

	"github.com/cperes/tickerpulse/config"
	"github.com/cperes/tickerpulse/internal/domain/models"
	"github.com/cperes/tickerpulse/internal/storage"
)

// TickerService defines the business logic for the three public ticker
// operations. All methods are read-only; every invocation builds fresh
// request-scoped results and shares no aggregation state.
//
// Not-found is data, never an error: TickerDetail and TickerScore report an
// unknown ticker through a nil Company. Errors only surface when the query
// executor itself fails (storage.ErrQueryFailed).
type TickerService interface {
	ListTickers(ctx context.Context, q models.TickerQuery) ([]models.CompanyView, error)
	TickerDetail(ctx context.Context, ticker string, allPrices bool) (TickerDetail, error)
	TickerScore(ctx context.Context, ticker string) (TickerScore, error)
}

// TickerDetail is the result of the ticker-with-close-prices operation.
// Exactly one of Latest/Series is populated: Latest when only the most
// recent observation was requested, Series (ascending by date, restricted
// to the default window) when the full history was.
type TickerDetail struct {
	Company *models.Company
	Latest  *models.ClosePrice
	Series  []models.ClosePrice
}

// TickerScore is the result of the ticker-with-score operation. Score is
// nil when the company has no score row; that is not an error.
type TickerScore struct {
	Company *models.Company
	Score   *models.Score
}

type tickerService struct {
	repo storage.CompanyRepository
	cfg  config.QueryConfig
}

func NewTickerService(repo storage.CompanyRepository, cfg config.QueryConfig) TickerService {
	return &tickerService{repo: repo, cfg: cfg}
}

// ListTickers runs the full aggregation pipeline: build and execute the
// list statement, reduce the flat rows into per-company views, annotate
// volatility when prices were requested, apply the in-memory volatility
// sort when the requested key could not be pushed down, and slice out the
// requested page.
func (s *tickerService) ListTickers(ctx context.Context, q models.TickerQuery) ([]models.CompanyView, error) {
	q = q.Normalized()
	if q.Window.Start.IsZero() || q.Window.End.IsZero() {
		start, end := s.cfg.Window()
		q.Window = models.DateWindow{Start: start, End: end}
	}

	rows, err := s.repo.ListTickerRows(ctx, q)
	if err != nil {
		return nil, err
	}

	views := reduceRows(rows, q.IncludePrices)

	if q.IncludePrices {
		for i := range views {
			views[i].Volatility = Volatility(views[i].Prices)
		}
	}

	orderViews(views, q)

	return paginate(views, q.Page, s.cfg.ListPerPage), nil
}

// reduceRows collapses the flat join result into one view per company, in
// first-seen order of each company id.
//
// The list statement emits a company's rows contiguously (it orders by
// c.id), but the reduction does not depend on that: lookup is by id, so
// interleaved rows would land on the right view regardless. A row with
// NULL price columns still establishes its company, which is how a company
// with zero observations in the window stays in the output.
func reduceRows(rows []models.TickerRow, includePrices bool) []models.CompanyView {
	byID := make(map[int64]int, len(rows))
	views := make([]models.CompanyView, 0, len(rows))

	for _, row := range rows {
		idx, seen := byID[row.ID]
		if !seen {
			v := models.CompanyView{
				ID:             row.ID,
				TickerSymbol:   row.TickerSymbol,
				Name:           row.Name,
				ExchangeSymbol: row.ExchangeSymbol,
				ScoreTotal:     row.ScoreTotal,
			}
			if includePrices {
				v.Prices = []models.ClosePrice{}
			}
			views = append(views, v)
			idx = len(views) - 1
			byID[row.ID] = idx
		}

		if row.Price != nil && row.Date != nil {
			views[idx].Prices = append(views[idx].Prices, models.ClosePrice{
				CompanyID: row.ID,
				Date:      *row.Date,
				Price:     *row.Price,
			})
		}
	}

	return views
}

// orderViews applies the final ordering. A score sort was already pushed
// down into the statement, so it passes through untouched; re-sorting here
// would discard the push-down's id tiebreak. A volatility sort has to
// happen in memory, and the sort is stable so equal-volatility companies
// keep their first-seen relative order.
func orderViews(views []models.CompanyView, q models.TickerQuery) {
	if q.SortBy != models.SortByVolatility {
		return
	}
	sort.SliceStable(views, func(i, j int) bool {
		if q.SortOrder == models.OrderDesc {
			return views[i].Volatility > views[j].Volatility
		}
		return views[i].Volatility < views[j].Volatility
	})
}

// paginate slices out the requested 1-based page. Pages past the end are
// empty, never an error.
func paginate(views []models.CompanyView, page, perPage int) []models.CompanyView {
	start := (page - 1) * perPage
	if start >= len(views) {
		return []models.CompanyView{}
	}
	end := start + perPage
	if end > len(views) {
		end = len(views)
	}
	return views[start:end]
}

// TickerDetail looks up one company by exact ticker symbol match. When the
// ticker is unknown it returns an empty result with no error. With
// allPrices it fetches the full ascending series inside the default
// window; otherwise only the single most recent observation, window-free.
func (s *tickerService) TickerDetail(ctx context.Context, ticker string, allPrices bool) (TickerDetail, error) {
	company, err := s.repo.GetCompanyByTicker(ctx, ticker)
	if err != nil {
		return TickerDetail{}, err
	}
	if company == nil {
		return TickerDetail{}, nil
	}

	out := TickerDetail{Company: company}

	if allPrices {
		start, end := s.cfg.Window()
		series, err := s.repo.GetClosePrices(ctx, company.ID, models.DateWindow{Start: start, End: end})
		if err != nil {
			return TickerDetail{}, err
		}
		out.Series = series
		return out, nil
	}

	latest, err := s.repo.GetLatestClosePrice(ctx, company.ID)
	if err != nil {
		return TickerDetail{}, err
	}
	out.Latest = latest
	return out, nil
}

// TickerScore looks up one company and, when it references a score row,
// that row. A company without a score yields a nil Score.
func (s *tickerService) TickerScore(ctx context.Context, ticker string) (TickerScore, error) {
	company, err := s.repo.GetCompanyByTicker(ctx, ticker)
	if err != nil {
		return TickerScore{}, err
	}
	if company == nil {
		return TickerScore{}, nil
	}

	out := TickerScore{Company: company}
	if company.ScoreID == nil {
		return out, nil
	}

	score, err := s.repo.GetScoreByID(ctx, *company.ScoreID)
	if err != nil {
		return TickerScore{}, err
	}
	out.Score = score
	return out, nil
}
