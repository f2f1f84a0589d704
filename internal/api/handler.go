package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cperes/tickerpulse/config"
	"github.com/cperes/tickerpulse/internal/domain/dto"
	"github.com/cperes/tickerpulse/internal/domain/models"
	"github.com/cperes/tickerpulse/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler provides HTTP handlers for the ticker endpoints.
//
// Responsibilities:
//   - Translate query-string parameters into a models.TickerQuery
//   - Interact with the service layer
//   - Translate service results into response DTOs with appropriate
//     HTTP status codes
//
// Input policy: malformed optional parameters (unparseable minScoreTotal,
// unrecognized sortBy/sortOrder, non-numeric page or dateWindowDays) fall
// back silently to their defaults rather than rejecting the request. The
// policy is inherited from the system this one replaces; the handler tests
// pin it down so it stays a decision, not an accident.
type Handler struct {
	svc   service.TickerService
	query config.QueryConfig
}

// NewHandler constructs a Handler with its service dependency and the
// query defaults from configuration.
func NewHandler(svc service.TickerService, query config.QueryConfig) *Handler {
	return &Handler{svc: svc, query: query}
}

// ListTickers handles GET /api/v1/tickers requests.
//
// ListTickers godoc
// @Summary      List tickers
// @Description  Returns companies with score totals, optionally with each company's windowed close-price series and volatility
// @Tags         tickers
// @Produce      json
// @Param        includePrices   query  bool    false  "Embed close-price series and volatility"  example(true)
// @Param        exchangeSymbol  query  string  false  "Exact-match exchange filter"              example(NasdaqGS)
// @Param        minScoreTotal   query  int     false  "Inclusive lower bound on score total"     example(10)
// @Param        dateWindowDays  query  int     false  "Length of the trailing price window in days"
// @Param        sortBy          query  string  false  "score or volatility"                      example(score)
// @Param        sortOrder       query  string  false  "asc or desc"                              example(desc)
// @Param        page            query  int     false  "1-based page number"                      example(1)
// @Success      200  {object}  dto.TickerListResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/tickers [get]
func (h *Handler) ListTickers(c *gin.Context) {
	q := models.TickerQuery{
		IncludePrices:  c.Query("includePrices") == "true",
		ExchangeSymbol: strings.TrimSpace(c.Query("exchangeSymbol")),
		SortBy:         models.ParseSortField(c.Query("sortBy")),
		SortOrder:      models.ParseSortOrder(c.Query("sortOrder")),
	}

	// must parse as an integer or is treated as absent
	if s := c.Query("minScoreTotal"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			q.MinScoreTotal = &n
		}
	}

	if s := c.Query("dateWindowDays"); s != "" {
		if days, err := strconv.Atoi(s); err == nil && days > 0 {
			start, end := h.query.WindowFor(days)
			q.Window = models.DateWindow{Start: start, End: end}
		}
	}

	q.Page = 1
	if s := c.Query("page"); s != "" {
		if page, err := strconv.Atoi(s); err == nil && page > 0 {
			q.Page = page
		}
	}

	views, err := h.svc.ListTickers(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch tickers", err))
		return
	}

	meta := dto.PageMeta{Page: q.Page}

	if q.IncludePrices {
		data := make([]dto.TickerPricesEntry, 0, len(views))
		for _, v := range views {
			data = append(data, dto.NewTickerPricesEntry(v))
		}
		c.JSON(http.StatusOK, dto.TickerPricesListResponse{Data: data, Meta: meta})
		return
	}

	data := make([]dto.TickerEntry, 0, len(views))
	for _, v := range views {
		data = append(data, dto.NewTickerEntry(v))
	}
	c.JSON(http.StatusOK, dto.TickerListResponse{Data: data, Meta: meta})
}

// GetTickerDetail handles GET /api/v1/tickers/:ticker requests.
//
// The ticker match is exact and case-sensitive. An unknown ticker is a 404
// whose body still has the contract shape ({data:null, closeData:null});
// only executor failures are 500s.
//
// GetTickerDetail godoc
// @Summary      Get ticker with close prices
// @Description  Returns one company and either its latest close price or the full windowed series
// @Tags         tickers
// @Produce      json
// @Param        ticker     path   string  true   "Ticker symbol"  example(AAPL)
// @Param        allPrices  query  bool    false  "Return the full ascending series inside the default window"
// @Success      200  {object}  dto.TickerDetailResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse         "Bad Request"
// @Failure      404  {object}  dto.TickerDetailResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/tickers/{ticker} [get]
func (h *Handler) GetTickerDetail(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}
	allPrices := c.Query("allPrices") == "true"

	detail, err := h.svc.TickerDetail(c.Request.Context(), ticker, allPrices)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch ticker", err))
		return
	}
	if detail.Company == nil {
		c.JSON(http.StatusNotFound, dto.TickerDetailResponse{})
		return
	}

	resp := dto.TickerDetailResponse{Data: detail.Company}
	switch {
	case allPrices:
		resp.CloseData = dto.NewPricePoints(detail.Series)
	case detail.Latest != nil:
		resp.CloseData = dto.NewPricePoint(*detail.Latest)
	}

	c.JSON(http.StatusOK, resp)
}

// GetTickerScore handles GET /api/v1/tickers/:ticker/score requests.
//
// A known company without a score row is a 200 with scoreData null.
//
// GetTickerScore godoc
// @Summary      Get ticker score
// @Description  Returns one company and its score row, when one exists
// @Tags         tickers
// @Produce      json
// @Param        ticker  path  string  true  "Ticker symbol"  example(AAPL)
// @Success      200  {object}  dto.TickerScoreResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse        "Bad Request"
// @Failure      404  {object}  dto.TickerScoreResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/tickers/{ticker}/score [get]
func (h *Handler) GetTickerScore(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}

	result, err := h.svc.TickerScore(c.Request.Context(), ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch ticker score", err))
		return
	}
	if result.Company == nil {
		c.JSON(http.StatusNotFound, dto.TickerScoreResponse{})
		return
	}

	c.JSON(http.StatusOK, dto.TickerScoreResponse{Data: result.Company, ScoreData: result.Score})
}
