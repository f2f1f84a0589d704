package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cperes/tickerpulse/config"
	"github.com/cperes/tickerpulse/internal/domain/dto"
	"github.com/cperes/tickerpulse/internal/domain/models"
	"github.com/cperes/tickerpulse/internal/service"
	"github.com/gin-gonic/gin"
)

type mockTickerService struct {
	views     []models.CompanyView
	detail    service.TickerDetail
	score     service.TickerScore
	err       error
	gotQuery  models.TickerQuery
	gotTicker string
	gotAll    bool
}

func (m *mockTickerService) ListTickers(_ context.Context, q models.TickerQuery) ([]models.CompanyView, error) {
	m.gotQuery = q
	return m.views, m.err
}

func (m *mockTickerService) TickerDetail(_ context.Context, ticker string, allPrices bool) (service.TickerDetail, error) {
	m.gotTicker = ticker
	m.gotAll = allPrices
	return m.detail, m.err
}

func (m *mockTickerService) TickerScore(_ context.Context, ticker string) (service.TickerScore, error) {
	m.gotTicker = ticker
	return m.score, m.err
}

var _ service.TickerService = (*mockTickerService)(nil)

func setupRouterWithMock(s service.TickerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, config.QueryConfig{
		ChartingIntervalDays: 90,
		ListPerPage:          15,
		AsOf:                 time.Date(2020, 5, 22, 0, 0, 0, 0, time.UTC),
	})
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/tickers", h.ListTickers)
	v1.GET("/tickers/:ticker", h.GetTickerDetail)
	v1.GET("/tickers/:ticker/score", h.GetTickerScore)
	return r
}

func perform(t *testing.T, r *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListTickers_TableDriven(t *testing.T) {
	total := 17.0
	views := []models.CompanyView{
		{ID: 1, TickerSymbol: "AAPL", Name: "Apple Inc.", ExchangeSymbol: "NasdaqGS", ScoreTotal: &total},
	}

	cases := []struct {
		name   string
		svc    *mockTickerService
		query  string
		status int
		assert func(t *testing.T, svc *mockTickerService, body []byte)
	}{
		{
			name:   "defaults",
			svc:    &mockTickerService{views: views},
			query:  "/api/v1/tickers",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockTickerService, body []byte) {
				q := svc.gotQuery
				if q.IncludePrices || q.ExchangeSymbol != "" || q.MinScoreTotal != nil {
					t.Fatalf("unexpected defaults: %+v", q)
				}
				if q.SortBy != models.SortByScore || q.SortOrder != models.OrderAsc || q.Page != 1 {
					t.Fatalf("unexpected defaults: %+v", q)
				}
				var out dto.TickerListResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out.Data) != 1 || out.Data[0].TickerSymbol != "AAPL" || out.Meta.Page != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "all filters",
			svc:    &mockTickerService{views: views},
			query:  "/api/v1/tickers?exchangeSymbol=NasdaqGS&minScoreTotal=10&sortBy=volatility&sortOrder=desc&page=2&dateWindowDays=30",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockTickerService, _ []byte) {
				q := svc.gotQuery
				if q.ExchangeSymbol != "NasdaqGS" || q.MinScoreTotal == nil || *q.MinScoreTotal != 10 {
					t.Fatalf("filters not mapped: %+v", q)
				}
				if q.SortBy != models.SortByVolatility || q.SortOrder != models.OrderDesc || q.Page != 2 {
					t.Fatalf("sort or page not mapped: %+v", q)
				}
				wantEnd := time.Date(2020, 5, 22, 0, 0, 0, 0, time.UTC)
				if !q.Window.End.Equal(wantEnd) || !q.Window.Start.Equal(wantEnd.AddDate(0, 0, -30)) {
					t.Fatalf("window not mapped: %+v", q.Window)
				}
			},
		},
		{
			name:   "malformed params fall back silently",
			svc:    &mockTickerService{views: views},
			query:  "/api/v1/tickers?minScoreTotal=abc&sortBy=banana&sortOrder=sideways&page=-3&dateWindowDays=x&includePrices=1",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockTickerService, _ []byte) {
				q := svc.gotQuery
				if q.MinScoreTotal != nil {
					t.Fatalf("unparseable minScoreTotal must be absent: %+v", q)
				}
				if q.SortBy != models.SortByScore || q.SortOrder != models.OrderAsc || q.Page != 1 {
					t.Fatalf("silent defaults broken: %+v", q)
				}
				if q.IncludePrices {
					t.Fatalf("includePrices=1 must not count as true")
				}
				if !q.Window.Start.IsZero() {
					t.Fatalf("bad dateWindowDays must leave the window to the service: %+v", q.Window)
				}
			},
		},
		{
			name: "with prices",
			svc: &mockTickerService{views: []models.CompanyView{{
				ID: 1, TickerSymbol: "AAPL", Name: "Apple Inc.", ExchangeSymbol: "NasdaqGS",
				ScoreTotal: &total,
				Prices: []models.ClosePrice{
					{CompanyID: 1, Date: time.Date(2020, 5, 21, 0, 0, 0, 0, time.UTC), Price: 120.5},
				},
				Volatility: 1.25,
			}}},
			query:  "/api/v1/tickers?includePrices=true",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockTickerService, body []byte) {
				var out dto.TickerPricesListResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out.Data) != 1 || out.Data[0].Volatility != 1.25 {
					t.Fatalf("unexpected body: %+v", out)
				}
				if len(out.Data[0].Prices) != 1 || out.Data[0].Prices[0].Date != "2020-05-21" {
					t.Fatalf("unexpected prices: %+v", out.Data[0].Prices)
				}
			},
		},
		{
			name: "with prices but empty window marshals as empty array",
			svc: &mockTickerService{views: []models.CompanyView{{
				ID: 1, TickerSymbol: "EMPT", Name: "Empty Co.", ExchangeSymbol: "NasdaqGS",
				Prices: []models.ClosePrice{},
			}}},
			query:  "/api/v1/tickers?includePrices=true",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockTickerService, body []byte) {
				if !strings.Contains(string(body), `"prices":[]`) {
					t.Fatalf("empty series must marshal as [], got %s", body)
				}
				if !strings.Contains(string(body), `"score_total":null`) {
					t.Fatalf("missing score must marshal as null, got %s", body)
				}
			},
		},
		{
			name:   "without prices the entries carry no price keys",
			svc:    &mockTickerService{views: views},
			query:  "/api/v1/tickers",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockTickerService, body []byte) {
				if strings.Contains(string(body), `"prices"`) || strings.Contains(string(body), `"volatility"`) {
					t.Fatalf("price keys must be absent without includePrices, got %s", body)
				}
			},
		},
		{
			name:   "internal error",
			svc:    &mockTickerService{err: errors.New("db down")},
			query:  "/api/v1/tickers",
			status: http.StatusInternalServerError,
			assert: func(t *testing.T, _ *mockTickerService, body []byte) {
				var out dto.ErrorResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Message == "" {
					t.Fatalf("error body missing message: %s", body)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := perform(t, r, tc.query)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetTickerDetail_TableDriven(t *testing.T) {
	company := &models.Company{ID: 1, TickerSymbol: "AAPL", Name: "Apple Inc.", ExchangeSymbol: "NasdaqGS"}
	latest := &models.ClosePrice{CompanyID: 1, Date: time.Date(2020, 5, 22, 0, 0, 0, 0, time.UTC), Price: 121.0}

	cases := []struct {
		name   string
		svc    *mockTickerService
		query  string
		status int
		assert func(t *testing.T, svc *mockTickerService, body []byte)
	}{
		{
			name:   "not found keeps body shape",
			svc:    &mockTickerService{},
			query:  "/api/v1/tickers/UNKNOWN",
			status: http.StatusNotFound,
			assert: func(t *testing.T, _ *mockTickerService, body []byte) {
				if !strings.Contains(string(body), `"data":null`) || !strings.Contains(string(body), `"closeData":null`) {
					t.Fatalf("not-found body must keep nulls, got %s", body)
				}
			},
		},
		{
			name:   "match is case sensitive",
			svc:    &mockTickerService{detail: service.TickerDetail{Company: company, Latest: latest}},
			query:  "/api/v1/tickers/aapl",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockTickerService, _ []byte) {
				if svc.gotTicker != "aapl" {
					t.Fatalf("ticker must pass through unmodified, got %q", svc.gotTicker)
				}
			},
		},
		{
			name:   "latest observation",
			svc:    &mockTickerService{detail: service.TickerDetail{Company: company, Latest: latest}},
			query:  "/api/v1/tickers/AAPL",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockTickerService, body []byte) {
				if svc.gotAll {
					t.Fatalf("allPrices must default to false")
				}
				var out struct {
					Data      *models.Company `json:"data"`
					CloseData dto.PricePoint  `json:"closeData"`
				}
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Data == nil || out.CloseData.Date != "2020-05-22" || out.CloseData.Price != 121.0 {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
		{
			name: "full series",
			svc: &mockTickerService{detail: service.TickerDetail{Company: company, Series: []models.ClosePrice{
				{CompanyID: 1, Date: time.Date(2020, 5, 21, 0, 0, 0, 0, time.UTC), Price: 120.5},
				{CompanyID: 1, Date: time.Date(2020, 5, 22, 0, 0, 0, 0, time.UTC), Price: 121.0},
			}}},
			query:  "/api/v1/tickers/AAPL?allPrices=true",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockTickerService, body []byte) {
				if !svc.gotAll {
					t.Fatalf("allPrices=true not forwarded")
				}
				var out struct {
					CloseData []dto.PricePoint `json:"closeData"`
				}
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out.CloseData) != 2 || out.CloseData[0].Date != "2020-05-21" {
					t.Fatalf("unexpected series: %s", body)
				}
			},
		},
		{
			name:   "company with no observations",
			svc:    &mockTickerService{detail: service.TickerDetail{Company: company}},
			query:  "/api/v1/tickers/AAPL",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockTickerService, body []byte) {
				if !strings.Contains(string(body), `"closeData":null`) {
					t.Fatalf("missing latest must marshal as null, got %s", body)
				}
			},
		},
		{
			name:   "internal error",
			svc:    &mockTickerService{err: errors.New("db down")},
			query:  "/api/v1/tickers/AAPL",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := perform(t, r, tc.query)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetTickerScore_TableDriven(t *testing.T) {
	scoreID := int64(7)
	company := &models.Company{ID: 1, TickerSymbol: "AAPL", Name: "Apple Inc.", ExchangeSymbol: "NasdaqGS", ScoreID: &scoreID}

	cases := []struct {
		name   string
		svc    *mockTickerService
		query  string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "not found keeps body shape",
			svc:    &mockTickerService{},
			query:  "/api/v1/tickers/UNKNOWN/score",
			status: http.StatusNotFound,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `"data":null`) || !strings.Contains(string(body), `"scoreData":null`) {
					t.Fatalf("not-found body must keep nulls, got %s", body)
				}
			},
		},
		{
			name:   "with score",
			svc:    &mockTickerService{score: service.TickerScore{Company: company, Score: &models.Score{ID: 7, Total: 17}}},
			query:  "/api/v1/tickers/AAPL/score",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.TickerScoreResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Data == nil || out.ScoreData == nil || out.ScoreData.Total != 17 {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
		{
			name:   "company without score row is still a 200",
			svc:    &mockTickerService{score: service.TickerScore{Company: company}},
			query:  "/api/v1/tickers/AAPL/score",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				if !strings.Contains(string(body), `"scoreData":null`) {
					t.Fatalf("missing score must marshal as null, got %s", body)
				}
			},
		},
		{
			name:   "internal error",
			svc:    &mockTickerService{err: errors.New("db down")},
			query:  "/api/v1/tickers/AAPL/score",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := perform(t, r, tc.query)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}
