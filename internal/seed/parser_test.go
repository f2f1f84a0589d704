package seed

import (
	"strings"
	"testing"
	"time"
)

func TestParseCompanies(t *testing.T) {
	in := strings.Join([]string{
		"id,ticker_symbol,name,exchange_symbol,score_id",
		"1,AAPL,Apple Inc.,NasdaqGS,10",
		"2,ZZZZ,No Score Co.,NYSE,",
	}, "\n")

	companies, err := ParseCompanies(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCompanies: %v", err)
	}
	if len(companies) != 2 {
		t.Fatalf("companies=%d, want 2", len(companies))
	}
	if companies[0].TickerSymbol != "AAPL" || companies[0].ScoreID == nil || *companies[0].ScoreID != 10 {
		t.Fatalf("first company wrong: %+v", companies[0])
	}
	if companies[1].ScoreID != nil {
		t.Fatalf("empty score_id must map to nil, got %+v", companies[1])
	}
}

func TestParseCompanies_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{name: "empty file", in: ""},
		{name: "bad id", in: "id,ticker_symbol,name,exchange_symbol,score_id\nx,AAPL,Apple,NasdaqGS,1"},
		{name: "bad score id", in: "id,ticker_symbol,name,exchange_symbol,score_id\n1,AAPL,Apple,NasdaqGS,x"},
		{name: "wrong field count", in: "id,ticker_symbol\n1,AAPL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCompanies(strings.NewReader(tc.in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseScores(t *testing.T) {
	in := "id,total\n10,17\n11,8.5"
	scores, err := ParseScores(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseScores: %v", err)
	}
	if len(scores) != 2 || scores[0].Total != 17 || scores[1].Total != 8.5 {
		t.Fatalf("unexpected scores: %+v", scores)
	}
}

func TestParsePrices(t *testing.T) {
	in := "company_id,date,price\n1,2020-05-21,120.5\n1,2020-05-22,121"
	prices, err := ParsePrices(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParsePrices: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("prices=%d, want 2", len(prices))
	}
	want := time.Date(2020, 5, 21, 0, 0, 0, 0, time.UTC)
	if !prices[0].Date.Equal(want) || prices[0].Price != 120.5 {
		t.Fatalf("first price wrong: %+v", prices[0])
	}
}

func TestParsePrices_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{name: "bad date", in: "company_id,date,price\n1,21/05/2020,120.5"},
		{name: "non-numeric price", in: "company_id,date,price\n1,2020-05-21,abc"},
		{name: "zero price", in: "company_id,date,price\n1,2020-05-21,0"},
		{name: "negative price", in: "company_id,date,price\n1,2020-05-21,-3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePrices(strings.NewReader(tc.in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
