package service

import (
	"math"
	"testing"
	"time"

	"github.com/cperes/tickerpulse/internal/domain/models"
)

func prices(values ...float64) []models.ClosePrice {
	out := make([]models.ClosePrice, 0, len(values))
	base := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out = append(out, models.ClosePrice{CompanyID: 1, Date: base.AddDate(0, 0, i), Price: v})
	}
	return out
}

func TestVolatility_BelowTwoObservations(t *testing.T) {
	if v := Volatility(nil); v != 0 {
		t.Fatalf("Volatility(nil)=%v, want 0", v)
	}
	if v := Volatility([]models.ClosePrice{}); v != 0 {
		t.Fatalf("Volatility(empty)=%v, want 0", v)
	}
	if v := Volatility(prices(100)); v != 0 {
		t.Fatalf("Volatility(single)=%v, want 0", v)
	}
}

// The metric is the population standard deviation of the price levels,
// not of day-over-day returns.
func TestVolatility_PriceLevels(t *testing.T) {
	got := Volatility(prices(100, 102, 98, 101))

	// mean 100.25, variance 8.75/4 = 2.1875
	want := math.Sqrt(2.1875)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Volatility=%v, want %v", got, want)
	}
	if math.Abs(got-1.479) > 0.001 {
		t.Fatalf("Volatility=%v, want ~1.479", got)
	}
}

func TestVolatility_ConstantSeriesIsZero(t *testing.T) {
	if v := Volatility(prices(50, 50, 50)); v != 0 {
		t.Fatalf("Volatility(constant)=%v, want 0", v)
	}
}

func TestVolatility_NeverNaN(t *testing.T) {
	cases := [][]models.ClosePrice{
		nil,
		prices(0.0001),
		prices(1e12, 1e12, 1e12),
		prices(0.5, 1000000),
	}
	for _, c := range cases {
		v := Volatility(c)
		if math.IsNaN(v) || v < 0 {
			t.Fatalf("Volatility(%v)=%v, must be a non-negative real", c, v)
		}
	}
}
