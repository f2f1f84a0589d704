package service

import (
	"math"

	"github.com/cperes/tickerpulse/internal/domain/models"
)

// Volatility computes the dispersion of a company's close prices over its
// observation window: the population standard deviation of the price
// levels (not of day-over-day returns).
//
// Fewer than 2 observations carry no meaningful signal and yield 0; that
// is a normal outcome, not an error. The result is always a non-negative
// real number, never NaN.
func Volatility(prices []models.ClosePrice) float64 {
	if len(prices) < 2 {
		return 0
	}

	n := float64(len(prices))

	var sum float64
	for _, p := range prices {
		sum += p.Price
	}
	mean := sum / n

	var sq float64
	for _, p := range prices {
		d := p.Price - mean
		sq += d * d
	}
	variance := sq / n

	return math.Sqrt(variance)
}
