package calculator

import (
	"math"

	"StockInsight/internal/model"
)

// NeutralRSI is reported while there are too few rows to seed the averages.
const NeutralRSI = 50.0

// RSI is Wilder's relative strength index of closing prices.
// Rows must be in ascending date order.
func RSI(records []model.Record, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrBadPeriod
	}
	c := closes(records)
	if len(c) <= period {
		return NeutralRSI, nil
	}

	moves := make([]float64, len(c)-1)
	for i := 1; i < len(c); i++ {
		moves[i-1] = c[i] - c[i-1]
	}

	p := float64(period)
	var up, down float64
	for _, m := range moves[:period] {
		up += math.Max(m, 0)
		down += math.Max(-m, 0)
	}
	up /= p
	down /= p

	for _, m := range moves[period:] {
		up = (up*(p-1) + math.Max(m, 0)) / p
		down = (down*(p-1) + math.Max(-m, 0)) / p
	}

	if down == 0 {
		return 100, nil
	}
	return 100 - 100/(1+up/down), nil
}
