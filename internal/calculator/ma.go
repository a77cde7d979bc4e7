package calculator

import (
	"errors"
	"fmt"

	"StockInsight/internal/model"
)

var (
	ErrBadPeriod   = errors.New("period must be positive")
	ErrShortSeries = errors.New("series shorter than period")
)

// SMA averages the trailing period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrBadPeriod
	}
	if len(values) < period {
		return 0, fmt.Errorf("%w: %d < %d", ErrShortSeries, len(values), period)
	}
	var sum float64
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), nil
}

// CloseSMA is the SMA of closing prices over the trailing period rows.
// Rows must be in ascending date order.
func CloseSMA(records []model.Record, period int) (float64, error) {
	return SMA(closes(records), period)
}

func closes(records []model.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Close.InexactFloat64()
	}
	return out
}
