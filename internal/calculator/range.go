package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"StockInsight/internal/model"
)

// DailyRange returns High-Low for every record, paired with its date, in row order.
func DailyRange(records []model.Record) []model.Point {
	points := make([]model.Point, len(records))
	for i, r := range records {
		points[i] = model.Point{
			Date:  r.Date,
			Value: r.High.Sub(r.Low).InexactFloat64(),
		}
	}
	return points
}

// YearRange scans the records and returns the highest High and the lowest Low.
func YearRange(records []model.Record) (high, low decimal.Decimal, err error) {
	if len(records) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no records provided")
	}
	high = records[0].High
	low = records[0].Low
	for _, r := range records[1:] {
		if r.High.GreaterThan(high) {
			high = r.High
		}
		if r.Low.LessThan(low) {
			low = r.Low
		}
	}
	return high, low, nil
}

// AverageClose returns the arithmetic mean of closing prices.
func AverageClose(records []model.Record) (decimal.Decimal, error) {
	if len(records) == 0 {
		return decimal.Zero, errors.New("no records provided")
	}
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Close)
	}
	return sum.Div(decimal.NewFromInt(int64(len(records)))), nil
}
