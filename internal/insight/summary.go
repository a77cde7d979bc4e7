package insight

import (
	"sort"

	"StockInsight/internal/calculator"
	"StockInsight/internal/model"
)

// Summarize computes the descriptive panel shown next to every insight.
// records must be already filtered to one year; their order does not matter.
func Summarize(records []model.Record) model.Summary {
	s := model.Summary{Rows: len(records)}
	if len(records) == 0 {
		return s
	}

	// files may be newest-first; indicators need oldest-first
	byDate := make([]model.Record, len(records))
	copy(byDate, records)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].Date.Before(byDate[j].Date)
	})

	s.FirstDate = byDate[0].Date
	s.LastDate = byDate[len(byDate)-1].Date
	s.LastClose = byDate[len(byDate)-1].Close

	// errors below only signal empty input, which is excluded above
	s.YearHigh, s.YearLow, _ = calculator.YearRange(byDate)
	s.AvgClose, _ = calculator.AverageClose(byDate)

	if ma, err := calculator.CloseSMA(byDate, 20); err == nil {
		s.SMA20 = ma
	}
	if rsi, err := calculator.RSI(byDate, 14); err == nil {
		s.RSI14 = rsi
	}
	return s
}
