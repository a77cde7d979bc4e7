package calculator

import (
	"sort"

	"StockInsight/internal/model"
)

// FilterByYear returns the records dated in the given calendar year, keeping row order.
func FilterByYear(records []model.Record, year int) []model.Record {
	var out []model.Record
	for _, r := range records {
		if r.Date.Year() == year {
			out = append(out, r)
		}
	}
	return out
}

// CloseSeries pairs each record's date with its closing price.
func CloseSeries(records []model.Record) []model.Point {
	points := make([]model.Point, len(records))
	for i, r := range records {
		points[i] = model.Point{Date: r.Date, Value: r.Close.InexactFloat64()}
	}
	return points
}

// VolumeSeries pairs each record's date with its traded volume.
func VolumeSeries(records []model.Record) []model.Point {
	points := make([]model.Point, len(records))
	for i, r := range records {
		points[i] = model.Point{Date: r.Date, Value: float64(r.Volume)}
	}
	return points
}

// TopNByClose returns the n records with the largest Close, highest first.
// Equal closes keep their original row order.
func TopNByClose(records []model.Record, n int) []model.Record {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Close.GreaterThan(sorted[j].Close)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
