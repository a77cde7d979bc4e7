package insight

import (
	"errors"

	"StockInsight/internal/calculator"
	"StockInsight/internal/model"
)

// TopN is how many days the closing-price ranking keeps.
const TopN = 5

// ErrNoData is returned when no record falls in the selected year.
var ErrNoData = errors.New("no data available for the selected year")

// IsValid reports whether name is one of the known insights.
func IsValid(name model.Insight) bool {
	for _, in := range model.Insights {
		if in == name {
			return true
		}
	}
	return false
}

// Compute filters records to year and computes the selected insight.
// It returns ErrNoData when the year is empty, and (nil, nil) for an unknown insight name.
func Compute(records []model.Record, year int, name model.Insight) (*model.Result, error) {
	filtered := calculator.FilterByYear(records, year)
	if len(filtered) == 0 {
		return nil, ErrNoData
	}

	res := &model.Result{Insight: name, Year: year}

	switch name {
	case model.InsightDailyRange:
		res.Kind = model.ChartLine
		res.Points = calculator.DailyRange(filtered)
	case model.InsightTrend:
		res.Kind = model.ChartLine
		res.Points = calculator.CloseSeries(filtered)
	case model.InsightVolume:
		res.Kind = model.ChartBar
		res.Points = calculator.VolumeSeries(filtered)
	case model.InsightTopDays:
		res.Kind = model.ChartBar
		res.TopDays = calculator.TopNByClose(filtered, TopN)
	case model.InsightCorrelation:
		res.Kind = model.ChartHeatmap
		res.Correlation = calculator.CorrelationMatrix(filtered)
	default:
		return nil, nil
	}

	res.Summary = Summarize(filtered)
	return res, nil
}
