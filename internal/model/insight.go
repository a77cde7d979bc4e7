package model

// Insight names one of the fixed computation modes offered by the dashboard.
type Insight string

const (
	InsightDailyRange  Insight = "Daily Price Range"
	InsightTrend       Insight = "Stock Performance Trend"
	InsightVolume      Insight = "Volume Over Time"
	InsightTopDays     Insight = "Top N Days by Closing Price"
	InsightCorrelation Insight = "Correlation Between High, Low, and Volume"
)

// Insights lists every valid insight in selector order.
var Insights = []Insight{
	InsightDailyRange,
	InsightTrend,
	InsightVolume,
	InsightTopDays,
	InsightCorrelation,
}

// ChartKind tells the renderer how to draw a result.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartBar     ChartKind = "bar"
	ChartHeatmap ChartKind = "heatmap"
)
