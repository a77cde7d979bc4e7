package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CorrelationMatrix is a square Pearson matrix; Values[i][j] pairs Labels[i] with Labels[j].
type CorrelationMatrix struct {
	Labels [3]string
	Values [3][3]float64
}

// Summary holds descriptive statistics of the filtered year.
type Summary struct {
	Rows      int
	FirstDate time.Time
	LastDate  time.Time
	YearHigh  decimal.Decimal
	YearLow   decimal.Decimal
	AvgClose  decimal.Decimal
	LastClose decimal.Decimal
	SMA20     float64 // 0 when fewer than 20 rows
	RSI14     float64
}

// Result is the output of one insight computation for one year.
type Result struct {
	Insight Insight
	Year    int
	Kind    ChartKind

	Points      []Point            // range, trend and volume series
	TopDays     []Record           // top-N by close, highest first
	Correlation *CorrelationMatrix // high/low/volume matrix

	Summary Summary
}
