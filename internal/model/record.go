package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one trading day of the instrument, as read from the data file.
type Record struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// Point is a single (date, value) pair of a derived series.
type Point struct {
	Date  time.Time
	Value float64
}
