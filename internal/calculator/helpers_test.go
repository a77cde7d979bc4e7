package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"StockInsight/internal/model"
)

func rec(date string, high, low, close string, volume int64) model.Record {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Record{
		Date:   d,
		Open:   decimal.RequireFromString(close),
		High:   decimal.RequireFromString(high),
		Low:    decimal.RequireFromString(low),
		Close:  decimal.RequireFromString(close),
		Volume: volume,
	}
}
