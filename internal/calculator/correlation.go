package calculator

import (
	"math"

	"StockInsight/internal/model"
)

// Pearson returns the Pearson correlation coefficient of xs and ys.
// It returns NaN when there are fewer than two pairs or either side has zero variance.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return math.NaN()
	}
	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	r := cov / math.Sqrt(varX*varY)
	// clamp rounding drift
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// CorrelationMatrix builds the Pearson matrix over High, Low and Volume.
func CorrelationMatrix(records []model.Record) *model.CorrelationMatrix {
	cols := [3][]float64{
		make([]float64, len(records)),
		make([]float64, len(records)),
		make([]float64, len(records)),
	}
	for i, r := range records {
		cols[0][i] = r.High.InexactFloat64()
		cols[1][i] = r.Low.InexactFloat64()
		cols[2][i] = float64(r.Volume)
	}

	m := &model.CorrelationMatrix{Labels: [3]string{"High", "Low", "Volume"}}
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			var v float64
			if i == j {
				// self-correlation is 1 unless the column is constant
				v = Pearson(cols[i], cols[i])
				if !math.IsNaN(v) {
					v = 1
				}
			} else {
				v = Pearson(cols[i], cols[j])
			}
			m.Values[i][j] = v
			m.Values[j][i] = v
		}
	}
	return m
}
