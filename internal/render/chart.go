package render

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"StockInsight/internal/model"
)

const dateLayout = "2006-01-02"

var (
	colorCoral   = drawing.ColorFromHex("ff7f50")
	colorBlue    = drawing.ColorFromHex("1f77b4")
	colorSkyBlue = drawing.ColorFromHex("87ceeb")

	// ends of the Blues ramp at 0.4 and 1.0
	bluesLight = drawing.ColorFromHex("94c4df")
	bluesDark  = drawing.ColorFromHex("08306b")
)

type lineSpec struct {
	title string
	yName string
	color drawing.Color
}

func (rd *Renderer) background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}}
}

func dateAxis(xs []time.Time) chart.XAxis {
	return chart.XAxis{
		Name:           "Date",
		ValueFormatter: chart.TimeValueFormatterWithFormat(dateLayout),
		Style:          chart.Style{TextRotationDegrees: 45},
		Range:          timeRange(xs),
	}
}

// splitPoints returns parallel date and value slices. go-chart needs two X values,
// so a single point is repeated one day later.
func splitPoints(points []model.Point) ([]time.Time, []float64) {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = p.Value
	}
	if len(points) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}
	return xs, ys
}

func timeRange(xs []time.Time) chart.Range {
	if len(xs) == 0 {
		return nil
	}
	minT, maxT := xs[0], xs[0]
	for _, t := range xs[1:] {
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
	}
	if !maxT.After(minT) {
		maxT = minT.Add(24 * time.Hour)
	}
	return &chart.ContinuousRange{Min: chart.TimeToFloat64(minT), Max: chart.TimeToFloat64(maxT)}
}

// valueRange pads a flat series so the axis never has zero width.
func valueRange(ys []float64, fromZero bool) chart.Range {
	if len(ys) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	minV, maxV := ys[0], ys[0]
	for _, v := range ys[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if fromZero && minV > 0 {
		minV = 0
	}
	if maxV <= minV {
		pad := 1.0
		if minV != 0 {
			pad = abs(minV) * 0.1
		}
		return &chart.ContinuousRange{Min: minV - pad, Max: maxV + pad}
	}
	if fromZero {
		return &chart.ContinuousRange{Min: minV, Max: maxV * 1.1}
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (rd *Renderer) line(w io.Writer, points []model.Point, spec lineSpec) error {
	if len(points) == 0 {
		return errEmptyResult
	}
	xs, ys := splitPoints(points)

	ch := chart.Chart{
		Title:      spec.title,
		Width:      rd.Width,
		Height:     rd.Height,
		Background: rd.background(),
		XAxis:      dateAxis(xs),
		YAxis:      chart.YAxis{Name: spec.yName, Range: valueRange(ys, false)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    spec.yName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: spec.color,
					StrokeWidth: 2,
					DotColor:    spec.color,
					DotWidth:    3,
				},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", spec.title, err)
	}
	return nil
}

func (rd *Renderer) volume(w io.Writer, points []model.Point) error {
	if len(points) == 0 {
		return errEmptyResult
	}
	xs, ys := splitPoints(points)

	ch := chart.Chart{
		Title:      "Trading Volume Over Time",
		Width:      rd.Width,
		Height:     rd.Height,
		Background: rd.background(),
		XAxis:      dateAxis(xs),
		YAxis: chart.YAxis{
			Name:           "Volume",
			Range:          valueRange(ys, true),
			ValueFormatter: volumeFormatter,
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name: "Volume",
				Style: chart.Style{
					StrokeColor: colorSkyBlue,
					FillColor:   colorSkyBlue,
				},
				InnerSeries: chart.TimeSeries{XValues: xs, YValues: ys},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render volume chart: %w", err)
	}
	return nil
}

func volumeFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func (rd *Renderer) topDays(w io.Writer, days []model.Record) error {
	if len(days) == 0 {
		return errEmptyResult
	}
	ramp := bluesRamp(len(days))
	bars := make([]chart.Value, len(days))
	maxClose := 0.0
	for i, d := range days {
		v := d.Close.InexactFloat64()
		if v > maxClose {
			maxClose = v
		}
		bars[i] = chart.Value{
			Value: v,
			Label: d.Date.Format(dateLayout),
			Style: chart.Style{FillColor: ramp[i], StrokeColor: ramp[i]},
		}
	}
	if maxClose <= 0 {
		maxClose = 1
	}

	barWidth := rd.Width / (2*len(bars) + 2)
	bc := chart.BarChart{
		Title:      "Top 5 Closing Prices",
		Width:      rd.Width,
		Height:     rd.Height,
		Background: rd.background(),
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		YAxis: chart.YAxis{
			Name:  "Closing Price",
			Range: &chart.ContinuousRange{Min: 0, Max: maxClose * 1.1},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render top days chart: %w", err)
	}
	return nil
}

// bluesRamp spreads n colors from the light end to the dark end of the ramp.
func bluesRamp(n int) []drawing.Color {
	out := make([]drawing.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lerp(bluesLight, bluesDark, t)
	}
	return out
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
