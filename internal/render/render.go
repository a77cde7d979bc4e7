package render

import (
	"errors"
	"fmt"
	"io"

	"StockInsight/internal/model"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 500
)

var errEmptyResult = errors.New("nothing to render")

// Renderer draws insight results as PNG images.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a Renderer with the given size, falling back to the defaults for non-positive values.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// Render writes the PNG for r to w.
func (rd *Renderer) Render(w io.Writer, r *model.Result) error {
	if r == nil {
		return errEmptyResult
	}
	switch r.Insight {
	case model.InsightDailyRange:
		return rd.line(w, r.Points, lineSpec{
			title: "Daily Price Range Over Time",
			yName: "Price Range",
			color: colorCoral,
		})
	case model.InsightTrend:
		return rd.line(w, r.Points, lineSpec{
			title: "Stock Performance Trend",
			yName: "Closing Price",
			color: colorBlue,
		})
	case model.InsightVolume:
		return rd.volume(w, r.Points)
	case model.InsightTopDays:
		return rd.topDays(w, r.TopDays)
	case model.InsightCorrelation:
		return rd.heatmap(w, r.Correlation)
	default:
		return fmt.Errorf("no chart for insight %q", r.Insight)
	}
}
