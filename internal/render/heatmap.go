package render

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"StockInsight/internal/model"
)

// coolwarm anchors at -1, 0 and +1
var (
	coolLow  = color.RGBA{R: 59, G: 76, B: 192, A: 255}
	coolMid  = color.RGBA{R: 221, G: 221, B: 221, A: 255}
	coolHigh = color.RGBA{R: 180, G: 4, B: 38, A: 255}
	nanColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// coolwarm maps a correlation in [-1, 1] onto a diverging blue-red ramp.
func coolwarm(v float64) color.RGBA {
	if math.IsNaN(v) {
		return nanColor
	}
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return mixRGBA(coolMid, coolLow, -v)
	}
	return mixRGBA(coolMid, coolHigh, v)
}

func mixRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// textColor keeps annotations readable on saturated cells.
func textColor(bg color.RGBA) color.Color {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum < 128 {
		return color.White
	}
	return color.Black
}

func annotation(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func (rd *Renderer) heatmap(w io.Writer, m *model.CorrelationMatrix) error {
	if m == nil {
		return errEmptyResult
	}
	width, height := float64(rd.Width), float64(rd.Height)

	dc := gg.NewContext(rd.Width, rd.Height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(color.Black)
	dc.DrawStringAnchored("Correlation Heatmap", width/2, 20, 0.5, 0.5)

	const (
		top       = 44.0
		labelW    = 70.0
		labelH    = 24.0
		barW      = 18.0
		barGap    = 36.0
		barLabelW = 40.0
	)
	side := math.Min(height-top-labelH-10, width-labelW-barGap-barW-barLabelW-20)
	if side <= 0 {
		return fmt.Errorf("chart size %dx%d too small for heatmap", rd.Width, rd.Height)
	}
	cell := side / 3
	left := (width - (labelW + side + barGap + barW + barLabelW)) / 2
	gridX := left + labelW

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := m.Values[i][j]
			bg := coolwarm(v)
			x := gridX + float64(j)*cell
			y := top + float64(i)*cell

			dc.SetColor(bg)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()

			dc.SetColor(color.White)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Stroke()

			dc.SetColor(textColor(bg))
			dc.DrawStringAnchored(annotation(v), x+cell/2, y+cell/2, 0.5, 0.5)
		}
	}

	dc.SetColor(color.Black)
	for i, label := range m.Labels {
		dc.DrawStringAnchored(label, gridX-8, top+float64(i)*cell+cell/2, 1, 0.5)
		dc.DrawStringAnchored(label, gridX+float64(i)*cell+cell/2, top+side+labelH/2, 0.5, 0.5)
	}

	// color bar from +1 at the top to -1 at the bottom
	barX := gridX + side + barGap
	steps := int(side)
	for s := 0; s < steps; s++ {
		v := 1 - 2*float64(s)/float64(steps-1)
		dc.SetColor(coolwarm(v))
		dc.DrawRectangle(barX, top+float64(s), barW, 1)
		dc.Fill()
	}
	dc.SetColor(color.Black)
	for _, tick := range []float64{1, 0.5, 0, -0.5, -1} {
		y := top + (1-tick)/2*side
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", tick), barX+barW+6, y, 0, 0.5)
	}

	if err := png.Encode(w, dc.Image()); err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	return nil
}
