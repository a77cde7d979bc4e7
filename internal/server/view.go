package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"StockInsight/internal/insight"
	"StockInsight/internal/model"
)

const dateLayout = "2006-01-02"

type insightOption struct {
	Name     string
	Selected bool
}

type topDayRow struct {
	Date  string
	Close string
}

type matrixRow struct {
	Label string
	Cells []string
}

type summaryView struct {
	Rows      string
	FirstDate string
	LastDate  string
	YearHigh  string
	YearLow   string
	AvgClose  string
	LastClose string
	SMA20     string
	RSI14     string
}

type pageData struct {
	Symbol    string
	Year      int
	MinYear   int
	MaxYear   int
	Options   []insightOption
	NoData    bool
	HasOutput bool
	Subheader string
	ChartURL  string
	TopDays   []topDayRow
	Labels    []string
	Matrix    []matrixRow
	Summary   *summaryView
	Source    string
	TotalRows string
	LoadedAgo string
}

func subheader(name model.Insight, year int) string {
	switch name {
	case model.InsightDailyRange:
		return "Daily Price Range (High - Low)"
	case model.InsightTrend:
		return "Stock Performance Trend (Closing Price)"
	case model.InsightVolume:
		return "Trading Volume Over Time"
	case model.InsightTopDays:
		return fmt.Sprintf("Top %d Days by Closing Price in %d", insight.TopN, year)
	default:
		return string(name)
	}
}

func chartURL(sel selection) string {
	q := url.Values{}
	q.Set("year", strconv.Itoa(sel.Year))
	q.Set("insight", string(sel.Insight))
	return "/chart.png?" + q.Encode()
}

func formatCorrelation(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func buildSummary(s model.Summary) *summaryView {
	sv := &summaryView{
		Rows:      humanize.Comma(int64(s.Rows)),
		FirstDate: s.FirstDate.Format(dateLayout),
		LastDate:  s.LastDate.Format(dateLayout),
		YearHigh:  s.YearHigh.StringFixed(2),
		YearLow:   s.YearLow.StringFixed(2),
		AvgClose:  s.AvgClose.StringFixed(2),
		LastClose: s.LastClose.StringFixed(2),
		SMA20:     "n/a",
		RSI14:     fmt.Sprintf("%.1f", s.RSI14),
	}
	if s.SMA20 != 0 {
		sv.SMA20 = fmt.Sprintf("%.2f", s.SMA20)
	}
	return sv
}

// buildPage renders from the same snapshot the insight was computed on.
func (s *Server) buildPage(sel selection, res *model.Result, noData bool, records []model.Record, loadedAt time.Time) pageData {
	d := s.cfg.Dashboard
	p := pageData{
		Symbol:    s.cfg.Data.Symbol,
		Year:      sel.Year,
		MinYear:   d.MinYear,
		MaxYear:   d.MaxYear,
		NoData:    noData,
		Source:    s.dataset.SourceName(),
		TotalRows: humanize.Comma(int64(len(records))),
		LoadedAgo: humanize.Time(loadedAt),
	}
	for _, in := range model.Insights {
		p.Options = append(p.Options, insightOption{Name: string(in), Selected: in == sel.Insight})
	}
	if res == nil {
		return p
	}

	p.HasOutput = true
	p.Subheader = subheader(res.Insight, res.Year)
	p.ChartURL = chartURL(sel)
	p.Summary = buildSummary(res.Summary)

	for _, r := range res.TopDays {
		p.TopDays = append(p.TopDays, topDayRow{Date: r.Date.Format(dateLayout), Close: r.Close.StringFixed(2)})
	}
	if m := res.Correlation; m != nil {
		p.Labels = m.Labels[:]
		for i, label := range m.Labels {
			row := matrixRow{Label: label}
			for j := range m.Labels {
				row.Cells = append(row.Cells, formatCorrelation(m.Values[i][j]))
			}
			p.Matrix = append(p.Matrix, row)
		}
	}
	return p
}
