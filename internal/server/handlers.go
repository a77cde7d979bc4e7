package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"StockInsight/internal/calculator"
	"StockInsight/internal/insight"
	"StockInsight/internal/model"
	"StockInsight/internal/recorder"
)

// selection is the widget state carried in the query string.
type selection struct {
	Year    int
	Insight model.Insight
}

// parseYear falls back to def for missing or non-numeric input and clamps to [min, max].
func parseYear(raw string, def, min, max int) int {
	year, err := strconv.Atoi(raw)
	if err != nil {
		year = def
	}
	if year < min {
		return min
	}
	if year > max {
		return max
	}
	return year
}

func (s *Server) selection(c *gin.Context) selection {
	d := s.cfg.Dashboard
	sel := selection{
		Year:    parseYear(c.Query("year"), d.DefaultYear, d.MinYear, d.MaxYear),
		Insight: model.Insights[0],
	}
	if v, ok := c.GetQuery("insight"); ok && v != "" {
		sel.Insight = model.Insight(v)
	}
	return sel
}

func (s *Server) handleDashboard(c *gin.Context) {
	sel := s.selection(c)
	records, loadedAt := s.dataset.Snapshot()

	res, err := insight.Compute(records, sel.Year, sel.Insight)
	noData := errors.Is(err, insight.ErrNoData)
	if err != nil && !noData {
		s.logger.Error().Err(err).Str("correlation_id", c.GetString(correlationIDKey)).Msg("compute insight")
		c.String(http.StatusInternalServerError, "failed to compute insight")
		return
	}

	rows := 0
	if res != nil {
		rows = res.Summary.Rows
	} else if !noData {
		rows = len(calculator.FilterByYear(records, sel.Year))
	}
	s.recordView(c, sel, rows, noData)

	c.HTML(http.StatusOK, "dashboard.html", s.buildPage(sel, res, noData, records, loadedAt))
}

func (s *Server) handleChart(c *gin.Context) {
	sel := s.selection(c)

	res, err := insight.Compute(s.dataset.Records(), sel.Year, sel.Insight)
	if errors.Is(err, insight.ErrNoData) {
		c.String(http.StatusNotFound, "No data available for the selected year.")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("correlation_id", c.GetString(correlationIDKey)).Msg("compute insight")
		c.Status(http.StatusInternalServerError)
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, res); err != nil {
		s.logger.Error().Err(err).
			Str("correlation_id", c.GetString(correlationIDKey)).
			Str("insight", string(sel.Insight)).
			Int("year", sel.Year).
			Msg("render chart")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	records, loadedAt := s.dataset.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"symbol":    s.cfg.Data.Symbol,
		"source":    s.dataset.SourceName(),
		"rows":      len(records),
		"loaded_at": loadedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) recordView(c *gin.Context, sel selection, rows int, noData bool) {
	err := s.recorder.RecordView(&recorder.ViewEvent{
		CorrelationID: c.GetString(correlationIDKey),
		Year:          sel.Year,
		Insight:       string(sel.Insight),
		Rows:          rows,
		NoData:        noData,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("record view")
	}
}
