package server

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"StockInsight/internal/config"
	"StockInsight/internal/loader"
	"StockInsight/internal/logging"
	"StockInsight/internal/model"
	"StockInsight/internal/recorder"
)

type memRecorder struct {
	mu    sync.Mutex
	views []recorder.ViewEvent
}

func (m *memRecorder) RecordLoad(_ *recorder.LoadEvent) error { return nil }
func (m *memRecorder) RecordView(evt *recorder.ViewEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = append(m.views, *evt)
	return nil
}
func (m *memRecorder) Close() error { return nil }

func testRecords() []model.Record {
	var out []model.Record
	add := func(year, n int) {
		for i := 0; i < n; i++ {
			c := 500 + (i*37)%90
			out = append(out, model.Record{
				Date:   time.Date(year, time.Month(i/28+1), i%28+1, 0, 0, 0, 0, time.UTC),
				Open:   decimal.NewFromInt(int64(c)),
				High:   decimal.NewFromInt(int64(c + 10)),
				Low:    decimal.NewFromInt(int64(c - 10 - i%5)),
				Close:  decimal.NewFromInt(int64(c)),
				Volume: int64(100000 + (i*7919)%50000),
			})
		}
	}
	add(2023, 10)
	add(2024, 30)
	return out
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Data.Symbol = "SBIN"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8501
	cfg.Dashboard.MinYear = 2000
	cfg.Dashboard.MaxYear = 2024
	cfg.Dashboard.DefaultYear = 2024
	cfg.Dashboard.ChartWidth = 640
	cfg.Dashboard.ChartHeight = 360
	return cfg
}

func newTestServer(t *testing.T) (*Server, *memRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ds, err := loader.NewDataset(&loader.MockSource{Records: testRecords()})
	if err != nil {
		t.Fatal(err)
	}
	rec := &memRecorder{}
	s, err := New(testConfig(), ds, rec, logging.NewSilent())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s, rec
}

func get(t *testing.T, s *Server, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func query(year string, in model.Insight) string {
	q := url.Values{}
	if year != "" {
		q.Set("year", year)
	}
	if in != "" {
		q.Set("insight", string(in))
	}
	return q.Encode()
}

func TestDashboard_Default(t *testing.T) {
	s, rec := newTestServer(t)
	w := get(t, s, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"SBIN Stock Analysis",
		"Real-Time SBIN Stock Data Insights",
		"Daily Price Range (High - Low)",
		`value="2024"`,
		"/chart.png?",
		"40 rows from mock",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
	for _, in := range model.Insights {
		if !strings.Contains(body, string(in)) {
			t.Errorf("expected option %q", in)
		}
	}

	if len(rec.views) != 1 {
		t.Fatalf("expected one recorded view, got %d", len(rec.views))
	}
	v := rec.views[0]
	if v.Year != 2024 || v.Insight != string(model.InsightDailyRange) || v.Rows != 30 || v.NoData {
		t.Errorf("unexpected view event %+v", v)
	}
	if v.CorrelationID == "" {
		t.Error("expected correlation id on view event")
	}
}

func TestDashboard_NoData(t *testing.T) {
	s, rec := newTestServer(t)
	tests := []string{"2001", "1990", "2022"}
	for _, year := range tests {
		w := get(t, s, "/?"+query(year, model.InsightTrend))
		if w.Code != http.StatusOK {
			t.Fatalf("year %s: expected 200, got %d", year, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "No data available for the selected year.") {
			t.Errorf("year %s: expected warning", year)
		}
		if strings.Contains(body, "<img") {
			t.Errorf("year %s: expected no chart", year)
		}
	}
	if !rec.views[1].NoData || rec.views[1].Year != 2000 {
		t.Errorf("expected clamped no-data view, got %+v", rec.views[1])
	}
}

func TestDashboard_UnknownInsight(t *testing.T) {
	s, rec := newTestServer(t)
	w := get(t, s, "/?"+query("2024", "Moon Phase"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "No data available") || strings.Contains(body, "<img") || strings.Contains(body, "<h2>") {
		t.Error("expected page without output section")
	}
	if rec.views[0].Rows != 30 || rec.views[0].NoData {
		t.Errorf("unexpected view event %+v", rec.views[0])
	}
}

func TestDashboard_TopDaysAndCorrelation(t *testing.T) {
	s, _ := newTestServer(t)

	body := get(t, s, "/?"+query("2024", model.InsightTopDays)).Body.String()
	if !strings.Contains(body, "Top 5 Days by Closing Price in 2024") {
		t.Error("expected top days subheader")
	}
	if strings.Count(body, "<td>2024-") != 5 {
		t.Errorf("expected five top day rows in %s", body)
	}

	body = get(t, s, "/?"+query("2023", model.InsightCorrelation)).Body.String()
	if !strings.Contains(body, "Correlation Matrix:") {
		t.Error("expected correlation matrix table")
	}
	if !strings.Contains(body, "<td>1.00</td>") {
		t.Error("expected unit diagonal in matrix")
	}
}

func TestDashboard_InvalidYearFallsBack(t *testing.T) {
	s, rec := newTestServer(t)
	get(t, s, "/?year=abc")
	get(t, s, "/?year=2999")
	for i, v := range rec.views {
		if v.Year != 2024 {
			t.Errorf("view %d: expected year 2024, got %d", i, v.Year)
		}
	}
}

func TestChart(t *testing.T) {
	s, _ := newTestServer(t)
	for _, in := range model.Insights {
		t.Run(string(in), func(t *testing.T) {
			w := get(t, s, "/chart.png?"+query("2024", in))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("unexpected content type %s", ct)
			}
			img, err := png.Decode(w.Body)
			if err != nil {
				t.Fatalf("invalid png: %v", err)
			}
			if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 360 {
				t.Errorf("unexpected size %v", img.Bounds())
			}
		})
	}
}

func TestChart_Statuses(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		target string
		status int
	}{
		{"/chart.png?" + query("2010", model.InsightVolume), http.StatusNotFound},
		{"/chart.png?" + query("2024", "Moon Phase"), http.StatusNoContent},
		{"/chart.png?" + query("2010", "Moon Phase"), http.StatusNotFound},
	}
	for _, tt := range tests {
		if w := get(t, s, tt.target); w.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.target, tt.status, w.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := get(t, s, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Symbol   string `json:"symbol"`
		Rows     int    `json:"rows"`
		LoadedAt string `json:"loaded_at"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Symbol != "SBIN" || body.Rows != 40 {
		t.Errorf("unexpected health body %+v", body)
	}
	if _, err := time.Parse(time.RFC3339, body.LoadedAt); err != nil {
		t.Errorf("loaded_at not RFC3339: %v", err)
	}
}

func TestMiddleware_Headers(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/healthz")
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected generated correlation id")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}

	w = get(t, s, "/healthz", "X-Correlation-ID", "trace-123")
	if got := w.Header().Get("X-Correlation-ID"); got != "trace-123" {
		t.Errorf("expected propagated id, got %s", got)
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 2024},
		{"abc", 2024},
		{"2015", 2015},
		{"2000", 2000},
		{"1999", 2000},
		{"2025", 2024},
		{"-5", 2000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			if got := parseYear(tt.raw, 2024, 2000, 2024); got != tt.want {
				t.Errorf("parseYear(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildPage_UsesRequestSnapshot(t *testing.T) {
	s, _ := newTestServer(t)
	records := testRecords()[:7]
	loadedAt := time.Now().Add(-3 * time.Minute)

	p := s.buildPage(selection{Year: 2024, Insight: model.InsightTrend}, nil, false, records, loadedAt)
	if p.TotalRows != "7" {
		t.Errorf("expected row count of the passed snapshot, got %s", p.TotalRows)
	}
	if p.LoadedAgo != "3 minutes ago" {
		t.Errorf("expected load time of the passed snapshot, got %s", p.LoadedAgo)
	}
	if p.HasOutput {
		t.Error("expected no output section without a result")
	}
}
