package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"StockInsight/internal/loader"
	"StockInsight/internal/logging"
	"StockInsight/internal/model"
	"StockInsight/internal/recorder"
)

type memRecorder struct {
	loads []recorder.LoadEvent
}

func (m *memRecorder) RecordLoad(evt *recorder.LoadEvent) error {
	m.loads = append(m.loads, *evt)
	return nil
}
func (m *memRecorder) RecordView(_ *recorder.ViewEvent) error { return nil }
func (m *memRecorder) Close() error                           { return nil }

func records(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{
			Date:  time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
			Close: decimal.NewFromInt(int64(100 + i)),
		}
	}
	return out
}

func setup(t *testing.T) (*Scheduler, *loader.MockSource, *memRecorder) {
	t.Helper()
	src := &loader.MockSource{Records: records(3)}
	ds, err := loader.NewDataset(src)
	if err != nil {
		t.Fatal(err)
	}
	rec := &memRecorder{}
	return NewScheduler(ds, rec, logging.NewSilent()), src, rec
}

func TestRunReloadNow(t *testing.T) {
	s, src, rec := setup(t)
	src.Records = records(5)

	if err := s.RunReloadNow(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := len(s.Dataset.Records()); got != 5 {
		t.Errorf("expected 5 rows after reload, got %d", got)
	}
	if len(rec.loads) != 1 {
		t.Fatalf("expected one load event, got %d", len(rec.loads))
	}
	evt := rec.loads[0]
	if evt.Trigger != recorder.TriggerManual || evt.Rows != 5 || evt.Err != "" || evt.Source != "mock" {
		t.Errorf("unexpected event %+v", evt)
	}
}

func TestRunReloadNow_FailureKeepsData(t *testing.T) {
	s, src, rec := setup(t)
	src.Err = errors.New("disk gone")

	if err := s.RunReloadNow(); err == nil {
		t.Fatal("expected reload error")
	}
	if got := len(s.Dataset.Records()); got != 3 {
		t.Errorf("expected previous 3 rows to survive, got %d", got)
	}
	if len(rec.loads) != 1 || rec.loads[0].Err == "" {
		t.Errorf("expected failed load event, got %+v", rec.loads)
	}
}

func TestRegister(t *testing.T) {
	s, _, _ := setup(t)
	if err := s.Register("not a cron"); err == nil {
		t.Error("expected error for invalid spec")
	}
	if err := s.Register("0 */10 * * * *"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 1 {
		t.Errorf("expected one cron entry, got %d", n)
	}
	s.Start()
	s.Stop()
}
