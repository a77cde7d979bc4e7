package recorder

import "time"

// Load triggers.
const (
	TriggerStartup = "STARTUP"
	TriggerCron    = "CRON"
	TriggerManual  = "MANUAL"
)

// LoadEvent records one attempt to read the data file.
type LoadEvent struct {
	Source   string
	Trigger  string
	Rows     int
	Duration time.Duration
	Err      string // empty on success
}

// ViewEvent records one dashboard render request.
type ViewEvent struct {
	CorrelationID string
	Year          int
	Insight       string
	Rows          int
	NoData        bool
}

// Recorder persists an audit trail of data loads and dashboard views.
// It never stores derived values.
type Recorder interface {
	RecordLoad(evt *LoadEvent) error
	RecordView(evt *ViewEvent) error
	Close() error
}
