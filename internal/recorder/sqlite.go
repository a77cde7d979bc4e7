package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *log.Logger
	now    func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *log.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets external readers query while the dashboard writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS data_loads (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			load_trigger TEXT,
			row_count    INTEGER,
			duration_ms  INTEGER,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_ts ON data_loads(timestamp)`,

		`CREATE TABLE IF NOT EXISTS dashboard_views (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			correlation_id TEXT,
			year           INTEGER,
			insight        TEXT,
			row_count      INTEGER,
			no_data        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_views_ts ON dashboard_views(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordLoad(evt *LoadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO data_loads
		(timestamp, source, load_trigger, row_count, duration_ms, error)
		VALUES (?,?,?,?,?,?)`,
		r.now().Unix(), evt.Source, evt.Trigger, evt.Rows,
		evt.Duration.Milliseconds(), evt.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordView(evt *ViewEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	noData := 0
	if evt.NoData {
		noData = 1
	}
	_, err := r.db.Exec(`INSERT INTO dashboard_views
		(timestamp, correlation_id, year, insight, row_count, no_data)
		VALUES (?,?,?,?,?,?)`,
		r.now().Unix(), evt.CorrelationID, evt.Year, evt.Insight, evt.Rows, noData,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
