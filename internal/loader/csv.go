package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StockInsight/internal/model"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns are located by header name; any other column is ignored.
var requiredColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// Layouts tried in order. Fractional seconds are accepted after any seconds field.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// ParseError reports a cell that could not be parsed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CSVSource reads records from a CSV file on disk.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

// Load opens the file and decodes every row.
func (s *CSVSource) Load() ([]model.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return records, nil
}

// Load reads the CSV file at path.
func Load(path string) ([]model.Record, error) {
	return NewCSVSource(path).Load()
}

// Decode parses CSV content with a header row into records, in file order.
func Decode(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	cols := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[name] = i
	}

	var records []model.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rec, err := decodeRow(row, cols, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRow(row []string, cols map[string]int, line int) (model.Record, error) {
	cell := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec model.Record
	var err error

	if rec.Date, err = parseDate(cell("Date")); err != nil {
		return rec, &ParseError{Line: line, Column: "Date", Value: cell("Date"), Err: err}
	}

	prices := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"Open", &rec.Open},
		{"High", &rec.High},
		{"Low", &rec.Low},
		{"Close", &rec.Close},
	}
	for _, p := range prices {
		v, err := decimal.NewFromString(cell(p.name))
		if err != nil {
			return rec, &ParseError{Line: line, Column: p.name, Value: cell(p.name), Err: err}
		}
		*p.dst = v
	}

	vol, err := decimal.NewFromString(cell("Volume"))
	if err != nil {
		return rec, &ParseError{Line: line, Column: "Volume", Value: cell("Volume"), Err: err}
	}
	rec.Volume = vol.IntPart()

	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
