// Package dataset loads and stores the dashboard's records as CSV files
// under <repoRoot>/data.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateFormat = "2006-01-02"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateFormat,
}

// Warning describes a value that could not be read and was left empty.
type Warning struct {
	Entity string
	Row    int
	Column string
	Value  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s row %d: unparseable %s %q", w.Entity, w.Row, w.Column, w.Value)
}

// codec ties one entity's header to its row converters.
type codec[T any] struct {
	entity    string
	header    string
	unmarshal func(record []string, loc *time.Location) (T, []int, error)
	marshal   func(T) []string
}

func (c codec[T]) columns() []string {
	return strings.Split(c.header, ",")
}

func (c codec[T]) read(r io.Reader, loc *time.Location) ([]T, []Warning, error) {
	cols := c.columns()
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(cols)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s CSV: %w", c.entity, err)
	}

	if len(records) == 0 {
		return nil, nil, nil
	}

	// Skip header row.
	var items []T
	var warnings []Warning
	for i, rec := range records[1:] {
		item, bad, err := c.unmarshal(rec, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		for _, col := range bad {
			warnings = append(warnings, Warning{Entity: c.entity, Row: i + 2, Column: cols[col], Value: rec[col]})
		}
		items = append(items, item)
	}
	return items, warnings, nil
}

func (c codec[T]) write(w io.Writer, items []T) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(c.columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range items {
		if err := cw.Write(c.marshal(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func (c codec[T]) appendRows(w io.Writer, items []T) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, item := range items {
		if err := cw.Write(c.marshal(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// fieldCheck records columns whose dates failed to parse.
type fieldCheck struct {
	loc *time.Location
	bad []int
}

func newFieldCheck(loc *time.Location) *fieldCheck {
	if loc == nil {
		loc = time.UTC
	}
	return &fieldCheck{loc: loc}
}

// date parses a timestamp column. Blank means missing; anything unparseable
// is flagged and also treated as missing.
func (f *fieldCheck) date(record []string, col int) time.Time {
	s := strings.TrimSpace(record[col])
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t
		}
	}
	f.bad = append(f.bad, col)
	return time.Time{}
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// formatDate writes date-only values for midnight and RFC3339 otherwise.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateFormat)
	}
	return t.Format(time.RFC3339)
}
