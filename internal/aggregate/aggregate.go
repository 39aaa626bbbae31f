package aggregate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Mode selects which records a reducer considers for a bucket.
type Mode int

const (
	// Windowed covers records dated within the bucket's month.
	Windowed Mode = iota
	// Cumulative covers every record dated at or before the bucket's end.
	Cumulative
)

func (m Mode) String() string {
	switch m {
	case Windowed:
		return "windowed"
	case Cumulative:
		return "cumulative"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DateFunc extracts the date a record is bucketed by. The zero time marks a
// missing date and keeps the record out of every bucket.
type DateFunc[R any] func(R) time.Time

// Reducer is one named aggregate computed per bucket.
type Reducer[R any] struct {
	Name  string
	Mode  Mode
	Match func(R) bool            // nil matches every record
	Value func(R) decimal.Decimal // nil counts records
}

// Count builds a reducer counting matching records.
func Count[R any](name string, mode Mode, match func(R) bool) Reducer[R] {
	return Reducer[R]{Name: name, Mode: mode, Match: match}
}

// Sum builds a reducer adding value over matching records.
func Sum[R any](name string, mode Mode, match func(R) bool, value func(R) decimal.Decimal) Reducer[R] {
	return Reducer[R]{Name: name, Mode: mode, Match: match, Value: value}
}

var one = decimal.NewFromInt(1)

func (r Reducer[R]) covers(d time.Time, b Bucket) bool {
	if r.Mode == Cumulative {
		return !d.After(b.End)
	}
	return b.Contains(d)
}

func (r Reducer[R]) amount(rec R) decimal.Decimal {
	if r.Value == nil {
		return one
	}
	return r.Value(rec)
}

// Aggregate fills the window's buckets with one value per reducer, in
// reducer order. Empty input gives zero-valued buckets.
func Aggregate[R any](records []R, w Window, date DateFunc[R], reducers ...Reducer[R]) []Bucket {
	buckets := w.Buckets()

	dates := make([]time.Time, len(records))
	for i, rec := range records {
		dates[i] = date(rec)
	}

	for i := range buckets {
		b := &buckets[i]
		b.Values = make([]Value, len(reducers))
		for j, r := range reducers {
			total := decimal.Zero
			for k, rec := range records {
				if dates[k].IsZero() || !r.covers(dates[k], *b) {
					continue
				}
				if r.Match != nil && !r.Match(rec) {
					continue
				}
				total = total.Add(r.amount(rec))
			}
			b.Values[j] = Value{Name: r.Name, Amount: total}
		}
	}
	return buckets
}

// CountSince counts records dated at or after since.
func CountSince[R any](records []R, date DateFunc[R], since time.Time) int {
	n := 0
	for _, rec := range records {
		d := date(rec)
		if !d.IsZero() && !d.Before(since) {
			n++
		}
	}
	return n
}

// CountWhere counts records matching match.
func CountWhere[R any](records []R, match func(R) bool) int {
	n := 0
	for _, rec := range records {
		if match(rec) {
			n++
		}
	}
	return n
}

// SumWhere adds value over records matching match.
func SumWhere[R any](records []R, match func(R) bool, value func(R) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if match(rec) {
			total = total.Add(value(rec))
		}
	}
	return total
}
