// Package aggregate groups dated records into calendar-month buckets and
// summarises them by key. Everything here is a pure function of its inputs:
// nothing is cached and caller-owned records are never modified.
package aggregate

import (
	"time"

	"golang.org/x/text/language"
)

// DefaultMonths is the trailing window used by every dashboard view.
const DefaultMonths = 6

// MonthNames holds short month labels, January first.
type MonthNames [12]string

var (
	English    = MonthNames{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	Portuguese = MonthNames{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}
)

var namesMatcher = language.NewMatcher([]language.Tag{language.English, language.BrazilianPortuguese})

// NamesFor picks month labels for a BCP 47 locale such as "pt-BR".
// Unknown or malformed locales fall back to English.
func NamesFor(locale string) MonthNames {
	tag, err := language.Parse(locale)
	if err != nil {
		return English
	}
	_, idx, conf := namesMatcher.Match(tag)
	if conf == language.No || idx == 0 {
		return English
	}
	return Portuguese
}

// Label returns the short label for m.
func (n MonthNames) Label(m time.Month) string {
	if n == (MonthNames{}) {
		n = English
	}
	return n[m-1]
}

// Window is a trailing run of calendar months ending with the month that
// contains Now.
type Window struct {
	Months int
	Now    time.Time // zero means time.Now()
	Names  MonthNames
}

// At returns a window of months ending at now with English labels.
func At(now time.Time, months int) Window {
	return Window{Months: months, Now: now, Names: English}
}

// Instant returns the evaluation instant.
func (w Window) Instant() time.Time {
	if w.Now.IsZero() {
		return time.Now()
	}
	return w.Now
}

// Buckets enumerates the window's months, oldest first, with no values.
// A non-positive Months yields nil.
func (w Window) Buckets() []Bucket {
	if w.Months <= 0 {
		return nil
	}
	now := w.Instant()
	first := StartOfMonth(MonthsBefore(now, w.Months-1))
	y, m, _ := first.Date()

	buckets := make([]Bucket, w.Months)
	for i := range buckets {
		start := time.Date(y, m+time.Month(i), 1, 0, 0, 0, 0, now.Location())
		buckets[i] = Bucket{
			Label: w.Names.Label(start.Month()),
			Start: start,
			End:   EndOfMonth(start),
		}
	}
	return buckets
}

// StartOfMonth returns midnight on the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last representable instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// MonthsBefore moves t back n calendar months, keeping the clock time.
// The day is clamped to the length of the target month, so 31 March minus
// one month is the last day of February.
func MonthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(target); d > last {
		d = last
	}
	return target.AddDate(0, 0, d-1)
}

func daysIn(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
