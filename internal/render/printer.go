// Package render prints dashboard views as terminal tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/dashboard"
	"github.com/cleared-dev/inkboard/internal/dataset"
)

const meterWidth = 24

// Printer writes views to w.
type Printer struct {
	w      io.Writer
	styles Styles
	nums   Numbers
}

// NewPrinter returns a printer for w. Colour is used only when w is a
// terminal.
func NewPrinter(w io.Writer, nums Numbers) *Printer {
	styles := PlainStyles()
	if IsTerminal(w) {
		styles = ColorStyles()
	}
	return &Printer{w: w, styles: styles, nums: nums}
}

// WithStyles replaces the printer's palette.
func (p *Printer) WithStyles(s Styles) *Printer {
	p.styles = s
	return p
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Clients prints the clients view.
func (p *Printer) Clients(v dashboard.ClientsView) error {
	var b strings.Builder
	b.WriteString(p.styles.Section("Clients"))
	b.WriteString(p.styles.Table(
		[]string{"Metric", "Value"},
		[]Align{AlignLeft, AlignRight},
		[][]string{
			{"Total clients", p.nums.Count(decimal.NewFromInt(int64(v.Metrics.Total)))},
			{"New (last 30 days)", p.nums.Count(decimal.NewFromInt(int64(v.Metrics.NewLastMonth)))},
			{"With email", p.nums.Count(decimal.NewFromInt(int64(v.Metrics.WithEmail)))},
		},
	))
	b.WriteString("\n")
	b.WriteString(p.styles.Section("Growth"))
	b.WriteString(p.series(v.Growth, []string{dashboard.SeriesTotal, dashboard.SeriesNew}, false))
	return p.flush(b.String())
}

// Finance prints the finance view.
func (p *Printer) Finance(v dashboard.FinanceView) error {
	var b strings.Builder
	b.WriteString(p.styles.Section("Revenue"))
	b.WriteString(p.series(v.Revenue, []string{dashboard.SeriesRevenue, dashboard.SeriesExpenses, dashboard.SeriesProfit}, true))
	b.WriteString("\n")
	b.WriteString(p.styles.Section("Categories"))
	b.WriteString(p.shares(v.Categories, true))
	b.WriteString("\n")
	b.WriteString(p.styles.Section("Payments"))
	b.WriteString(p.shares(v.Payments.Shares(), true))
	return p.flush(b.String())
}

// Schedules prints the schedules view.
func (p *Printer) Schedules(v dashboard.SchedulesView) error {
	var b strings.Builder
	b.WriteString(p.styles.Section("Appointments by status"))
	b.WriteString(p.shares(v.Statuses, false))
	b.WriteString("\n")
	b.WriteString(p.styles.Section("Timeline"))
	b.WriteString(p.series(v.Timeline, []string{dashboard.SeriesScheduled, dashboard.SeriesDone}, false))
	return p.flush(b.String())
}

// Widgets prints the widget panel: metrics first as one table, then each
// chart or distribution under its own heading, in configured order.
func (p *Printer) Widgets(widgets []dashboard.Widget) error {
	var b strings.Builder
	var metrics [][]string
	for _, w := range widgets {
		if w.Kind != dashboard.KindMetric {
			continue
		}
		change := ""
		if w.HasChange {
			change = p.change(w.Change)
		}
		metrics = append(metrics, []string{w.Title, p.nums.Compact(w.Value, w.Money), change})
	}
	if len(metrics) > 0 {
		b.WriteString(p.styles.Section("Widgets"))
		b.WriteString(p.styles.Table([]string{"Widget", "Value", "Change"}, []Align{AlignLeft, AlignRight, AlignRight}, metrics))
	}
	for _, w := range widgets {
		switch w.Kind {
		case dashboard.KindChart:
			b.WriteString("\n")
			b.WriteString(p.styles.Section(w.Title))
			b.WriteString(p.series(w.Series, seriesNames(w.Series), w.Money))
		case dashboard.KindDistribution:
			b.WriteString("\n")
			b.WriteString(p.styles.Section(w.Title))
			b.WriteString(p.shares(w.Slices, w.Money))
		}
	}
	return p.flush(b.String())
}

// Table prints a plain table in the printer's palette.
func (p *Printer) Table(headers []string, align []Align, rows [][]string) error {
	return p.flush(p.styles.Table(headers, align, rows))
}

// Issues prints dataset validation issues, or a confirmation when there
// are none.
func (p *Printer) Issues(issues []dataset.Issue) error {
	if len(issues) == 0 {
		return p.flush(p.styles.Up.Render("No issues found.") + "\n")
	}
	rows := make([][]string, len(issues))
	for i, is := range issues {
		rows[i] = []string{is.Entity, is.RecordID, p.styles.Warn.Render(is.Description)}
	}
	return p.flush(p.styles.Table([]string{"Entity", "ID", "Issue"}, nil, rows))
}

// series renders one row per bucket with a meter for the first value.
func (p *Printer) series(buckets []aggregate.Bucket, names []string, money bool) string {
	headers := append([]string{"Month"}, names...)
	headers = append(headers, "")
	align := []Align{AlignLeft}
	for range names {
		align = append(align, AlignRight)
	}

	peak := 0.0
	if len(names) > 0 {
		for _, b := range buckets {
			if f := b.Get(names[0]).InexactFloat64(); f > peak {
				peak = f
			}
		}
	}

	rows := make([][]string, len(buckets))
	for i, bk := range buckets {
		row := []string{bk.Label}
		for _, n := range names {
			row = append(row, p.amount(bk.Get(n), money))
		}
		if len(names) > 0 {
			row = append(row, p.styles.Meter(bk.Get(names[0]).InexactFloat64(), peak, meterWidth))
		}
		rows[i] = row
	}
	return p.styles.Table(headers, align, rows)
}

func (p *Printer) shares(shares []aggregate.Share, money bool) string {
	rows := make([][]string, len(shares))
	for i, s := range shares {
		key := s.Key
		if key == "" {
			key = p.styles.Dim.Render("(none)")
		}
		rows[i] = []string{
			key,
			p.amount(s.Value, money),
			p.nums.Percent(s.Percent),
			p.styles.Meter(s.Percent.InexactFloat64(), 100, meterWidth),
		}
	}
	return p.styles.Table([]string{"Name", "Value", "Share", ""}, []Align{AlignLeft, AlignRight, AlignRight}, rows)
}

func (p *Printer) amount(d decimal.Decimal, money bool) string {
	if money {
		return p.nums.Money(d)
	}
	return p.nums.Count(d)
}

func (p *Printer) change(d decimal.Decimal) string {
	s := p.nums.Change(d)
	switch {
	case d.IsPositive():
		return p.styles.Up.Render(s)
	case d.IsNegative():
		return p.styles.Down.Render(s)
	}
	return p.styles.Dim.Render(s)
}

func (p *Printer) flush(s string) error {
	if _, err := io.WriteString(p.w, s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func seriesNames(buckets []aggregate.Bucket) []string {
	if len(buckets) == 0 {
		return nil
	}
	names := make([]string, len(buckets[0].Values))
	for i, v := range buckets[0].Values {
		names[i] = v.Name
	}
	return names
}
