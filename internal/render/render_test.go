package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/dashboard"
	"github.com/cleared-dev/inkboard/internal/dataset"
	"github.com/cleared-dev/inkboard/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var leapDay = time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)

func TestTable_Alignment(t *testing.T) {
	out := PlainStyles().Table(
		[]string{"Name", "Value"},
		[]Align{AlignLeft, AlignRight},
		[][]string{{"a", "1"}, {"longer", "1000"}},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name    Value", lines[0])
	assert.Equal(t, "──────  ─────", lines[1])
	assert.Equal(t, "a           1", lines[2])
	assert.Equal(t, "longer   1000", lines[3])
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Empty(t, PlainStyles().Table(nil, nil, [][]string{{"x"}}))
}

func TestTable_ShortRows(t *testing.T) {
	out := PlainStyles().Table([]string{"A", "B"}, nil, [][]string{{"x"}})
	assert.Contains(t, out, "x")
}

func TestMeter(t *testing.T) {
	s := PlainStyles()
	assert.Equal(t, "", s.Meter(0, 10, 10))
	assert.Equal(t, "", s.Meter(5, 0, 10))
	assert.Equal(t, strings.Repeat("█", 5), s.Meter(5, 10, 10))
	assert.Equal(t, "█", s.Meter(0.01, 10, 10), "tiny values still show")
	assert.Equal(t, strings.Repeat("█", 10), s.Meter(20, 10, 10))
}

func TestNumbers_Money(t *testing.T) {
	en := NewNumbers("en", "$")
	assert.Equal(t, "$ 1,234.50", en.Money(dec("1234.5")))

	br := NewNumbers("pt-BR", "R$")
	assert.Equal(t, "R$ 1.234,50", br.Money(dec("1234.5")))

	bare := NewNumbers("not a locale!", "")
	assert.Equal(t, "12.00", bare.Money(dec("12")))
}

func TestNumbers_MoneyIsExact(t *testing.T) {
	en := NewNumbers("en", "")
	assert.Equal(t, "12,345,678,901,234,567.89", en.Money(dec("12345678901234567.89")))
	assert.Equal(t, "-1,234.50", en.Money(dec("-1234.5")))
	assert.Equal(t, "0.01", en.Money(dec("0.005")))
	assert.Equal(t, "999.00", en.Money(dec("999")))
	assert.Equal(t, "100,000.00", en.Money(dec("100000")))

	br := NewNumbers("pt-BR", "")
	assert.Equal(t, "9.007.199.254.740.993,01", br.Money(dec("9007199254740993.01")))
}

func TestNumbers_Count(t *testing.T) {
	assert.Equal(t, "12,345", NewNumbers("en", "").Count(dec("12345")))
}

func TestNumbers_Change(t *testing.T) {
	n := NewNumbers("en", "")
	assert.Equal(t, "+25.0%", n.Change(dec("25")))
	assert.Equal(t, "-5.1%", n.Change(dec("-5.1")))
	assert.Equal(t, "0.0%", n.Change(decimal.Zero))
}

func TestNumbers_Compact(t *testing.T) {
	n := NewNumbers("en", "R$")
	assert.Equal(t, "R$ 28.5K", n.Compact(dec("28500"), true))
	assert.Equal(t, "1.2M", n.Compact(dec("1200000"), false))
	assert.Equal(t, "42", n.Compact(dec("42"), false))
	assert.Equal(t, "R$ 250.00", n.Compact(dec("250"), true))
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func sampleRecords() dashboard.Records {
	d := func(m time.Month, day int) time.Time { return time.Date(2024, m, day, 0, 0, 0, 0, time.UTC) }
	return dashboard.Records{
		Clients: []model.Client{{ID: "a", CreatedAt: d(1, 15)}, {ID: "b", CreatedAt: d(2, 1), Email: "b@x.com"}},
		Transactions: []model.Transaction{
			{Type: model.TransactionRevenue, Category: "sessao", Amount: dec("1500"), DueDate: d(2, 3), SettledDate: d(2, 3)},
			{Type: model.TransactionExpense, Category: "", Amount: dec("40"), DueDate: d(2, 4)},
		},
		Appointments: []model.Appointment{{Status: model.AppointmentScheduled, Date: d(2, 20), Service: "tatuagem"}},
	}
}

func TestPrinter_Clients(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, NewNumbers("en", "$"))
	require.NoError(t, p.Clients(dashboard.Clients(sampleRecords().Clients, aggregate.At(leapDay, 2))))

	out := buf.String()
	assert.Contains(t, out, "Total clients")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "Feb")
	assert.NotContains(t, out, "\x1b[", "buffers get no escape codes")
}

func TestPrinter_Finance(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, NewNumbers("en", "$"))
	require.NoError(t, p.Finance(dashboard.Finance(sampleRecords().Transactions, aggregate.At(leapDay, 2))))

	out := buf.String()
	assert.Contains(t, out, "$ 1,500.00")
	assert.Contains(t, out, "$ 1,460.00", "profit")
	assert.Contains(t, out, "(none)", "empty category label")
	assert.Contains(t, out, "pendentes")
}

func TestPrinter_SchedulesAndWidgets(t *testing.T) {
	r := sampleRecords()
	w := aggregate.At(leapDay, 2)

	var buf bytes.Buffer
	p := NewPrinter(&buf, NewNumbers("en", "$"))
	require.NoError(t, p.Schedules(dashboard.Schedules(r.Appointments, w)))
	assert.Contains(t, buf.String(), "agendado")
	assert.Contains(t, buf.String(), "cancelado")

	buf.Reset()
	widgets, err := dashboard.Widgets(r, w, []string{dashboard.WidgetRevenueMonth, dashboard.WidgetGrowthChart, dashboard.WidgetServiceDistribution})
	require.NoError(t, err)
	require.NoError(t, p.Widgets(widgets))
	out := buf.String()
	assert.Contains(t, out, "Revenue this month")
	assert.Contains(t, out, "$ 1.5K")
	assert.Contains(t, out, "Monthly growth")
	assert.Contains(t, out, "tatuagem")
}

func TestPrinter_Issues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, NewNumbers("en", ""))
	require.NoError(t, p.Issues(nil))
	assert.Contains(t, buf.String(), "No issues found.")

	buf.Reset()
	require.NoError(t, p.Issues([]dataset.Issue{{Entity: "transaction", RecordID: "t1", Description: "negative amount"}}))
	assert.Contains(t, buf.String(), "negative amount")
	assert.Contains(t, buf.String(), "t1")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	view := dashboard.Clients(sampleRecords().Clients, aggregate.At(leapDay, 2))
	require.NoError(t, JSON(&buf, view))

	var got struct {
		Growth []map[string]any `json:"growth"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Growth, 2)
	assert.Equal(t, float64(2), got.Growth[1]["total"])
}
