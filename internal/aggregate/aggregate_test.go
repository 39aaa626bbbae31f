package aggregate

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	name    string
	created time.Time
}

type txn struct {
	kind     string
	category string
	amount   decimal.Decimal
	due      time.Time
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func clientCreated(c client) time.Time { return c.created }
func txnDue(t txn) time.Time           { return t.due }
func txnAmount(t txn) decimal.Decimal  { return t.amount }

func isKind(kind string) func(txn) bool {
	return func(t txn) bool { return t.kind == kind }
}

func TestAggregate_ClientGrowth(t *testing.T) {
	clients := []client{
		{"a", date(2024, 1, 15)},
		{"b", date(2024, 2, 1)},
		{"c", date(2024, 2, 20)},
	}
	w := At(date(2024, 2, 29), 2)

	buckets := Aggregate(clients, w, clientCreated,
		Count[client]("total", Cumulative, nil),
		Count[client]("novos", Windowed, nil),
	)
	require.Len(t, buckets, 2)

	assert.Equal(t, "Jan", buckets[0].Label)
	assert.Equal(t, "Feb", buckets[1].Label)
	assertDec(t, "1", buckets[0].Get("total"))
	assertDec(t, "3", buckets[1].Get("total"))
	assertDec(t, "1", buckets[0].Get("novos"))
	assertDec(t, "2", buckets[1].Get("novos"))
}

func TestAggregate_RevenueAndExpenses(t *testing.T) {
	txns := []txn{
		{kind: "receita", amount: dec("100"), due: date(2024, 2, 10)},
		{kind: "despesa", amount: dec("40"), due: date(2024, 2, 15)},
	}
	w := At(date(2024, 2, 29), 6)

	buckets := Aggregate(txns, w, txnDue,
		Sum("receita", Windowed, isKind("receita"), txnAmount),
		Sum("despesas", Windowed, isKind("despesa"), txnAmount),
	)
	require.Len(t, buckets, 6)

	feb := buckets[5]
	feb = feb.With("lucro", feb.Get("receita").Sub(feb.Get("despesas")))
	assertDec(t, "100", feb.Get("receita"))
	assertDec(t, "40", feb.Get("despesas"))
	assertDec(t, "60", feb.Get("lucro"))

	for _, b := range buckets[:5] {
		assertDec(t, "0", b.Get("receita"), "month %s", b.Label)
		assertDec(t, "0", b.Get("despesas"), "month %s", b.Label)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	w := At(date(2024, 7, 3), 6)
	buckets := Aggregate[txn](nil, w, txnDue,
		Sum[txn]("receita", Windowed, nil, txnAmount),
		Count[txn]("total", Cumulative, nil),
	)
	require.Len(t, buckets, 6)
	for _, b := range buckets {
		require.Len(t, b.Values, 2)
		for _, v := range b.Values {
			assert.True(t, v.Amount.IsZero(), "%s/%s should be zero", b.Label, v.Name)
		}
	}
}

func TestAggregate_NoReducers(t *testing.T) {
	buckets := Aggregate([]client{{"a", date(2024, 1, 1)}}, At(date(2024, 1, 31), 3), clientCreated)
	require.Len(t, buckets, 3)
	for _, b := range buckets {
		assert.Empty(t, b.Values)
	}
}

func TestAggregate_NonPositiveMonths(t *testing.T) {
	assert.Empty(t, Aggregate([]client{{"a", date(2024, 1, 1)}}, At(date(2024, 1, 31), 0), clientCreated,
		Count[client]("total", Cumulative, nil)))
	assert.Empty(t, At(date(2024, 1, 31), -2).Buckets())
}

func TestAggregate_MissingDateExcluded(t *testing.T) {
	clients := []client{
		{"dated", date(2024, 3, 5)},
		{"missing", time.Time{}},
	}
	buckets := Aggregate(clients, At(date(2024, 3, 20), 1), clientCreated,
		Count[client]("total", Cumulative, nil),
		Count[client]("novos", Windowed, nil),
	)
	require.Len(t, buckets, 1)
	assertDec(t, "1", buckets[0].Get("total"))
	assertDec(t, "1", buckets[0].Get("novos"))
}

func TestAggregate_BoundariesInclusive(t *testing.T) {
	w := At(date(2024, 2, 10), 2)
	window := w.Buckets()
	require.Len(t, window, 2)

	janEnd := window[0].End
	febStart := window[1].Start
	assert.Equal(t, febStart, janEnd.Add(time.Nanosecond))

	clients := []client{
		{"last instant of january", janEnd},
		{"first instant of february", febStart},
	}
	buckets := Aggregate(clients, w, clientCreated, Count[client]("novos", Windowed, nil))
	assertDec(t, "1", buckets[0].Get("novos"), "end instant belongs to its own month")
	assertDec(t, "1", buckets[1].Get("novos"), "start instant belongs to its own month")
}

func TestAggregate_RecordsAfterNowIgnoredByWindow(t *testing.T) {
	clients := []client{
		{"future", date(2024, 5, 1)},
		{"this month later", date(2024, 4, 28)},
	}
	buckets := Aggregate(clients, At(date(2024, 4, 10), 2), clientCreated,
		Count[client]("total", Cumulative, nil),
	)
	// The current bucket runs to the end of the month, not to now.
	assertDec(t, "1", buckets[1].Get("total"))
}

func TestAggregate_MatchFilters(t *testing.T) {
	txns := []txn{
		{kind: "receita", amount: dec("10.50"), due: date(2024, 1, 2)},
		{kind: "receita", amount: dec("4.25"), due: date(2024, 1, 31)},
		{kind: "despesa", amount: dec("99"), due: date(2024, 1, 15)},
	}
	buckets := Aggregate(txns, At(date(2024, 1, 31), 1), txnDue,
		Sum("receita", Windowed, isKind("receita"), txnAmount),
		Count("lancamentos", Windowed, isKind("receita")),
	)
	assertDec(t, "14.75", buckets[0].Get("receita"))
	assertDec(t, "2", buckets[0].Get("lancamentos"))
}

func TestAggregate_Idempotent(t *testing.T) {
	txns := []txn{
		{kind: "receita", amount: dec("100"), due: date(2023, 11, 3)},
		{kind: "receita", amount: dec("20"), due: date(2024, 1, 9)},
	}
	w := At(date(2024, 1, 20), 6)
	reducers := []Reducer[txn]{
		Sum[txn]("receita", Windowed, nil, txnAmount),
		Sum[txn]("acumulado", Cumulative, nil, txnAmount),
	}

	first := Aggregate(txns, w, txnDue, reducers...)
	second := Aggregate(txns, w, txnDue, reducers...)
	assert.Equal(t, first, second)
}

func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	now := date(2024, 6, 18)

	for trial := 0; trial < 100; trial++ {
		months := rng.Intn(12) + 1
		n := rng.Intn(40)
		txns := make([]txn, n)
		for i := range txns {
			var due time.Time
			if rng.Intn(10) > 0 {
				due = now.AddDate(0, 0, -rng.Intn(500)+30).Add(time.Duration(rng.Intn(86400)) * time.Second)
			}
			txns[i] = txn{amount: decimal.New(int64(rng.Intn(100000)), -2), due: due}
		}

		w := At(now, months)
		buckets := Aggregate(txns, w, txnDue,
			Sum[txn]("receita", Windowed, nil, txnAmount),
			Count[txn]("total", Cumulative, nil),
		)

		require.Len(t, buckets, months, "trial %d", trial)
		last := buckets[len(buckets)-1]
		assert.True(t, last.Contains(now), "trial %d: last bucket must contain now", trial)

		for i, b := range buckets {
			want := decimal.Zero
			for _, tx := range txns {
				if !tx.due.IsZero() && !tx.due.Before(b.Start) && !tx.due.After(b.End) {
					want = want.Add(tx.amount)
				}
			}
			assert.True(t, want.Equal(b.Get("receita")), "trial %d bucket %d: want %s got %s", trial, i, want, b.Get("receita"))

			if i > 0 {
				prev := buckets[i-1]
				assert.True(t, prev.End.Before(b.Start), "trial %d: buckets must be chronological", trial)
				assert.True(t, b.Get("total").GreaterThanOrEqual(prev.Get("total")),
					"trial %d: cumulative must not decrease", trial)
			}
		}
	}
}

func TestWindow_SpansYearBoundary(t *testing.T) {
	buckets := At(date(2024, 2, 14), 6).Buckets()
	require.Len(t, buckets, 6)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}, labels)
	assert.Equal(t, date(2023, 9, 1), buckets[0].Start)
	assert.Equal(t, date(2024, 3, 1).Add(-time.Nanosecond), buckets[5].End)
}

func TestWindow_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, 3, 1, 1, 0, 0, 0, loc) // still February in UTC
	buckets := Window{Months: 1, Now: now}.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, "Mar", buckets[0].Label)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), buckets[0].Start)
}

func TestWindow_DefaultsToCurrentTime(t *testing.T) {
	buckets := Window{Months: 1}.Buckets()
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].Contains(time.Now()) || buckets[0].End.Before(time.Now()))
}

func TestWindow_PortugueseLabels(t *testing.T) {
	w := Window{Months: 3, Now: date(2024, 3, 5), Names: NamesFor("pt-BR")}
	buckets := w.Buckets()
	require.Len(t, buckets, 3)
	assert.Equal(t, "jan", buckets[0].Label)
	assert.Equal(t, "fev", buckets[1].Label)
	assert.Equal(t, "mar", buckets[2].Label)
}

func TestNamesFor(t *testing.T) {
	assert.Equal(t, Portuguese, NamesFor("pt-BR"))
	assert.Equal(t, Portuguese, NamesFor("pt"))
	assert.Equal(t, English, NamesFor("en"))
	assert.Equal(t, English, NamesFor("en-GB"))
	assert.Equal(t, English, NamesFor(""))
	assert.Equal(t, English, NamesFor("not a locale!"))
}

func TestMonthsBefore(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), MonthsBefore(date(2024, 3, 31), 1))
	assert.Equal(t, date(2023, 2, 28), MonthsBefore(date(2023, 3, 31), 1))
	assert.Equal(t, date(2023, 12, 15), MonthsBefore(date(2024, 1, 15), 1))
	assert.Equal(t, date(2023, 8, 29), MonthsBefore(date(2024, 2, 29), 6))
	assert.Equal(t, date(2024, 5, 10), MonthsBefore(date(2024, 5, 10), 0))

	withClock := time.Date(2024, 5, 31, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 4, 30, 13, 45, 0, 0, time.UTC), MonthsBefore(withClock, 1))
}

func TestCountSince(t *testing.T) {
	now := date(2024, 3, 31)
	clients := []client{
		{"old", date(2024, 2, 28)},
		{"edge", date(2024, 2, 29)},
		{"new", date(2024, 3, 20)},
		{"missing", time.Time{}},
	}
	assert.Equal(t, 2, CountSince(clients, clientCreated, MonthsBefore(now, 1)))
	assert.Equal(t, 0, CountSince[client](nil, clientCreated, now))
}

func TestCountWhereAndSumWhere(t *testing.T) {
	txns := []txn{
		{kind: "receita", amount: dec("10")},
		{kind: "despesa", amount: dec("3")},
		{kind: "receita", amount: dec("2.5")},
	}
	assert.Equal(t, 2, CountWhere(txns, isKind("receita")))
	assertDec(t, "12.5", SumWhere(txns, isKind("receita"), txnAmount))
	assertDec(t, "0", SumWhere(txns, isKind("transfer"), txnAmount))
}

func TestSeries(t *testing.T) {
	clients := []client{{"a", date(2024, 1, 3)}, {"b", date(2024, 3, 3)}}
	buckets := Aggregate(clients, At(date(2024, 3, 9), 3), clientCreated, Count[client]("total", Cumulative, nil))
	got := Series(buckets, "total")
	require.Len(t, got, 3)
	assertDec(t, "1", got[0])
	assertDec(t, "1", got[1])
	assertDec(t, "2", got[2])
}

func TestBucketWithDoesNotShareValues(t *testing.T) {
	b := Bucket{Label: "Jan", Values: make([]Value, 1, 4)}
	b.Values[0] = Value{Name: "receita", Amount: dec("1")}

	x := b.With("lucro", dec("2"))
	y := b.With("margem", dec("3"))
	assertDec(t, "2", x.Get("lucro"))
	assertDec(t, "0", y.Get("lucro"))
	assert.Len(t, b.Values, 1)
}

func TestBucketMarshalJSON(t *testing.T) {
	b := Bucket{
		Label: "Feb",
		Start: date(2024, 2, 1),
		End:   date(2024, 3, 1).Add(-time.Nanosecond),
		Values: []Value{
			{Name: "receita", Amount: dec("100.50")},
			{Name: "lucro", Amount: dec("-4")},
		},
	}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t,
		`{"month":"Feb","start":"2024-02-01T00:00:00Z","end":"2024-02-29T23:59:59.999999999Z","receita":100.5,"lucro":-4}`,
		string(data))

	var row map[string]any
	require.NoError(t, json.Unmarshal(data, &row))
	assert.InDelta(t, 100.5, row["receita"], 0.0001)
}
