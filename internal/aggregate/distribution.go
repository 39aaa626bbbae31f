package aggregate

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Slice is one key of a distribution and its accumulated value.
type Slice struct {
	Key   string
	Value decimal.Decimal
}

// Distribution maps keys to totals, in order of first occurrence.
type Distribution []Slice

// Distribute groups records by key and adds value per key. A nil value
// counts records. Empty keys are kept like any other key.
func Distribute[R any](records []R, key func(R) string, value func(R) decimal.Decimal) Distribution {
	index := make(map[string]int)
	var dist Distribution
	for _, rec := range records {
		k := key(rec)
		amount := one
		if value != nil {
			amount = value(rec)
		}
		i, ok := index[k]
		if !ok {
			index[k] = len(dist)
			dist = append(dist, Slice{Key: k, Value: amount})
			continue
		}
		dist[i].Value = dist[i].Value.Add(amount)
	}
	return dist
}

// Get returns the total for key, or zero.
func (d Distribution) Get(key string) decimal.Decimal {
	for _, s := range d {
		if s.Key == key {
			return s.Value
		}
	}
	return decimal.Zero
}

// Map returns the distribution as a plain mapping.
func (d Distribution) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(d))
	for _, s := range d {
		m[s.Key] = s.Value
	}
	return m
}

// Total adds every slice.
func (d Distribution) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range d {
		total = total.Add(s.Value)
	}
	return total
}

// Share is a slice together with its percentage of the distribution total.
type Share struct {
	Key     string
	Value   decimal.Decimal
	Percent decimal.Decimal
}

// Shares computes each slice's percentage of the total.
func (d Distribution) Shares() []Share {
	total := d.Total()
	shares := make([]Share, len(d))
	for i, s := range d {
		shares[i] = Share{Key: s.Key, Value: s.Value, Percent: Percent(s.Value, total)}
	}
	return shares
}

// MarshalJSON writes the distribution as an object keyed in slice order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeField(&buf, s.Key, Number(s.Value)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes {"name":..,"value":..,"percent":..} with numeric values.
func (s Share) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string          `json:"name"`
		Value   json.RawMessage `json:"value"`
		Percent json.RawMessage `json:"percent"`
	}{s.Key, Number(s.Value), Number(s.Percent)})
}

// Percent returns part as a percentage of total, rounded to two places.
// A zero total gives zero.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(2)
}

// Change returns the percentage change from previous to current, rounded to
// one place. A zero previous value gives zero.
func Change(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Mul(hundred).Div(previous.Abs()).Round(1)
}
