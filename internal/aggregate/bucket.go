package aggregate

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Value is one named aggregate inside a bucket.
type Value struct {
	Name   string
	Amount decimal.Decimal
}

// Bucket is one calendar month of a window. Start and End are both inclusive.
type Bucket struct {
	Label  string
	Start  time.Time
	End    time.Time
	Values []Value
}

// Contains reports whether t falls inside [Start, End].
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Get returns the named value, or zero if the bucket has none.
func (b Bucket) Get(name string) decimal.Decimal {
	for _, v := range b.Values {
		if v.Name == name {
			return v.Amount
		}
	}
	return decimal.Zero
}

// With returns a copy of b with an extra value appended.
func (b Bucket) With(name string, amount decimal.Decimal) Bucket {
	values := make([]Value, 0, len(b.Values)+1)
	values = append(values, b.Values...)
	b.Values = append(values, Value{Name: name, Amount: amount})
	return b
}

// MarshalJSON writes a flat chart row:
// {"month":"Jan","start":"...","end":"...","total":1,"novos":1}
func (b Bucket) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeField(&buf, "month", b.Label); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, "start", b.Start.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, "end", b.End.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	for _, v := range b.Values {
		buf.WriteByte(',')
		if err := writeField(&buf, v.Name, Number(v.Amount)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Series pulls the named value out of each bucket, in bucket order.
func Series(buckets []Bucket, name string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(buckets))
	for i, b := range buckets {
		out[i] = b.Get(name)
	}
	return out
}

// Number renders d as a bare JSON number rather than decimal's quoted string.
func Number(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.String())
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
