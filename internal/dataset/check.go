package dataset

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Issue describes one record that the dashboard will treat leniently.
type Issue struct {
	Entity      string
	RecordID    string
	Description string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s [%s]: %s", i.Entity, i.RecordID, i.Description)
}

var cents = decimal.NewFromInt(100)

// Check reports enumerated values outside their known set, amounts that are
// negative or finer than cents, missing dates and duplicate IDs.
func Check(ds *Dataset) []Issue {
	var issues []Issue
	add := func(entity, recordID, format string, args ...any) {
		issues = append(issues, Issue{Entity: entity, RecordID: recordID, Description: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	for _, c := range ds.Clients {
		if seen[c.ID] {
			add("client", c.ID, "duplicate id")
		}
		seen[c.ID] = true
		if c.CreatedAt.IsZero() {
			add("client", c.ID, "missing created_at")
		}
	}

	seen = make(map[string]bool)
	for _, t := range ds.Transactions {
		if seen[t.ID] {
			add("transaction", t.ID, "duplicate id")
		}
		seen[t.ID] = true
		if !t.Type.Valid() {
			add("transaction", t.ID, "unknown type %q", t.Type)
		}
		if t.Amount.IsNegative() {
			add("transaction", t.ID, "negative amount %s", t.Amount)
		}
		if !t.Amount.Mul(cents).Equal(t.Amount.Mul(cents).Floor()) {
			add("transaction", t.ID, "amount %s has more than 2 decimal places", t.Amount)
		}
		if t.DueDate.IsZero() {
			add("transaction", t.ID, "missing due_date")
		}
	}

	seen = make(map[string]bool)
	for _, p := range ds.Projects {
		if seen[p.ID] {
			add("project", p.ID, "duplicate id")
		}
		seen[p.ID] = true
		if !p.Status.Valid() {
			add("project", p.ID, "unknown status %q", p.Status)
		}
	}

	seen = make(map[string]bool)
	for _, a := range ds.Appointments {
		if seen[a.ID] {
			add("appointment", a.ID, "duplicate id")
		}
		seen[a.ID] = true
		if !a.Status.Valid() {
			add("appointment", a.ID, "unknown status %q", a.Status)
		}
		if a.Date.IsZero() {
			add("appointment", a.ID, "missing date")
		}
	}

	return issues
}
