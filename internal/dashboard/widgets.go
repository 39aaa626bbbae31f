package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/model"
)

// ErrUnknownWidget is returned for a widget ID with no definition.
var ErrUnknownWidget = errors.New("unknown widget")

// WidgetKind says how a widget's payload should be drawn.
type WidgetKind string

const (
	KindMetric       WidgetKind = "metric"
	KindChart        WidgetKind = "chart"
	KindDistribution WidgetKind = "distribution"
)

// Widget IDs.
const (
	WidgetClientsTotal          = "clients-total"
	WidgetProjectsActive        = "projects-active"
	WidgetRevenueMonth          = "revenue-month"
	WidgetAppointmentsScheduled = "appointments-scheduled"
	WidgetGrowthChart           = "growth-chart"
	WidgetNewClients            = "new-clients"
	WidgetServiceDistribution   = "service-distribution"
)

// Widget is one computed panel entry. Only the fields matching Kind are set.
type Widget struct {
	ID    string
	Title string
	Kind  WidgetKind
	Money bool

	Value     decimal.Decimal
	Change    decimal.Decimal
	HasChange bool

	Series []aggregate.Bucket
	Slices []aggregate.Share
}

// MarshalJSON writes the widget with numeric values and omits fields that
// do not apply to its kind.
func (w Widget) MarshalJSON() ([]byte, error) {
	out := struct {
		ID     string             `json:"id"`
		Title  string             `json:"title"`
		Kind   WidgetKind         `json:"kind"`
		Value  json.RawMessage    `json:"value,omitempty"`
		Change json.RawMessage    `json:"change,omitempty"`
		Series []aggregate.Bucket `json:"series,omitempty"`
		Slices []aggregate.Share  `json:"slices,omitempty"`
	}{ID: w.ID, Title: w.Title, Kind: w.Kind, Series: w.Series, Slices: w.Slices}
	if w.Kind == KindMetric {
		out.Value = aggregate.Number(w.Value)
		if w.HasChange {
			out.Change = aggregate.Number(w.Change)
		}
	}
	return json.Marshal(out)
}

type widgetDef struct {
	title   string
	compute func(r Records, w aggregate.Window) Widget
}

var widgetDefs = map[string]widgetDef{
	WidgetClientsTotal: {"Total clients", func(r Records, _ aggregate.Window) Widget {
		return metric(len(r.Clients))
	}},
	WidgetProjectsActive: {"Active projects", func(r Records, _ aggregate.Window) Widget {
		return metric(aggregate.CountWhere(r.Projects, func(p model.Project) bool {
			return p.Status == model.ProjectInProgress
		}))
	}},
	WidgetAppointmentsScheduled: {"Scheduled appointments", func(r Records, _ aggregate.Window) Widget {
		return metric(aggregate.CountWhere(r.Appointments, func(a model.Appointment) bool {
			return a.Status == model.AppointmentScheduled
		}))
	}},
	WidgetNewClients: {"New clients (last 30 days)", func(r Records, w aggregate.Window) Widget {
		return metric(aggregate.CountSince(r.Clients, clientDate, aggregate.MonthsBefore(w.Instant(), 1)))
	}},
	WidgetRevenueMonth:        {"Revenue this month", revenueMonth},
	WidgetGrowthChart:         {"Monthly growth", growthChart},
	WidgetServiceDistribution: {"Services", serviceDistribution},
}

// KnownWidgets lists every widget ID that can be configured.
func KnownWidgets() []string {
	return []string{
		WidgetClientsTotal,
		WidgetProjectsActive,
		WidgetRevenueMonth,
		WidgetAppointmentsScheduled,
		WidgetGrowthChart,
		WidgetNewClients,
		WidgetServiceDistribution,
	}
}

// Widgets computes the panel for the given widget IDs, in that order.
// Duplicate IDs are shown once.
func Widgets(r Records, w aggregate.Window, ids []string) ([]Widget, error) {
	seen := make(map[string]bool, len(ids))
	widgets := make([]Widget, 0, len(ids))
	for _, id := range ids {
		def, ok := widgetDefs[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		wd := def.compute(r, w)
		wd.ID = id
		wd.Title = def.title
		widgets = append(widgets, wd)
	}
	return widgets, nil
}

func metric(n int) Widget {
	return Widget{Kind: KindMetric, Value: decimal.NewFromInt(int64(n))}
}

// revenueMonth is the windowed receita for the month containing now, with
// the change against the month before.
func revenueMonth(r Records, w aggregate.Window) Widget {
	two := aggregate.Window{Months: 2, Now: w.Instant(), Names: w.Names}
	rows := aggregate.Aggregate(r.Transactions, two, transactionDue,
		aggregate.Sum(SeriesRevenue, aggregate.Windowed, isRevenue, transactionAmount),
	)
	current, previous := rows[1].Get(SeriesRevenue), rows[0].Get(SeriesRevenue)
	return Widget{
		Kind:      KindMetric,
		Money:     true,
		Value:     current,
		Change:    aggregate.Change(current, previous),
		HasChange: true,
	}
}

// growthChart is the monthly receita over the whole window.
func growthChart(r Records, w aggregate.Window) Widget {
	return Widget{
		Kind:  KindChart,
		Money: true,
		Series: aggregate.Aggregate(r.Transactions, w, transactionDue,
			aggregate.Sum(SeriesRevenue, aggregate.Windowed, isRevenue, transactionAmount),
		),
	}
}

func serviceDistribution(r Records, _ aggregate.Window) Widget {
	dist := aggregate.Distribute(r.Appointments, func(a model.Appointment) string {
		return a.Service
	}, nil)
	return Widget{Kind: KindDistribution, Slices: dist.Shares()}
}
