// Package dashboard computes the dashboard views from loaded records.
//
// Every view is a pure function of its records and an aggregate.Window;
// nothing is cached between calls.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/inkboard/internal/model"
)

// ErrUnknownView is returned when a view name is not recognised.
var ErrUnknownView = errors.New("unknown view")

// View names.
const (
	ViewClients   = "clients"
	ViewFinance   = "finance"
	ViewSchedules = "schedules"
	ViewWidgets   = "widgets"
)

// Series names used in bucket rows.
const (
	SeriesTotal     = "total"
	SeriesNew       = "novos"
	SeriesRevenue   = "receita"
	SeriesExpenses  = "despesas"
	SeriesProfit    = "lucro"
	SeriesScheduled = "agendados"
	SeriesDone      = "concluidos"
	SeriesPaid      = "pagas"
	SeriesPending   = "pendentes"
)

// Views lists every view name in display order.
var Views = []string{ViewClients, ViewFinance, ViewSchedules, ViewWidgets}

// Records is the full set of inputs a dashboard is computed from.
type Records struct {
	Clients      []model.Client
	Transactions []model.Transaction
	Projects     []model.Project
	Appointments []model.Appointment
}

// CheckView returns ErrUnknownView, wrapped with the name, when name is not
// one of Views.
func CheckView(name string) error {
	for _, v := range Views {
		if v == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownView, name)
}

func clientDate(c model.Client) time.Time { return c.CreatedAt }

func transactionDue(t model.Transaction) time.Time { return t.DueDate }

func appointmentDate(a model.Appointment) time.Time { return a.Date }

func transactionAmount(t model.Transaction) decimal.Decimal { return t.Amount }

func isRevenue(t model.Transaction) bool { return t.Type == model.TransactionRevenue }

func isExpense(t model.Transaction) bool { return t.Type == model.TransactionExpense }
