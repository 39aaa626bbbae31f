package dashboard

import (
	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/model"
)

// ClientMetrics are the headline numbers of the clients view.
type ClientMetrics struct {
	Total        int `json:"total"`
	NewLastMonth int `json:"new_last_month"`
	WithEmail    int `json:"with_email"`
}

// ClientsView is the client growth chart plus its metrics.
type ClientsView struct {
	Growth  []aggregate.Bucket `json:"growth"`
	Metrics ClientMetrics      `json:"metrics"`
}

// Clients builds the clients view. Growth rows carry the running total of
// clients created up to each month end and the number created inside it.
func Clients(clients []model.Client, w aggregate.Window) ClientsView {
	growth := aggregate.Aggregate(clients, w, clientDate,
		aggregate.Count[model.Client](SeriesTotal, aggregate.Cumulative, nil),
		aggregate.Count[model.Client](SeriesNew, aggregate.Windowed, nil),
	)
	since := aggregate.MonthsBefore(w.Instant(), 1)
	return ClientsView{
		Growth: growth,
		Metrics: ClientMetrics{
			Total:        len(clients),
			NewLastMonth: aggregate.CountSince(clients, clientDate, since),
			WithEmail:    aggregate.CountWhere(clients, model.Client.HasEmail),
		},
	}
}
