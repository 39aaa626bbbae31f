package dashboard

import (
	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/model"
)

// FinanceView holds the monthly revenue chart, the category breakdown and
// the paid/pending split.
type FinanceView struct {
	Revenue    []aggregate.Bucket     `json:"revenue"`
	Categories []aggregate.Share      `json:"categories"`
	Payments   aggregate.Distribution `json:"payments"`
}

// Finance builds the finance view. Transactions are bucketed by due date;
// lucro is receita minus despesas per month.
func Finance(txns []model.Transaction, w aggregate.Window) FinanceView {
	rows := aggregate.Aggregate(txns, w, transactionDue,
		aggregate.Sum(SeriesRevenue, aggregate.Windowed, isRevenue, transactionAmount),
		aggregate.Sum(SeriesExpenses, aggregate.Windowed, isExpense, transactionAmount),
	)
	for i, b := range rows {
		rows[i] = b.With(SeriesProfit, b.Get(SeriesRevenue).Sub(b.Get(SeriesExpenses)))
	}

	categories := aggregate.Distribute(txns, func(t model.Transaction) string {
		return t.Category
	}, transactionAmount)

	return FinanceView{
		Revenue:    rows,
		Categories: categories.Shares(),
		Payments:   Payments(txns),
	}
}

// Payments splits transaction amounts into settled (pagas) and pending
// (pendentes). Both keys are always present.
func Payments(txns []model.Transaction) aggregate.Distribution {
	return aggregate.Distribution{
		{Key: SeriesPaid, Value: aggregate.SumWhere(txns, model.Transaction.Settled, transactionAmount)},
		{Key: SeriesPending, Value: aggregate.SumWhere(txns, func(t model.Transaction) bool {
			return !t.Settled()
		}, transactionAmount)},
	}
}
