package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/inkboard/internal/model"
)

// ColumnParser reads bank exports with a fixed column layout and one
// header row. TypeCol is -1 when the export has no type column.
type ColumnParser struct {
	Name       string
	NumFields  int
	DateFormat string
	DateCol    int
	DescCol    int
	AmountCol  int
	TypeCol    int
	RefCol     int // -1 derives a reference from date, description and amount
}

// Chase checking exports: Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
func Chase() *ColumnParser {
	return &ColumnParser{
		Name:       "chase",
		NumFields:  7,
		DateFormat: "01/02/2006",
		DateCol:    1,
		DescCol:    2,
		AmountCol:  3,
		TypeCol:    4,
		RefCol:     -1,
	}
}

// Nubank account exports: Data,Valor,Identificador,Descrição
func Nubank() *ColumnParser {
	return &ColumnParser{
		Name:       "nubank",
		NumFields:  4,
		DateFormat: "02/01/2006",
		DateCol:    0,
		DescCol:    3,
		AmountCol:  1,
		TypeCol:    -1,
		RefCol:     2,
	}
}

// Format returns the parser name.
func (p *ColumnParser) Format() string { return p.Name }

// Parse reads the export and returns BankTransactions.
func (p *ColumnParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = p.NumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", p.Name, err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := p.parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (p *ColumnParser) parseRow(rec []string) (model.BankTransaction, error) {
	date, err := time.Parse(p.DateFormat, strings.TrimSpace(rec[p.DateCol]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[p.DateCol], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[p.AmountCol]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[p.AmountCol], err)
	}

	desc := strings.TrimSpace(rec[p.DescCol])
	txn := model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
	}
	if p.TypeCol >= 0 {
		txn.Type = rec[p.TypeCol]
	}
	if p.RefCol >= 0 {
		txn.Reference = strings.TrimSpace(rec[p.RefCol])
	} else {
		txn.Reference = makeRef(p.Name, date, desc, amount)
	}
	return txn, nil
}

// makeRef creates a reference like chase_20250103_INKSUPPLYC_120.00. It is
// not unique: identical lines on one day share it.
func makeRef(bank string, date time.Time, desc string, amount decimal.Decimal) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s_%s", bank, date.Format("20060102"), prefix, amount.Abs().StringFixed(2))
}
