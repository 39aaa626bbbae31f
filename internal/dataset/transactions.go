package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/inkboard/internal/id"
	"github.com/cleared-dev/inkboard/internal/model"
)

// TransactionHeader is the CSV header for transactions.csv.
const TransactionHeader = "id,type,category,description,amount,due_date,settled_date,client_id,reference"

const (
	txnNumFields  = 9
	txnColID      = 0
	txnColType    = 1
	txnColCat     = 2
	txnColDesc    = 3
	txnColAmount  = 4
	txnColDue     = 5
	txnColSettled = 6
	txnColClient  = 7
	txnColRef     = 8
)

var transactionCodec = codec[model.Transaction]{
	entity:    "transaction",
	header:    TransactionHeader,
	unmarshal: UnmarshalTransaction,
	marshal:   MarshalTransaction,
}

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader, loc *time.Location) ([]model.Transaction, []Warning, error) {
	return transactionCodec.read(r, loc)
}

// WriteTransactions writes transactions (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	return transactionCodec.write(w, txns)
}

// AppendTransactions appends transactions to an existing writer (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	return transactionCodec.appendRows(w, txns)
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[txnColID] = t.ID
	row[txnColType] = string(t.Type)
	row[txnColCat] = t.Category
	row[txnColDesc] = t.Description
	row[txnColAmount] = t.Amount.StringFixed(2)
	row[txnColDue] = formatDate(t.DueDate)
	row[txnColSettled] = formatDate(t.SettledDate)
	row[txnColClient] = t.ClientID
	row[txnColRef] = t.Reference
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string, loc *time.Location) (model.Transaction, []int, error) {
	if len(record) != txnNumFields {
		return model.Transaction{}, nil, fmt.Errorf("expected %d fields, got %d", txnNumFields, len(record))
	}

	amount, err := parseAmount(record[txnColAmount])
	if err != nil {
		return model.Transaction{}, nil, err
	}

	fc := newFieldCheck(loc)
	txn := model.Transaction{
		ID:          id.OrNew(record[txnColID]),
		Type:        model.TransactionType(record[txnColType]),
		Category:    record[txnColCat],
		Description: record[txnColDesc],
		Amount:      amount,
		DueDate:     fc.date(record, txnColDue),
		SettledDate: fc.date(record, txnColSettled),
		ClientID:    record[txnColClient],
		Reference:   record[txnColRef],
	}
	return txn, fc.bad, nil
}
