package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	TransactionRevenue TransactionType = "receita"
	TransactionExpense TransactionType = "despesa"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionRevenue || t == TransactionExpense
}

// Transaction is a row in transactions.csv.
type Transaction struct {
	ID          string
	Type        TransactionType
	Category    string // free-form, may be empty
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time // zero when missing
	SettledDate time.Time // zero while pending
	ClientID    string
	Reference   string // bank reference for imported lines, empty otherwise
}

// Settled reports whether the transaction has been paid.
func (t Transaction) Settled() bool {
	return !t.SettledDate.IsZero()
}

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}
