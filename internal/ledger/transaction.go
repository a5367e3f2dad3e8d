// Package ledger defines the transaction model and read-only query
// derivations over the full transaction history.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the calendar date layout used everywhere in the ledger.
// There is no sub-day granularity in the model.
const DateFormat = "2006-01-02"

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is one fully-populated ledger record. Entries are never
// mutated in place; deletion removes by ID.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// NewID returns a fresh collision-resistant transaction identifier.
func NewID() string {
	return uuid.NewString()
}

// Today returns the current date in the process-local timezone, formatted
// as a ledger date string.
func Today() string {
	return time.Now().Format(DateFormat)
}

// Prepend returns a new ledger with the given transactions inserted as a
// block ahead of the existing entries. The input slices are not modified
// and existing entries keep their relative order.
func Prepend(existing []Transaction, add []Transaction) []Transaction {
	out := make([]Transaction, 0, len(existing)+len(add))
	out = append(out, add...)
	out = append(out, existing...)
	return out
}

// Delete returns a new ledger with the transaction carrying the given ID
// removed. Unknown IDs leave the ledger unchanged.
func Delete(txs []Transaction, id string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
