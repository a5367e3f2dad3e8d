package review

import (
	"github.com/dvloznov/wealthmind/internal/extract"
	"github.com/dvloznov/wealthmind/internal/ledger"
)

// Defaults applied at commit time for fields the model did not fill in.
// A candidate is never rejected: missing fields resolve to a best-effort
// complete record.
const (
	DefaultCategory    = "Other"
	DefaultDescription = "Imported Transaction"
)

// Commit converts every staged candidate into a full transaction and merges
// them into the given ledger. New entries are prepended as a block, existing
// entries keep their relative order, and no deduplication is performed, so
// re-importing the same text produces duplicate rows. The buffer is cleared
// afterwards.
func Commit(b *Buffer, txs []ledger.Transaction) []ledger.Transaction {
	add := make([]ledger.Transaction, 0, b.Len())
	for _, c := range b.Items() {
		add = append(add, finalize(c))
	}
	b.Clear()
	return ledger.Prepend(txs, add)
}

// finalize builds a complete transaction from a candidate, assigning a
// fresh identity and defaults for anything missing.
func finalize(c extract.Candidate) ledger.Transaction {
	t := ledger.Transaction{
		ID:          ledger.NewID(),
		Date:        ledger.Today(),
		Amount:      0,
		Type:        ledger.TypeExpense,
		Category:    DefaultCategory,
		Description: DefaultDescription,
	}
	if c.Date != nil && *c.Date != "" {
		t.Date = *c.Date
	}
	if c.Amount != nil {
		t.Amount = *c.Amount
	}
	if c.Type != nil && *c.Type != "" {
		t.Type = *c.Type
	}
	if c.Category != nil && *c.Category != "" {
		t.Category = *c.Category
	}
	if c.Description != nil && *c.Description != "" {
		t.Description = *c.Description
	}
	return t
}
