package extract

import "github.com/dvloznov/wealthmind/internal/ledger"

// Candidate is a partially-populated transaction produced by the model.
// Every field is optional; nil means the model did not emit the field.
// Unknown keys in the model output are ignored during decoding and
// downstream review/commit is responsible for defaulting what is missing.
type Candidate struct {
	Date        *string                 `json:"date,omitempty"`
	Amount      *float64                `json:"amount,omitempty"`
	Type        *ledger.TransactionType `json:"type,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Description *string                 `json:"description,omitempty"`
}
