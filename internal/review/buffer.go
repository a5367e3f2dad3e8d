// Package review owns the staging area between extraction and the ledger:
// an editable ordered buffer of transaction candidates and the commit step
// that finalizes them into full ledger entries.
package review

import (
	"github.com/dvloznov/wealthmind/internal/category"
	"github.com/dvloznov/wealthmind/internal/extract"
	"github.com/dvloznov/wealthmind/internal/ledger"
)

// Field names accepted by Buffer.UpdateField.
const (
	FieldDate        = "date"
	FieldAmount      = "amount"
	FieldType        = "type"
	FieldCategory    = "category"
	FieldDescription = "description"
)

// Buffer is the editable, ordered staging list of candidates awaiting user
// review. Out-of-range indices are silent no-ops: the buffer mirrors a UI
// list and a stale index means the row is already gone.
type Buffer struct {
	items []extract.Candidate
}

// Load replaces the buffer contents wholesale.
func (b *Buffer) Load(candidates []extract.Candidate) {
	b.items = make([]extract.Candidate, len(candidates))
	copy(b.items, candidates)
}

// Len returns the number of staged candidates.
func (b *Buffer) Len() int { return len(b.items) }

// Items returns a copy of the staged candidates in order.
func (b *Buffer) Items() []extract.Candidate {
	out := make([]extract.Candidate, len(b.items))
	copy(out, b.items)
	return out
}

// UpdateField applies a single-field edit to the candidate at index i.
// When the type changes, the category is re-coerced: if the current value
// is not a member of the new type's category set, it is replaced with that
// set's default. Category correctness here is load-bearing for downstream
// budget aggregation.
func (b *Buffer) UpdateField(i int, field string, value any) {
	if i < 0 || i >= len(b.items) {
		return
	}
	c := &b.items[i]

	switch field {
	case FieldDate:
		if s, ok := value.(string); ok {
			c.Date = &s
		}
	case FieldAmount:
		if f, ok := toFloat64(value); ok {
			c.Amount = &f
		}
	case FieldDescription:
		if s, ok := value.(string); ok {
			c.Description = &s
		}
	case FieldCategory:
		if s, ok := value.(string); ok {
			c.Category = &s
		}
	case FieldType:
		s, ok := value.(string)
		if !ok {
			return
		}
		t := ledger.TransactionType(s)
		c.Type = &t

		cur := ""
		if c.Category != nil {
			cur = *c.Category
		}
		if !category.IsValid(t, cur) {
			def := category.DefaultFor(t)
			c.Category = &def
		}
	}
}

// Remove deletes the candidate at index i, shifting subsequent entries.
func (b *Buffer) Remove(i int) {
	if i < 0 || i >= len(b.items) {
		return
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
}

// Clear empties the buffer. Used on cancel and after a successful commit.
func (b *Buffer) Clear() {
	b.items = nil
}

// toFloat64 accepts the numeric types a JSON body or a caller may hand us.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
