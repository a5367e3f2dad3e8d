package ledger

import (
	"sort"
	"strings"
	"time"
)

// Filter selector values. Any other value selects an exact category match.
const (
	FilterAll     = "All"
	FilterIncome  = "Income"
	FilterExpense = "Expense"
)

// Sort order keys. Unrecognized keys fall back to SortNewest.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortHighest = "highest"
	SortLowest  = "lowest"
)

// Query describes a derived view over a ledger snapshot: a case-insensitive
// search term, a type/category selector and a sort order.
type Query struct {
	Search string
	Filter string
	Sort   string
}

// Apply returns a newly constructed, filtered and sorted view of txs.
// The input slice is never modified.
func (q Query) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if matchesSearch(t, q.Search) && matchesFilter(t, q.Filter) {
			out = append(out, t)
		}
	}
	sortTransactions(out, q.Sort)
	return out
}

// matchesSearch reports whether the search term is a case-insensitive
// substring of the description or the category. An empty term matches
// everything.
func matchesSearch(t Transaction, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Description), needle) ||
		strings.Contains(strings.ToLower(t.Category), needle)
}

func matchesFilter(t Transaction, filter string) bool {
	switch filter {
	case FilterAll, "":
		return true
	case FilterIncome:
		return t.Type == TypeIncome
	case FilterExpense:
		return t.Type == TypeExpense
	default:
		return t.Category == filter
	}
}

// sortTransactions sorts in place. The sort is stable: entries with equal
// dates or amounts keep their relative order.
func sortTransactions(txs []Transaction, order string) {
	switch order {
	case SortOldest:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date < txs[j].Date })
	case SortHighest:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Amount > txs[j].Amount })
	case SortLowest:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Amount < txs[j].Amount })
	case SortNewest:
		fallthrough
	default:
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date > txs[j].Date })
	}
}

// SpentInCategoryMonth sums expense amounts in the given category whose
// date falls within the month given as a YYYY-MM prefix.
func SpentInCategoryMonth(txs []Transaction, cat, month string) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == TypeExpense && t.Category == cat && strings.HasPrefix(t.Date, month) {
			sum += t.Amount
		}
	}
	return sum
}

// SpentInCategoryThisMonth sums expense amounts in the given category for
// the current calendar month.
func SpentInCategoryThisMonth(txs []Transaction, cat string) float64 {
	return SpentInCategoryMonth(txs, cat, time.Now().Format("2006-01"))
}

// TotalExpenses sums the amount of every expense-type transaction.
func TotalExpenses(txs []Transaction) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == TypeExpense {
			sum += t.Amount
		}
	}
	return sum
}

// DaySummary holds the income, expense and net totals for a single day.
type DaySummary struct {
	Income  float64
	Expense float64
	Net     float64
}

// SummarizeDay totals all transactions dated on the given day.
func SummarizeDay(txs []Transaction, date string) DaySummary {
	var s DaySummary
	for _, t := range txs {
		if t.Date != date {
			continue
		}
		if t.Type == TypeIncome {
			s.Income += t.Amount
		} else {
			s.Expense += t.Amount
		}
	}
	s.Net = s.Income - s.Expense
	return s
}

// SummarizeToday totals all transactions dated today.
func SummarizeToday(txs []Transaction) DaySummary {
	return SummarizeDay(txs, Today())
}
