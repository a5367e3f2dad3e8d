// Package budget covers the monthly planning surfaces: per-category spend
// limits, the monthly income/asset/liability figures, and savings goals.
package budget

import (
	"github.com/dvloznov/wealthmind/internal/category"
	"github.com/dvloznov/wealthmind/internal/ledger"
)

// ApproachingThreshold is the spend percentage at which a budget is
// flagged as approaching its limit.
const ApproachingThreshold = 80.0

// Budget is a per-category monthly spend limit. A zero limit means the
// budget is not active.
type Budget struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// Status is the evaluated state of one active budget for the current month.
type Status struct {
	Category    string  `json:"category"`
	Limit       float64 `json:"limit"`
	Spent       float64 `json:"spent"`
	Percent     float64 `json:"percent"` // capped at 100
	Exceeded    bool    `json:"exceeded"`
	Approaching bool    `json:"approaching"`
}

// Defaults returns a zero-limit budget for every expense category, in
// registry order.
func Defaults() []Budget {
	out := make([]Budget, 0, len(category.ExpenseCategories))
	for _, c := range category.ExpenseCategories {
		out = append(out, Budget{Category: c})
	}
	return out
}

// SetLimit updates the limit for a category, appending a new budget entry
// if the category has none yet. Returns the new slice.
func SetLimit(budgets []Budget, cat string, limit float64) []Budget {
	for i := range budgets {
		if budgets[i].Category == cat {
			budgets[i].Limit = limit
			return budgets
		}
	}
	return append(budgets, Budget{Category: cat, Limit: limit})
}

// Evaluate computes the current-month status of every active budget
// against the ledger. Budgets with a zero limit are skipped.
func Evaluate(budgets []Budget, txs []ledger.Transaction) []Status {
	out := make([]Status, 0, len(budgets))
	for _, b := range budgets {
		if b.Limit == 0 {
			continue
		}
		spent := ledger.SpentInCategoryThisMonth(txs, b.Category)
		percent := spent / b.Limit * 100
		if percent > 100 {
			percent = 100
		}
		st := Status{
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    spent,
			Percent:  percent,
			Exceeded: spent > b.Limit,
		}
		st.Approaching = !st.Exceeded && st.Percent >= ApproachingThreshold
		out = append(out, st)
	}
	return out
}
