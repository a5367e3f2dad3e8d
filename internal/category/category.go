// Package category holds the fixed vocabulary of transaction categories,
// partitioned by transaction type. The lists are ordered for display and
// never change at runtime.
package category

import "github.com/dvloznov/wealthmind/internal/ledger"

// ExpenseCategories is the ordered list of valid expense category labels.
var ExpenseCategories = []string{
	"Food",
	"Transport",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Health",
	"Education",
	"Other",
}

// IncomeCategories is the ordered list of valid income category labels.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment Return",
	"Other",
}

// ForType returns the category list matching the given transaction type.
// Anything that is not income is treated as expense.
func ForType(t ledger.TransactionType) []string {
	if t == ledger.TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IsValid reports whether name belongs to the category set for type t.
func IsValid(t ledger.TransactionType, name string) bool {
	for _, c := range ForType(t) {
		if c == name {
			return true
		}
	}
	return false
}

// DefaultFor returns the default category for type t, which is the first
// entry of that type's list.
func DefaultFor(t ledger.TransactionType) string {
	return ForType(t)[0]
}
