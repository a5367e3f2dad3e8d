package budget

import (
	"github.com/dvloznov/wealthmind/internal/ledger"
	"github.com/google/uuid"
)

// LineItem is a single named asset or liability position.
type LineItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MonthlyData holds the user's recurring monthly figures and balance-sheet
// positions.
type MonthlyData struct {
	Salary        float64    `json:"salary"`
	SideIncome    float64    `json:"sideIncome"`
	Investments   float64    `json:"investments"` // monthly contribution
	FixedExpenses float64    `json:"fixedExpenses"`
	Assets        []LineItem `json:"assets"`
	Liabilities   []LineItem `json:"liabilities"`
}

// NewLineItem creates an item with a fresh identity.
func NewLineItem(name string, amount float64) LineItem {
	return LineItem{ID: uuid.NewString(), Name: name, Amount: amount}
}

func sumItems(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

// TotalAssets sums the asset positions.
func (m MonthlyData) TotalAssets() float64 { return sumItems(m.Assets) }

// TotalLiabilities sums the liability positions.
func (m MonthlyData) TotalLiabilities() float64 { return sumItems(m.Liabilities) }

// NetWorth is assets minus liabilities.
func (m MonthlyData) NetWorth() float64 {
	return m.TotalAssets() - m.TotalLiabilities()
}

// ProjectedSavings estimates what is left of this month's income after
// fixed costs and the ledger's recorded expenses.
func (m MonthlyData) ProjectedSavings(txs []ledger.Transaction) float64 {
	return m.Salary + m.SideIncome - m.FixedExpenses - ledger.TotalExpenses(txs)
}
