package extract

import (
	"fmt"
	"strings"

	"github.com/dvloznov/wealthmind/internal/category"
)

// buildImportPrompt constructs the instruction set for the model. The text
// is already truncated by the caller.
func buildImportPrompt(text string) string {
	var b strings.Builder

	b.WriteString("Extract financial transactions from the following text " +
		"(which might be SMS logs, bank statements, or natural language).\n\n")
	b.WriteString(fmt.Sprintf("Text: %q\n\n", text))

	b.WriteString("Rules:\n")
	b.WriteString("1. Identify Date (YYYY-MM-DD), Amount (number), Type ('income' or 'expense'), Description (short string), and Category.\n")
	b.WriteString("2. Categorize expenses into one of: " + strings.Join(category.ExpenseCategories, ", ") + ".\n")
	b.WriteString("3. Categorize income into one of: " + strings.Join(category.IncomeCategories, ", ") + ".\n")
	b.WriteString("4. If the text says \"Paid\" or \"Debit\", it's an expense. If \"Received\" or \"Credit\", it's income.\n")
	b.WriteString("5. Return a strict JSON array of objects. Do not include markdown formatting.\n\n")

	b.WriteString("Example Output format:\n")
	b.WriteString(`[{"date": "2023-10-27", "amount": 500, "type": "expense", "category": "Food", "description": "Lunch at McD"}]` + "\n")

	return b.String()
}
