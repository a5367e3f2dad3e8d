package budget

import (
	"testing"
	"time"

	"github.com/dvloznov/wealthmind/internal/category"
	"github.com/dvloznov/wealthmind/internal/ledger"
)

func thisMonthDate() string {
	return time.Now().Format("2006-01") + "-05"
}

func TestDefaults(t *testing.T) {
	got := Defaults()
	if len(got) != len(category.ExpenseCategories) {
		t.Fatalf("Defaults returned %d budgets, want %d", len(got), len(category.ExpenseCategories))
	}
	for i, b := range got {
		if b.Category != category.ExpenseCategories[i] {
			t.Errorf("Defaults()[%d].Category = %q, want %q", i, b.Category, category.ExpenseCategories[i])
		}
		if b.Limit != 0 {
			t.Errorf("Defaults()[%d].Limit = %v, want 0", i, b.Limit)
		}
	}
}

func TestSetLimit(t *testing.T) {
	budgets := Defaults()

	budgets = SetLimit(budgets, "Food", 300)
	var found bool
	for _, b := range budgets {
		if b.Category == "Food" && b.Limit == 300 {
			found = true
		}
	}
	if !found {
		t.Error("SetLimit did not update existing Food budget")
	}

	// Unknown category appends
	before := len(budgets)
	budgets = SetLimit(budgets, "Custom", 50)
	if len(budgets) != before+1 {
		t.Errorf("SetLimit on new category: len = %d, want %d", len(budgets), before+1)
	}
}

func TestEvaluate(t *testing.T) {
	date := thisMonthDate()
	txs := []ledger.Transaction{
		{Date: date, Amount: 250, Type: ledger.TypeExpense, Category: "Food"},
		{Date: date, Amount: 90, Type: ledger.TypeExpense, Category: "Transport"},
		{Date: date, Amount: 40, Type: ledger.TypeExpense, Category: "Health"},
		{Date: "2020-01-01", Amount: 999, Type: ledger.TypeExpense, Category: "Food"}, // old month ignored
		{Date: date, Amount: 5000, Type: ledger.TypeIncome, Category: "Salary"},       // income ignored
	}

	budgets := []Budget{
		{Category: "Food", Limit: 200},      // exceeded
		{Category: "Transport", Limit: 100}, // approaching (90%)
		{Category: "Health", Limit: 100},    // comfortable (40%)
		{Category: "Shopping", Limit: 0},    // inactive, skipped
	}

	statuses := Evaluate(budgets, txs)
	if len(statuses) != 3 {
		t.Fatalf("Evaluate returned %d statuses, want 3 (zero-limit skipped)", len(statuses))
	}

	byCat := map[string]Status{}
	for _, st := range statuses {
		byCat[st.Category] = st
	}

	food := byCat["Food"]
	if !food.Exceeded || food.Approaching {
		t.Errorf("Food status = %+v, want exceeded and not approaching", food)
	}
	if food.Percent != 100 {
		t.Errorf("Food percent = %v, want capped at 100", food.Percent)
	}
	if food.Spent != 250 {
		t.Errorf("Food spent = %v, want 250", food.Spent)
	}

	transport := byCat["Transport"]
	if transport.Exceeded || !transport.Approaching {
		t.Errorf("Transport status = %+v, want approaching and not exceeded", transport)
	}
	if transport.Percent != 90 {
		t.Errorf("Transport percent = %v, want 90", transport.Percent)
	}

	health := byCat["Health"]
	if health.Exceeded || health.Approaching {
		t.Errorf("Health status = %+v, want neither flag", health)
	}
}

func TestEvaluateAtExactLimit(t *testing.T) {
	txs := []ledger.Transaction{
		{Date: thisMonthDate(), Amount: 100, Type: ledger.TypeExpense, Category: "Food"},
	}
	statuses := Evaluate([]Budget{{Category: "Food", Limit: 100}}, txs)
	if len(statuses) != 1 {
		t.Fatal("Expected one status")
	}
	// Spending the exact limit is approaching, not exceeded
	if statuses[0].Exceeded {
		t.Error("Exact-limit spend flagged as exceeded")
	}
	if !statuses[0].Approaching {
		t.Error("Exact-limit spend not flagged as approaching")
	}
}
