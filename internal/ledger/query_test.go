package ledger

import (
	"testing"
	"time"
)

func sampleLedger() []Transaction {
	return []Transaction{
		{ID: "t1", Date: "2024-03-05", Amount: 1200, Type: TypeIncome, Category: "Salary", Description: "March salary"},
		{ID: "t2", Date: "2024-03-03", Amount: 45.50, Type: TypeExpense, Category: "Food", Description: "Groceries"},
		{ID: "t3", Date: "2024-03-03", Amount: 12, Type: TypeExpense, Category: "Transport", Description: "Bus ticket"},
		{ID: "t4", Date: "2024-02-28", Amount: 45.50, Type: TypeExpense, Category: "Food", Description: "Lunch at cafe"},
		{ID: "t5", Date: "2024-03-10", Amount: 300, Type: TypeIncome, Category: "Freelance", Description: "Logo design"},
	}
}

func ids(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestQueryApply(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "default is everything newest first",
			query: Query{},
			want:  []string{"t5", "t1", "t2", "t3", "t4"},
		},
		{
			name:  "filter All matches everything",
			query: Query{Filter: FilterAll},
			want:  []string{"t5", "t1", "t2", "t3", "t4"},
		},
		{
			name:  "filter income",
			query: Query{Filter: FilterIncome},
			want:  []string{"t5", "t1"},
		},
		{
			name:  "filter expense",
			query: Query{Filter: FilterExpense},
			want:  []string{"t2", "t3", "t4"},
		},
		{
			name:  "filter by category name",
			query: Query{Filter: "Food"},
			want:  []string{"t2", "t4"},
		},
		{
			name:  "search is case insensitive on description",
			query: Query{Search: "LUNCH"},
			want:  []string{"t4"},
		},
		{
			name:  "search matches category too",
			query: Query{Search: "transport"},
			want:  []string{"t3"},
		},
		{
			name:  "search and filter compose",
			query: Query{Search: "cafe", Filter: FilterIncome},
			want:  []string{},
		},
		{
			name:  "sort oldest",
			query: Query{Sort: SortOldest},
			want:  []string{"t4", "t2", "t3", "t1", "t5"},
		},
		{
			name:  "sort highest amount",
			query: Query{Sort: SortHighest},
			want:  []string{"t1", "t5", "t2", "t4", "t3"},
		},
		{
			name:  "sort lowest amount",
			query: Query{Sort: SortLowest},
			want:  []string{"t3", "t2", "t4", "t5", "t1"},
		},
		{
			name:  "unknown sort falls back to newest",
			query: Query{Sort: "sideways"},
			want:  []string{"t5", "t1", "t2", "t3", "t4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.Apply(sampleLedger())
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Apply() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestQueryApplyIdempotent(t *testing.T) {
	q := Query{Search: "o", Filter: FilterExpense, Sort: SortHighest}

	once := q.Apply(sampleLedger())
	twice := q.Apply(once)

	if !equalIDs(ids(once), ids(twice)) {
		t.Errorf("Re-applying the same query changed the result: %v then %v", ids(once), ids(twice))
	}
}

func TestQueryApplyDoesNotMutateInput(t *testing.T) {
	txs := sampleLedger()
	before := ids(txs)

	Query{Sort: SortLowest, Filter: FilterExpense}.Apply(txs)

	if !equalIDs(ids(txs), before) {
		t.Errorf("Apply mutated its input: %v, want %v", ids(txs), before)
	}
}

func TestSortStability(t *testing.T) {
	// t2 and t3 share a date; t2 and t4 share an amount. Ties keep input order.
	got := Query{Sort: SortOldest}.Apply(sampleLedger())
	wantOrder := map[string]int{}
	for i, id := range ids(got) {
		wantOrder[id] = i
	}
	if wantOrder["t2"] > wantOrder["t3"] {
		t.Error("Expected t2 to stay before t3 on equal dates")
	}

	got = Query{Sort: SortHighest}.Apply(sampleLedger())
	wantOrder = map[string]int{}
	for i, id := range ids(got) {
		wantOrder[id] = i
	}
	if wantOrder["t2"] > wantOrder["t4"] {
		t.Error("Expected t2 to stay before t4 on equal amounts")
	}
}

func TestSpentInCategoryMonth(t *testing.T) {
	txs := sampleLedger()

	tests := []struct {
		name     string
		category string
		month    string
		want     float64
	}{
		{"food in march", "Food", "2024-03", 45.50},
		{"food in february", "Food", "2024-02", 45.50},
		{"transport in march", "Transport", "2024-03", 12},
		{"income categories never count", "Salary", "2024-03", 0},
		{"empty month", "Food", "2024-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpentInCategoryMonth(txs, tt.category, tt.month); got != tt.want {
				t.Errorf("SpentInCategoryMonth(%q, %q) = %v, want %v", tt.category, tt.month, got, tt.want)
			}
		})
	}
}

func TestTotalExpenses(t *testing.T) {
	if got := TotalExpenses(sampleLedger()); got != 103 {
		t.Errorf("TotalExpenses() = %v, want 103", got)
	}
	if got := TotalExpenses(nil); got != 0 {
		t.Errorf("TotalExpenses(nil) = %v, want 0", got)
	}
}

func TestSummarizeDay(t *testing.T) {
	txs := sampleLedger()

	s := SummarizeDay(txs, "2024-03-03")
	if s.Income != 0 || s.Expense != 57.50 || s.Net != -57.50 {
		t.Errorf("SummarizeDay(2024-03-03) = %+v, want expense 57.50 net -57.50", s)
	}

	s = SummarizeDay(txs, "2024-03-05")
	if s.Income != 1200 || s.Expense != 0 || s.Net != 1200 {
		t.Errorf("SummarizeDay(2024-03-05) = %+v, want income 1200", s)
	}

	s = SummarizeDay(txs, "2019-01-01")
	if s.Income != 0 || s.Expense != 0 || s.Net != 0 {
		t.Errorf("SummarizeDay(empty day) = %+v, want zeros", s)
	}
}

func TestSummarizeToday(t *testing.T) {
	today := time.Now().Format(DateFormat)
	txs := []Transaction{
		{ID: "a", Date: today, Amount: 10, Type: TypeExpense},
		{ID: "b", Date: "2000-01-01", Amount: 99, Type: TypeExpense},
	}

	s := SummarizeToday(txs)
	if s.Expense != 10 {
		t.Errorf("SummarizeToday().Expense = %v, want 10", s.Expense)
	}
}
