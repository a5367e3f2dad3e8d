package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dvloznov/wealthmind/internal/budget"
	"github.com/dvloznov/wealthmind/internal/currency"
	"github.com/dvloznov/wealthmind/internal/ledger"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "data.json")
	fs := NewFileStore(path)

	snap, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}

	if len(snap.Transactions) != 0 {
		t.Errorf("Fresh snapshot has %d transactions, want 0", len(snap.Transactions))
	}
	if len(snap.Budgets) == 0 {
		t.Error("Fresh snapshot has no default budgets")
	}
	if len(snap.Goals) != 1 || snap.Goals[0].Name != "Emergency Fund" {
		t.Errorf("Fresh snapshot goals = %+v, want starter Emergency Fund", snap.Goals)
	}
	if snap.Settings.Currency != currency.USD {
		t.Errorf("Fresh snapshot currency = %q, want USD", snap.Settings.Currency)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "wealthmind.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	snap := NewSnapshot()
	snap.Transactions = []ledger.Transaction{
		{ID: "t1", Date: "2024-03-01", Amount: 500, Type: ledger.TypeExpense, Category: "Food", Description: "Lunch"},
	}
	snap.Budgets = budget.SetLimit(snap.Budgets, "Food", 300)
	snap.Settings.Currency = currency.INR

	if err := fs.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(got.Transactions) != 1 || got.Transactions[0].ID != "t1" {
		t.Errorf("Transactions lost in round trip: %+v", got.Transactions)
	}
	if got.Transactions[0].Amount != 500 || got.Transactions[0].Type != ledger.TypeExpense {
		t.Errorf("Transaction fields lost: %+v", got.Transactions[0])
	}
	var foodLimit float64
	for _, b := range got.Budgets {
		if b.Category == "Food" {
			foodLimit = b.Limit
		}
	}
	if foodLimit != 300 {
		t.Errorf("Food budget limit = %v after round trip, want 300", foodLimit)
	}
	if got.Settings.Currency != currency.INR {
		t.Errorf("Currency = %q after round trip, want INR", got.Settings.Currency)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	snap := NewSnapshot()
	if err := fs.Save(ctx, snap); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	snap.Transactions = []ledger.Transaction{{ID: "later"}}
	if err := fs.Save(ctx, snap); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].ID != "later" {
		t.Errorf("Second save not visible: %+v", got.Transactions)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			t.Errorf("Unexpected leftover file %q", e.Name())
		}
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("Load of corrupt file succeeded, want error")
	}
}

func TestFileStoreLoadNilTransactions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"settings":{"currency":"USD"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Transactions == nil {
		t.Error("Transactions is nil, want empty slice")
	}
}
