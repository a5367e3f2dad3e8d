// Package store persists the application snapshot. The core hands the full
// snapshot to a Store after every mutation and does not know or care where
// it ends up.
package store

import (
	"context"

	"github.com/dvloznov/wealthmind/internal/budget"
	"github.com/dvloznov/wealthmind/internal/currency"
	"github.com/dvloznov/wealthmind/internal/ledger"
)

// Settings are the user-level preferences stored alongside the data.
type Settings struct {
	Currency            currency.Code `json:"currency"`
	NotificationEnabled bool          `json:"notificationEnabled"`
}

// Snapshot is the full persisted application state.
type Snapshot struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Budgets      []budget.Budget      `json:"budgets"`
	Goals        []budget.Goal        `json:"goals"`
	Monthly      budget.MonthlyData   `json:"monthly"`
	Settings     Settings             `json:"settings"`
}

// NewSnapshot returns the initial state for a fresh install: an empty
// ledger, zero-limit budgets for every expense category, one starter goal
// and USD display.
func NewSnapshot() *Snapshot {
	goal := budget.NewGoal("Emergency Fund", 10000, budget.TermShort, 0)
	goal.CurrentAmount = 2000
	return &Snapshot{
		Transactions: []ledger.Transaction{},
		Budgets:      budget.Defaults(),
		Goals:        []budget.Goal{goal},
		Settings:     Settings{Currency: currency.USD},
	}
}

// Store loads and saves snapshots.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
