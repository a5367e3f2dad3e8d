package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/wealthmind/internal/api/middleware"
	"github.com/dvloznov/wealthmind/internal/category"
	"github.com/dvloznov/wealthmind/internal/ledger"
	"github.com/dvloznov/wealthmind/internal/store"
)

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	state *State
	log   zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(state *State, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{state: state, log: log}
}

// ListTransactions handles GET /api/transactions
// Supports search, filter and sort query parameters.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := ledger.Query{
		Search: params.Get("search"),
		Filter: params.Get("filter"),
		Sort:   params.Get("sort"),
	}

	var result []ledger.Transaction
	h.state.View(func(snap *store.Snapshot) {
		result = q.Apply(snap.Transactions)
	})

	if result == nil {
		result = []ledger.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txType := ledger.TransactionType(req.Type)
	if txType != ledger.TypeIncome && txType != ledger.TypeExpense {
		middleware.WriteError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	if req.Description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	tx := ledger.Transaction{
		ID:          ledger.NewID(),
		Date:        req.Date,
		Amount:      req.Amount,
		Type:        txType,
		Category:    req.Category,
		Description: req.Description,
	}
	if tx.Date == "" {
		tx.Date = ledger.Today()
	}
	if !category.IsValid(tx.Type, tx.Category) {
		tx.Category = category.DefaultFor(tx.Type)
	}

	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		snap.Transactions = ledger.Prepend(snap.Transactions, []ledger.Transaction{tx})
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		snap.Transactions = ledger.Delete(snap.Transactions, id)
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

// Summary handles GET /api/summary
func (h *TransactionsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		Today         ledger.DaySummary `json:"today"`
		TotalExpenses float64           `json:"total_expenses"`
		NetWorth      float64           `json:"net_worth"`
	}

	h.state.View(func(snap *store.Snapshot) {
		resp.Today = ledger.SummarizeToday(snap.Transactions)
		resp.TotalExpenses = ledger.TotalExpenses(snap.Transactions)
		resp.NetWorth = snap.Monthly.NetWorth()
	})

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// CategoriesHandler handles category-related endpoints.
type CategoriesHandler struct {
	log zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{log: log}
}

// ListCategories handles GET /api/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expense": category.ExpenseCategories,
		"income":  category.IncomeCategories,
	})
}
