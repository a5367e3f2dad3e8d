package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/wealthmind/internal/advisor"
	"github.com/dvloznov/wealthmind/internal/api/middleware"
	"github.com/dvloznov/wealthmind/internal/budget"
	"github.com/dvloznov/wealthmind/internal/currency"
	"github.com/dvloznov/wealthmind/internal/ledger"
	"github.com/dvloznov/wealthmind/internal/store"
)

// Adviser generates AI-backed guidance. Satisfied by advisor.Advisor;
// the interface exists so handler tests can stub the model.
type Adviser interface {
	FinancialAdvice(ctx context.Context, txs []ledger.Transaction, monthly budget.MonthlyData, goals []budget.Goal) string
	BudgetPlan(ctx context.Context, name string, salary float64, currencyCode string) string
	EducationResources(ctx context.Context, topic string) []advisor.Resource
	FinanceNews(ctx context.Context) []advisor.Resource
}

// AdvisorHandler handles AI guidance endpoints.
type AdvisorHandler struct {
	state   *State
	adviser Adviser
	log     zerolog.Logger
}

// NewAdvisorHandler creates a new advisor handler.
func NewAdvisorHandler(state *State, adviser Adviser, log zerolog.Logger) *AdvisorHandler {
	return &AdvisorHandler{state: state, adviser: adviser, log: log}
}

// GetAdvice handles GET /api/advice
func (h *AdvisorHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	var (
		txs     []ledger.Transaction
		monthly budget.MonthlyData
		goals   []budget.Goal
	)
	h.state.View(func(snap *store.Snapshot) {
		txs = append([]ledger.Transaction(nil), snap.Transactions...)
		monthly = snap.Monthly
		goals = append([]budget.Goal(nil), snap.Goals...)
	})

	advice := h.adviser.FinancialAdvice(r.Context(), txs, monthly, goals)
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

// CreatePlan handles POST /api/plan
func (h *AdvisorHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string  `json:"name"`
		Salary float64 `json:"salary"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Salary <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "salary must be positive")
		return
	}

	var code currency.Code
	h.state.View(func(snap *store.Snapshot) {
		code = snap.Settings.Currency
	})

	plan := h.adviser.BudgetPlan(r.Context(), req.Name, req.Salary, string(code))
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"plan": plan})
}

// GetEducation handles GET /api/education?topic=...
func (h *AdvisorHandler) GetEducation(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		middleware.WriteError(w, http.StatusBadRequest, "topic is required")
		return
	}

	resources := h.adviser.EducationResources(r.Context(), topic)
	if resources == nil {
		resources = []advisor.Resource{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"topic":     topic,
		"resources": resources,
	})
}

// GetNews handles GET /api/news
func (h *AdvisorHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	resources := h.adviser.FinanceNews(r.Context())
	if resources == nil {
		resources = []advisor.Resource{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
	})
}
