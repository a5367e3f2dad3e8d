package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/wealthmind/internal/api/middleware"
	"github.com/dvloznov/wealthmind/internal/budget"
	"github.com/dvloznov/wealthmind/internal/category"
	"github.com/dvloznov/wealthmind/internal/currency"
	"github.com/dvloznov/wealthmind/internal/ledger"
	"github.com/dvloznov/wealthmind/internal/store"
)

// PlanningHandler handles budgets, monthly planning, goals and settings.
type PlanningHandler struct {
	state *State
	log   zerolog.Logger
}

// NewPlanningHandler creates a new planning handler.
func NewPlanningHandler(state *State, log zerolog.Logger) *PlanningHandler {
	return &PlanningHandler{state: state, log: log}
}

// ListBudgets handles GET /api/budgets
// Returns configured limits together with current-month spend status.
func (h *PlanningHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		Budgets  []budget.Budget `json:"budgets"`
		Statuses []budget.Status `json:"statuses"`
	}

	h.state.View(func(snap *store.Snapshot) {
		resp.Budgets = append([]budget.Budget(nil), snap.Budgets...)
		resp.Statuses = budget.Evaluate(snap.Budgets, snap.Transactions)
	})

	if resp.Budgets == nil {
		resp.Budgets = []budget.Budget{}
	}
	if resp.Statuses == nil {
		resp.Statuses = []budget.Status{}
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// BudgetStatus handles GET /api/budgets/status
// Returns current-month spend status only, without the configured limits.
func (h *PlanningHandler) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	var statuses []budget.Status
	h.state.View(func(snap *store.Snapshot) {
		statuses = budget.Evaluate(snap.Budgets, snap.Transactions)
	})
	if statuses == nil {
		statuses = []budget.Status{}
	}
	middleware.WriteJSON(w, http.StatusOK, statuses)
}

// SetBudget handles PUT /api/budgets
func (h *PlanningHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !category.IsValid(ledger.TypeExpense, req.Category) {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown expense category: "+req.Category)
		return
	}
	if req.Limit < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		snap.Budgets = budget.SetLimit(snap.Budgets, req.Category, req.Limit)
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save budget")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save budget")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"category": req.Category,
		"limit":    req.Limit,
	})
}

// GetMonthly handles GET /api/monthly
func (h *PlanningHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		Monthly          budget.MonthlyData `json:"monthly"`
		NetWorth         float64            `json:"net_worth"`
		ProjectedSavings float64            `json:"projected_savings"`
	}

	h.state.View(func(snap *store.Snapshot) {
		resp.Monthly = snap.Monthly
		resp.NetWorth = snap.Monthly.NetWorth()
		resp.ProjectedSavings = snap.Monthly.ProjectedSavings(snap.Transactions)
	})

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// PutMonthly handles PUT /api/monthly
func (h *PlanningHandler) PutMonthly(w http.ResponseWriter, r *http.Request) {
	var req budget.MonthlyData

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		snap.Monthly = req
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save monthly data")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save monthly data")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, req)
}

// ListGoals handles GET /api/goals
func (h *PlanningHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	var goals []budget.Goal
	h.state.View(func(snap *store.Snapshot) {
		goals = append([]budget.Goal(nil), snap.Goals...)
	})

	if goals == nil {
		goals = []budget.Goal{}
	}
	middleware.WriteJSON(w, http.StatusOK, goals)
}

// CreateGoal handles POST /api/goals
func (h *PlanningHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string          `json:"name"`
		Target float64         `json:"target"`
		Term   budget.GoalTerm `json:"term"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Target <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "target must be positive")
		return
	}
	switch req.Term {
	case budget.TermShort, budget.TermMid, budget.TermLong:
	default:
		middleware.WriteError(w, http.StatusBadRequest, "term must be short, mid or long")
		return
	}

	var goal budget.Goal
	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		goal = budget.NewGoal(req.Name, req.Target, req.Term, len(snap.Goals))
		snap.Goals = append(snap.Goals, goal)
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save goal")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, goal)
}

// AddGoalFunds handles PUT /api/goals/{id}
func (h *PlanningHandler) AddGoalFunds(w http.ResponseWriter, r *http.Request, goalID string) {
	var req struct {
		Amount float64 `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	var updated *budget.Goal
	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		for i := range snap.Goals {
			if snap.Goals[i].ID == goalID {
				snap.Goals[i].CurrentAmount += req.Amount
				updated = &snap.Goals[i]
				return nil
			}
		}
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", goalID).Msg("Failed to update goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}
	if updated == nil {
		middleware.WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, *updated)
}

// DeleteGoal handles DELETE /api/goals/{id}
func (h *PlanningHandler) DeleteGoal(w http.ResponseWriter, r *http.Request, goalID string) {
	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		kept := snap.Goals[:0]
		for _, g := range snap.Goals {
			if g.ID != goalID {
				kept = append(kept, g)
			}
		}
		snap.Goals = kept
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", goalID).Msg("Failed to delete goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"id": goalID, "status": "deleted"})
}

// GetSettings handles GET /api/settings
// The response carries the quick-entry amounts for the active currency so
// clients do not hardcode them.
func (h *PlanningHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		store.Settings
		QuickAmounts []float64 `json:"quickAmounts"`
	}
	h.state.View(func(snap *store.Snapshot) {
		resp.Settings = snap.Settings
	})
	resp.QuickAmounts = currency.SuggestedAmounts(resp.Currency)
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// PutSettings handles PUT /api/settings
func (h *PlanningHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req store.Settings

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !currency.Valid(req.Currency) {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown currency: "+string(req.Currency))
		return
	}

	err := h.state.Update(r.Context(), func(snap *store.Snapshot) error {
		snap.Settings = req
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save settings")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, req)
}
