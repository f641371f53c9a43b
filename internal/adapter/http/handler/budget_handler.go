package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/budgetd/internal/adapter/http/dto"
	"github.com/fintrack/budgetd/internal/adapter/http/middleware"
	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	CreateBudget(ctx context.Context, userID string, input usecase.CreateBudgetInput) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, id string, input usecase.UpdateBudgetInput) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, id, reason string) error
	GetBudget(ctx context.Context, userID, id string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]*domain.Budget, error)
	ListChangeLog(ctx context.Context, userID, budgetID string) ([]*domain.ChangeLogEntry, error)
	GetBudgetProgress(ctx context.Context, userID string, now time.Time) (*usecase.ProgressReport, error)
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
	now      func() time.Time
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC, now: time.Now}
}

func requestUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return "", false
	}
	return userID, true
}

// Create creates a new budget.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.CreateBudget(r.Context(), userID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create budget", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	budget, err := h.budgetUC.GetBudget(r.Context(), userID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// List lists the caller's budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgetUC.ListBudgets(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budgets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBudgetsResponse{
		Budgets: dto.BudgetsFromDomain(budgets),
		Total:   int64(len(budgets)),
	})
}

// Update applies a partial update to a budget.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	var req dto.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.UpdateBudget(r.Context(), userID, id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Delete removes a budget. The body is optional and may carry an audit reason.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	var req dto.DeleteBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.budgetUC.DeleteBudget(r.Context(), userID, id, req.Reason); err != nil {
		writeError(w, mapDomainError(err), "failed to delete budget", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Progress returns the per-budget progress, portfolio summary and health score.
func (h *BudgetHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	report, err := h.budgetUC.GetBudgetProgress(r.Context(), userID, h.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute progress", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProgressReportFromDomain(report))
}

// ChangeLog returns the audit trail for a budget, newest first. History
// survives budget deletion, so no existence check is made.
func (h *BudgetHandler) ChangeLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	entries, err := h.budgetUC.ListChangeLog(r.Context(), userID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list change log", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListChangeLogResponse{
		Entries: dto.ChangeLogFromDomain(entries),
		Total:   int64(len(entries)),
	})
}
