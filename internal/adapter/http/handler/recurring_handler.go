package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/budgetd/internal/adapter/http/dto"
	"github.com/fintrack/budgetd/internal/domain"
)

// RecurringService defines the behavior needed by RecurringHandler.
type RecurringService interface {
	RunForUser(ctx context.Context, userID string, today time.Time) (int, error)
	MarkBillPaid(ctx context.Context, userID, billID string, now time.Time) (*domain.Transaction, error)
}

// RecurringHandler handles recurring bill HTTP requests.
type RecurringHandler struct {
	recurringUC RecurringService
	now         func() time.Time
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringUC RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringUC: recurringUC, now: time.Now}
}

// Run backfills missed instances for every recurring template the caller
// owns. Templates already being generated elsewhere are skipped.
func (h *RecurringHandler) Run(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	created, err := h.recurringUC.RunForUser(r.Context(), userID, h.now())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate instances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GenerateInstancesResponse{InstancesCreated: created})
}

// PayBill marks a bill paid and advances its due date one cadence step.
func (h *RecurringHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	bill, err := h.recurringUC.MarkBillPaid(r.Context(), userID, id, h.now())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to pay bill", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BillFromDomain(bill))
}
