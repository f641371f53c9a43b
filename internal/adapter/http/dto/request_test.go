package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/budgetd/internal/domain"
)

func TestCreateBudgetRequest_ToUseCaseInput(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rate := decimal.RequireFromString("1.08")

	req := &CreateBudgetRequest{
		Title:      "Groceries",
		Amount:     decimal.NewFromInt(500),
		Currency:   "USD",
		FromRate:   &rate,
		Recurrence: "monthly",
		StartDate:  start,
		Category:   "Food",
		Reason:     "initial setup",
	}

	got := req.ToUseCaseInput()

	if got.Title != "Groceries" || got.Category != "Food" || got.Reason != "initial setup" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Recurrence != domain.RecurrenceMonthly {
		t.Fatalf("expected monthly recurrence, got %q", got.Recurrence)
	}
	if !got.FromRate.Equal(rate) {
		t.Fatalf("expected from rate %s, got %s", rate, got.FromRate)
	}
	if !got.ToRate.IsZero() {
		t.Fatalf("omitted to_rate must stay zero, got %s", got.ToRate)
	}
	if !got.StartDate.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, got.StartDate)
	}
}

func TestUpdateBudgetRequest_ToUseCaseInput_OmittedFieldsStayNil(t *testing.T) {
	amount := decimal.NewFromInt(750)
	recurrence := "weekly"

	req := &UpdateBudgetRequest{
		Amount:     &amount,
		Recurrence: &recurrence,
	}

	got := req.ToUseCaseInput()

	if got.Title != nil || got.Currency != nil || got.StartDate != nil || got.Category != nil {
		t.Fatalf("omitted fields must stay nil: %+v", got)
	}
	if got.Amount == nil || !got.Amount.Equal(amount) {
		t.Fatalf("expected amount 750, got %v", got.Amount)
	}
	if got.Recurrence == nil || *got.Recurrence != domain.RecurrenceWeekly {
		t.Fatalf("expected weekly recurrence, got %v", got.Recurrence)
	}
}
