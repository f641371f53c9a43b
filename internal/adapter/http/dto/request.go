package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/internal/usecase"
)

// CreateBudgetRequest represents a request to create a budget.
type CreateBudgetRequest struct {
	Title      string           `json:"title"`
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	FromRate   *decimal.Decimal `json:"from_rate,omitempty"`
	ToRate     *decimal.Decimal `json:"to_rate,omitempty"`
	Recurrence string           `json:"recurrence"`
	StartDate  time.Time        `json:"start_date"`
	Category   string           `json:"category"`
	Reason     string           `json:"reason,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput() usecase.CreateBudgetInput {
	input := usecase.CreateBudgetInput{
		Title:      r.Title,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Recurrence: domain.Recurrence(r.Recurrence),
		StartDate:  r.StartDate,
		Category:   r.Category,
		Reason:     r.Reason,
	}
	if r.FromRate != nil {
		input.FromRate = *r.FromRate
	}
	if r.ToRate != nil {
		input.ToRate = *r.ToRate
	}
	return input
}

// UpdateBudgetRequest represents a partial budget update. Omitted fields
// keep their stored values.
type UpdateBudgetRequest struct {
	Title      *string          `json:"title,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Currency   *string          `json:"currency,omitempty"`
	Recurrence *string          `json:"recurrence,omitempty"`
	StartDate  *time.Time       `json:"start_date,omitempty"`
	Category   *string          `json:"category,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBudgetRequest) ToUseCaseInput() usecase.UpdateBudgetInput {
	input := usecase.UpdateBudgetInput{
		Title:     r.Title,
		Amount:    r.Amount,
		Currency:  r.Currency,
		StartDate: r.StartDate,
		Category:  r.Category,
		Reason:    r.Reason,
	}
	if r.Recurrence != nil {
		rec := domain.Recurrence(*r.Recurrence)
		input.Recurrence = &rec
	}
	return input
}

// DeleteBudgetRequest carries the optional audit reason for a deletion.
type DeleteBudgetRequest struct {
	Reason string `json:"reason,omitempty"`
}
