package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/internal/usecase"
)

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	FromRate   decimal.Decimal `json:"from_rate"`
	ToRate     decimal.Decimal `json:"to_rate"`
	Recurrence string          `json:"recurrence"`
	StartDate  time.Time       `json:"start_date"`
	Category   string          `json:"category"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BudgetFromDomain converts a domain budget to a response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:         b.ID,
		Title:      b.Title,
		Amount:     b.Amount,
		Currency:   b.Currency,
		FromRate:   b.FromRate,
		ToRate:     b.ToRate,
		Recurrence: string(b.Recurrence),
		StartDate:  b.StartDate,
		Category:   b.Category,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// ListBudgetsResponse wraps a budget listing.
type ListBudgetsResponse struct {
	Budgets []*BudgetResponse `json:"budgets"`
	Total   int64             `json:"total"`
}

// BudgetProgressResponse represents one budget's computed progress.
type BudgetProgressResponse struct {
	BudgetID     string          `json:"budget_id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Recurrence   string          `json:"recurrence"`
	Category     string          `json:"category"`
	StartDate    time.Time       `json:"start_date"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Progress     float64         `json:"progress"`
	OverBudget   bool            `json:"over_budget"`
	ExpenseCount int             `json:"expense_count"`
}

// ProgressFromDomain converts a domain progress record to a response.
func ProgressFromDomain(p domain.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		BudgetID:     p.BudgetID,
		Title:        p.Title,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Recurrence:   string(p.Recurrence),
		Category:     p.Category,
		StartDate:    p.StartDate,
		PeriodStart:  p.PeriodStart,
		PeriodEnd:    p.PeriodEnd,
		TotalSpent:   p.TotalSpent,
		Remaining:    p.Remaining,
		Progress:     p.Progress,
		OverBudget:   p.OverBudget,
		ExpenseCount: p.ExpenseCount,
	}
}

// SummaryResponse represents the portfolio-wide rollup.
type SummaryResponse struct {
	TotalBudgetAmount      decimal.Decimal `json:"total_budget_amount"`
	TotalSpent             decimal.Decimal `json:"total_spent"`
	TotalProgress          float64         `json:"total_progress"`
	SavingsAchieved        decimal.Decimal `json:"savings_achieved"`
	OnTrackBudgets         int             `json:"on_track_budgets"`
	ActiveBudgetsThisMonth int             `json:"active_budgets_this_month"`
	DaysUntilReset         *int            `json:"days_until_reset,omitempty"`
}

// HealthBreakdownResponse itemizes the health score arithmetic.
type HealthBreakdownResponse struct {
	OverBudgetCount int `json:"over_budget_count"`
	HighCount       int `json:"high_count"`
	MediumCount     int `json:"medium_count"`
	LowCount        int `json:"low_count"`
	OverPenalty     int `json:"over_penalty"`
	HighPenalty     int `json:"high_penalty"`
	MediumPenalty   int `json:"medium_penalty"`
	LowBonus        int `json:"low_bonus"`
	NoOverBonus     int `json:"no_over_bonus"`
}

// HealthResponse represents the portfolio health score.
type HealthResponse struct {
	Score     int                     `json:"score"`
	Label     string                  `json:"label"`
	Color     string                  `json:"color"`
	Breakdown HealthBreakdownResponse `json:"breakdown"`
}

// ProgressReportResponse is the full progress endpoint payload.
type ProgressReportResponse struct {
	Budgets []BudgetProgressResponse `json:"budgets"`
	Summary SummaryResponse          `json:"summary"`
	Health  HealthResponse           `json:"health"`
}

// ProgressReportFromDomain converts a use case progress report to a response.
func ProgressReportFromDomain(report *usecase.ProgressReport) *ProgressReportResponse {
	budgets := make([]BudgetProgressResponse, len(report.Budgets))
	for i, p := range report.Budgets {
		budgets[i] = ProgressFromDomain(p)
	}

	return &ProgressReportResponse{
		Budgets: budgets,
		Summary: SummaryResponse{
			TotalBudgetAmount:      report.Summary.TotalBudgetAmount,
			TotalSpent:             report.Summary.TotalSpent,
			TotalProgress:          report.Summary.TotalProgress,
			SavingsAchieved:        report.Summary.SavingsAchieved,
			OnTrackBudgets:         report.Summary.OnTrackBudgets,
			ActiveBudgetsThisMonth: report.Summary.ActiveBudgetsThisMonth,
			DaysUntilReset:         report.Summary.DaysUntilReset,
		},
		Health: HealthResponse{
			Score: report.Health.Score,
			Label: report.Health.Label,
			Color: report.Health.Color,
			Breakdown: HealthBreakdownResponse{
				OverBudgetCount: report.Health.Breakdown.OverBudgetCount,
				HighCount:       report.Health.Breakdown.HighCount,
				MediumCount:     report.Health.Breakdown.MediumCount,
				LowCount:        report.Health.Breakdown.LowCount,
				OverPenalty:     report.Health.Breakdown.OverPenalty,
				HighPenalty:     report.Health.Breakdown.HighPenalty,
				MediumPenalty:   report.Health.Breakdown.MediumPenalty,
				LowBonus:        report.Health.Breakdown.LowBonus,
				NoOverBonus:     report.Health.Breakdown.NoOverBonus,
			},
		},
	}
}

// ChangeLogEntryResponse represents one audit entry.
type ChangeLogEntryResponse struct {
	ID        string               `json:"id"`
	BudgetID  string               `json:"budget_id"`
	Action    string               `json:"action"`
	Changes   []domain.FieldChange `json:"changes"`
	Reason    string               `json:"reason,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// ChangeLogFromDomain converts domain audit entries to responses.
func ChangeLogFromDomain(entries []*domain.ChangeLogEntry) []*ChangeLogEntryResponse {
	result := make([]*ChangeLogEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &ChangeLogEntryResponse{
			ID:        e.ID,
			BudgetID:  e.BudgetID,
			Action:    string(e.Action),
			Changes:   e.Changes,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}

// ListChangeLogResponse wraps a change log listing.
type ListChangeLogResponse struct {
	Entries []*ChangeLogEntryResponse `json:"entries"`
	Total   int64                     `json:"total"`
}

// BillResponse represents a recurring bill in API responses.
type BillResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Currency      string          `json:"currency"`
	BillStatus    string          `json:"bill_status"`
	BillFrequency string          `json:"bill_frequency"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	NextDueDate   *time.Time      `json:"next_due_date,omitempty"`
	LastPaidDate  *time.Time      `json:"last_paid_date,omitempty"`
}

// BillFromDomain converts a domain transaction to a bill response.
func BillFromDomain(t *domain.Transaction) *BillResponse {
	return &BillResponse{
		ID:            t.ID,
		Description:   t.Description,
		Amount:        t.Amount,
		Category:      t.Category,
		Currency:      t.Currency,
		BillStatus:    t.BillStatus,
		BillFrequency: string(t.BillFrequency),
		DueDate:       t.DueDate,
		NextDueDate:   t.NextDueDate,
		LastPaidDate:  t.LastPaidDate,
	}
}

// GenerateInstancesResponse reports how many instances a generation run created.
type GenerateInstancesResponse struct {
	InstancesCreated int `json:"instances_created"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
