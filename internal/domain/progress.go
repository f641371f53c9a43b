package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetProgress is the derived spend picture for one budget. It is computed
// on demand and never persisted.
type BudgetProgress struct {
	BudgetID     string
	Title        string
	Amount       decimal.Decimal
	Currency     string
	Recurrence   Recurrence
	Category     string
	StartDate    time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	TotalSpent   decimal.Decimal
	Remaining    decimal.Decimal
	Progress     float64
	OverBudget   bool
	ExpenseCount int
}

// PortfolioSummary folds every budget's progress into account-wide totals.
type PortfolioSummary struct {
	TotalBudgetAmount      decimal.Decimal
	TotalSpent             decimal.Decimal
	TotalProgress          float64
	SavingsAchieved        decimal.Decimal
	OnTrackBudgets         int
	ActiveBudgetsThisMonth int
	DaysUntilReset         *int
}

// MatchExpenses filters transactions down to those attributable to the
// budget: dated within [budget start, now] by calendar day, and in the
// budget's category (or any category for the sentinel). Spend is
// lifetime-to-date since the budget began, not the current period.
func MatchExpenses(transactions []*Transaction, budget *Budget, now time.Time) []*Transaction {
	from := StartOfDay(budget.StartDate)
	to := EndOfDay(now)

	var matched []*Transaction
	for _, tx := range transactions {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		if !budget.MatchesCategory(tx.Category) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

// ComputeProgress aggregates matched transactions into one budget's spend,
// remaining and progress figures. Amounts are summed nominally: the
// FromRate/ToRate fields exist on the record but no currency conversion is
// applied here, mixed-currency totals included.
func ComputeProgress(budget *Budget, transactions []*Transaction, now time.Time) BudgetProgress {
	matched := MatchExpenses(transactions, budget, now)

	totalSpent := decimal.Zero
	for _, tx := range matched {
		totalSpent = totalSpent.Add(tx.Amount)
	}

	var ratio float64
	if budget.Amount.IsPositive() {
		ratio = totalSpent.Div(budget.Amount).InexactFloat64() * 100
	}

	period := CurrentPeriod(budget.Recurrence, now)

	return BudgetProgress{
		BudgetID:     budget.ID,
		Title:        budget.Title,
		Amount:       budget.Amount,
		Currency:     budget.Currency,
		Recurrence:   budget.Recurrence,
		Category:     budget.Category,
		StartDate:    budget.StartDate,
		PeriodStart:  period.Start,
		PeriodEnd:    period.End,
		TotalSpent:   totalSpent,
		Remaining:    budget.Amount.Sub(totalSpent),
		Progress:     math.Min(100, ratio),
		OverBudget:   totalSpent.GreaterThan(budget.Amount),
		ExpenseCount: len(matched),
	}
}

// Summarize folds per-budget progress records into portfolio totals.
func Summarize(progress []BudgetProgress, now time.Time) PortfolioSummary {
	summary := PortfolioSummary{
		TotalBudgetAmount: decimal.Zero,
		TotalSpent:        decimal.Zero,
		SavingsAchieved:   decimal.Zero,
	}

	monthPeriod := CurrentPeriod(RecurrenceMonthly, now)
	var minPeriodEnd time.Time

	for _, p := range progress {
		summary.TotalBudgetAmount = summary.TotalBudgetAmount.Add(p.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(p.TotalSpent)

		if p.Remaining.IsPositive() {
			summary.SavingsAchieved = summary.SavingsAchieved.Add(p.Remaining)
		}
		if !p.OverBudget && p.Progress < 80 {
			summary.OnTrackBudgets++
		}
		if !p.PeriodStart.Before(monthPeriod.Start) && !p.PeriodStart.After(monthPeriod.End) && !p.StartDate.After(now) {
			summary.ActiveBudgetsThisMonth++
		}
		if minPeriodEnd.IsZero() || p.PeriodEnd.Before(minPeriodEnd) {
			minPeriodEnd = p.PeriodEnd
		}
	}

	summary.SavingsAchieved = summary.SavingsAchieved.Round(2)

	if summary.TotalBudgetAmount.IsPositive() {
		ratio := summary.TotalSpent.Div(summary.TotalBudgetAmount).InexactFloat64() * 100
		summary.TotalProgress = math.Min(100, ratio)
	}

	if len(progress) > 0 {
		days := int(math.Ceil(minPeriodEnd.Sub(now).Hours() / 24))
		summary.DaysUntilReset = &days
	}

	return summary
}
