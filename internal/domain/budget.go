package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence is the accounting cadence of a budget.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// AllCategories is the sentinel category that matches every transaction.
const AllCategories = "All Categories"

// Budget represents a spending limit over a recurring accounting period.
type Budget struct {
	ID         string
	UserID     string
	Title      string
	Amount     decimal.Decimal
	Currency   string
	FromRate   decimal.Decimal
	ToRate     decimal.Decimal
	Recurrence Recurrence
	StartDate  time.Time
	Category   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MatchesCategory reports whether a transaction category is attributable to
// this budget. The match is case-sensitive.
func (b *Budget) MatchesCategory(category string) bool {
	return b.Category == AllCategories || b.Category == category
}
