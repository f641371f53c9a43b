package domain

import "errors"

var (
	// Budget errors
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrMissingRequiredFields = errors.New("missing required budget fields")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidCurrency       = errors.New("invalid currency code")
	ErrInvalidID             = errors.New("invalid identifier")

	// Bill errors
	ErrBillNotFound = errors.New("bill not found")
	ErrNotATemplate = errors.New("transaction is not a recurring template")

	// Generation errors
	ErrGenerationInProgress = errors.New("instance generation already in progress for template")
)
