package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxTitleLength  = 255
	MaxBudgetAmount = "1000000000" // 1 billion
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
	"PLN": true, "UAH": true, "CZK": true, "DKK": true,
}

// ValidateBudgetFields checks the required budget form fields: title, amount,
// currency, recurrence, start date and category. Any missing field is a
// validation failure. The recurrence value itself is not restricted: an
// unrecognized tag is accepted and resolves to the monthly period.
func ValidateBudgetFields(title string, amount decimal.Decimal, currency string, recurrence Recurrence, startDate time.Time, category string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title", ErrMissingRequiredFields)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrMissingRequiredFields, MaxTitleLength)
	}
	if amount.IsZero() {
		return fmt.Errorf("%w: amount", ErrMissingRequiredFields)
	}
	if currency == "" {
		return fmt.Errorf("%w: currency", ErrMissingRequiredFields)
	}
	if recurrence == "" {
		return fmt.Errorf("%w: recurrence", ErrMissingRequiredFields)
	}
	if startDate.IsZero() {
		return fmt.Errorf("%w: startDate", ErrMissingRequiredFields)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category", ErrMissingRequiredFields)
	}

	if err := ValidateAmount(amount); err != nil {
		return err
	}

	return ValidateCurrency(currency)
}

// ValidateAmount checks that a budget amount is a positive decimal within
// the allowed range.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxBudgetAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxBudgetAmount)
	}

	return nil
}

// ValidateCurrency checks for a known ISO 4217 currency code.
func ValidateCurrency(currency string) error {
	if !validCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}
	return nil
}

// ValidateID checks that an identifier is a well-formed ULID.
func ValidateID(id string) error {
	if _, err := ulid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return nil
}
