package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillFrequency is the cadence of a recurring bill template.
type BillFrequency string

const (
	BillMonthly   BillFrequency = "monthly"
	BillQuarterly BillFrequency = "quarterly"
	BillYearly    BillFrequency = "yearly"
	BillOneTime   BillFrequency = "one-time"
)

// Bill payment statuses.
const (
	BillStatusPaid   = "paid"
	BillStatusUnpaid = "unpaid"
)

// Transaction is a single expense record. A transaction with IsRecurring set
// and no TemplateID is a recurring template; one with a TemplateID is an
// instance generated from that template.
type Transaction struct {
	ID          string
	UserID      string
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Currency    string

	IsRecurring        bool
	RecurringFrequency string
	EndDate            *time.Time
	TemplateID         string

	DueDate       *time.Time
	BillStatus    string
	BillFrequency BillFrequency
	NextDueDate   *time.Time
	LastPaidDate  *time.Time

	CreatedAt time.Time
}

// IsTemplate reports whether this transaction is a recurring template.
func (t *Transaction) IsTemplate() bool {
	return t.IsRecurring && t.TemplateID == ""
}

// IsInstance reports whether this transaction was generated from a template.
func (t *Transaction) IsInstance() bool {
	return t.TemplateID != ""
}
