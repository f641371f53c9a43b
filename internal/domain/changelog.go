package domain

import "time"

// ChangeAction describes what happened to a budget.
type ChangeAction string

const (
	ChangeActionCreated ChangeAction = "created"
	ChangeActionUpdated ChangeAction = "updated"
	ChangeActionDeleted ChangeAction = "deleted"
)

// FieldChange is one field-level difference between two budget revisions.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// ChangeLogEntry is an append-only audit row for a budget mutation. Once
// written it is never mutated.
type ChangeLogEntry struct {
	ID        string
	BudgetID  string
	UserID    string
	Action    ChangeAction
	Changes   []FieldChange
	Reason    string
	CreatedAt time.Time
}

// DiffBudgets compares two budget revisions over the audited field set, in
// the fixed order title, amount, recurrence, startDate, category. It returns
// nil when nothing changed; callers skip the log write in that case. Dates
// are compared by instant, amounts by decimal value. Either side may be nil
// (creation has no old record, deletion has no new one).
func DiffBudgets(oldBudget, newBudget *Budget) []FieldChange {
	var changes []FieldChange

	appendChange := func(field string, oldVal, newVal any, changed bool) {
		if changed {
			changes = append(changes, FieldChange{Field: field, OldValue: oldVal, NewValue: newVal})
		}
	}

	switch {
	case oldBudget == nil && newBudget == nil:
		return nil
	case oldBudget == nil:
		appendChange("title", nil, newBudget.Title, true)
		appendChange("amount", nil, newBudget.Amount, true)
		appendChange("recurrence", nil, newBudget.Recurrence, true)
		appendChange("startDate", nil, newBudget.StartDate, true)
		appendChange("category", nil, newBudget.Category, true)
	case newBudget == nil:
		appendChange("title", oldBudget.Title, nil, true)
		appendChange("amount", oldBudget.Amount, nil, true)
		appendChange("recurrence", oldBudget.Recurrence, nil, true)
		appendChange("startDate", oldBudget.StartDate, nil, true)
		appendChange("category", oldBudget.Category, nil, true)
	default:
		appendChange("title", oldBudget.Title, newBudget.Title, oldBudget.Title != newBudget.Title)
		appendChange("amount", oldBudget.Amount, newBudget.Amount, !oldBudget.Amount.Equal(newBudget.Amount))
		appendChange("recurrence", oldBudget.Recurrence, newBudget.Recurrence, oldBudget.Recurrence != newBudget.Recurrence)
		appendChange("startDate", oldBudget.StartDate, newBudget.StartDate, !oldBudget.StartDate.Equal(newBudget.StartDate))
		appendChange("category", oldBudget.Category, newBudget.Category, oldBudget.Category != newBudget.Category)
	}

	return changes
}
