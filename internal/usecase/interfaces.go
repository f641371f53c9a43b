package usecase

import (
	"context"
	"time"

	"github.com/fintrack/budgetd/internal/domain"
)

// BudgetRepository defines data access for budgets. Every operation is
// scoped to the owning user.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, userID, id string) (*domain.Budget, error)
	List(ctx context.Context, userID string) ([]*domain.Budget, error)
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, userID, id string) error
}

// TransactionRepository defines data access for transactions, including
// recurring templates and their generated instances.
type TransactionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)
	ListTemplates(ctx context.Context, userID string) ([]*domain.Transaction, error)
	GetBill(ctx context.Context, userID, id string) (*domain.Transaction, error)
	// FindInstance returns the instance generated from templateID on the
	// given calendar day, or nil when none exists.
	FindInstance(ctx context.Context, templateID string, day time.Time) (*domain.Transaction, error)
	Insert(ctx context.Context, tx *domain.Transaction) error
	UpdateBill(ctx context.Context, tx *domain.Transaction) error
}

// ChangeLogRepository defines data access for the append-only budget change
// log.
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *domain.ChangeLogEntry) error
	ListByBudget(ctx context.Context, userID, budgetID string) ([]*domain.ChangeLogEntry, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// TemplateLocker serializes instance generation per template. Acquire
// returns false when another run holds the lock.
type TemplateLocker interface {
	Acquire(ctx context.Context, templateID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, templateID string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
