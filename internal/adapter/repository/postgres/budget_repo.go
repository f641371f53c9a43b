package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrack/budgetd/internal/domain"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, user_id, title, amount, currency, from_rate, to_rate,
	recurrence, start_date, category, created_at, updated_at`

// Create inserts a new budget.
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Title,
		decimalToNumeric(budget.Amount),
		budget.Currency,
		decimalToNumeric(budget.FromRate),
		decimalToNumeric(budget.ToRate),
		string(budget.Recurrence),
		timeToPgTimestamptz(budget.StartDate),
		budget.Category,
		timeToPgTimestamptz(budget.CreatedAt),
		timeToPgTimestamptz(budget.UpdatedAt),
	)

	return err
}

// GetByID retrieves a budget owned by the given user.
func (r *BudgetRepository) GetByID(ctx context.Context, userID, id string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	budget, err := scanBudget(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}

		return nil, err
	}

	return budget, nil
}

// List lists the user's budgets, oldest first.
func (r *BudgetRepository) List(ctx context.Context, userID string) ([]*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

// Update rewrites the mutable budget fields.
func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `
		UPDATE budgets
		SET title = $3, amount = $4, currency = $5, from_rate = $6, to_rate = $7,
		    recurrence = $8, start_date = $9, category = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Title,
		decimalToNumeric(budget.Amount),
		budget.Currency,
		decimalToNumeric(budget.FromRate),
		decimalToNumeric(budget.ToRate),
		string(budget.Recurrence),
		timeToPgTimestamptz(budget.StartDate),
		budget.Category,
		timeToPgTimestamptz(budget.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

// Delete removes a budget.
func (r *BudgetRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		b                        domain.Budget
		amount, fromRate, toRate pgtype.Numeric
		recurrence               string
		startDate                pgtype.Timestamptz
		createdAt, updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&amount,
		&b.Currency,
		&fromRate,
		&toRate,
		&recurrence,
		&startDate,
		&b.Category,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Amount = numericToDecimal(amount)
	b.FromRate = numericToDecimal(fromRate)
	b.ToRate = numericToDecimal(toRate)
	b.Recurrence = domain.Recurrence(recurrence)
	b.StartDate = startDate.Time
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
