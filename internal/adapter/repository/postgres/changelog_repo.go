package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/budgetd/internal/domain"
)

// ChangeLogRepository implements usecase.ChangeLogRepository. Entries are
// append-only; rows are never updated or deleted, so history survives
// budget deletion.
type ChangeLogRepository struct {
	pool *pgxpool.Pool
}

// NewChangeLogRepository creates a new ChangeLogRepository.
func NewChangeLogRepository(pool *pgxpool.Pool) *ChangeLogRepository {
	return &ChangeLogRepository{pool: pool}
}

// Append inserts a change log entry.
func (r *ChangeLogRepository) Append(ctx context.Context, entry *domain.ChangeLogEntry) error {
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO budget_change_logs (id, budget_id, user_id, action, changes, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		entry.ID,
		entry.BudgetID,
		entry.UserID,
		string(entry.Action),
		changesJSON,
		entry.Reason,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListByBudget retrieves a budget's change history, newest first.
func (r *ChangeLogRepository) ListByBudget(ctx context.Context, userID, budgetID string) ([]*domain.ChangeLogEntry, error) {
	query := `
		SELECT id, budget_id, user_id, action, changes, reason, created_at
		FROM budget_change_logs
		WHERE budget_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, budgetID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ChangeLogEntry
	for rows.Next() {
		var (
			entry       domain.ChangeLogEntry
			action      string
			changesJSON []byte
		)

		err := rows.Scan(
			&entry.ID,
			&entry.BudgetID,
			&entry.UserID,
			&action,
			&changesJSON,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Action = domain.ChangeAction(action)
		if changesJSON != nil {
			_ = json.Unmarshal(changesJSON, &entry.Changes)
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
