package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/budgetd/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool, retrier: NewRetrier()}
}

const transactionColumns = `id, user_id, date, amount, category, description, currency,
	is_recurring, recurring_frequency, end_date, template_id,
	due_date, bill_status, bill_frequency, next_due_date, last_paid_date, created_at`

// ListByUser lists every transaction for the user, oldest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date ASC`

	return r.queryTransactions(ctx, query, userID)
}

// ListTemplates lists the user's recurring templates.
func (r *TransactionRepository) ListTemplates(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND is_recurring = TRUE AND template_id IS NULL
		ORDER BY created_at ASC
	`

	return r.queryTransactions(ctx, query, userID)
}

// GetBill retrieves a bill owned by the given user.
func (r *TransactionRepository) GetBill(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}

		return nil, err
	}

	return tx, nil
}

// FindInstance returns the instance generated from templateID on the given
// calendar day, or nil when none exists.
func (r *TransactionRepository) FindInstance(ctx context.Context, templateID string, day time.Time) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE template_id = $1 AND due_date = $2`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, templateID, pgtype.Date{Time: day, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return tx, nil
}

// Insert stores a transaction. Instance inserts racing on the same
// (template, due date) pair collapse into one row via the partial unique
// index.
func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (template_id, due_date) WHERE template_id IS NOT NULL DO NOTHING
	`

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, query,
			tx.ID,
			tx.UserID,
			timeToPgTimestamptz(tx.Date),
			decimalToNumeric(tx.Amount),
			tx.Category,
			tx.Description,
			tx.Currency,
			tx.IsRecurring,
			tx.RecurringFrequency,
			timePtrToPgTimestamptz(tx.EndDate),
			textOrNull(tx.TemplateID),
			timePtrToPgDate(tx.DueDate),
			tx.BillStatus,
			string(tx.BillFrequency),
			timePtrToPgDate(tx.NextDueDate),
			timePtrToPgTimestamptz(tx.LastPaidDate),
			timeToPgTimestamptz(tx.CreatedAt),
		)

		return err
	})
}

// UpdateBill rewrites the bill scheduling fields.
func (r *TransactionRepository) UpdateBill(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET bill_status = $3, due_date = $4, next_due_date = $5, last_paid_date = $6
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.BillStatus,
		timePtrToPgDate(tx.DueDate),
		timePtrToPgDate(tx.NextDueDate),
		timePtrToPgTimestamptz(tx.LastPaidDate),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}

	return nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t             domain.Transaction
		amount        pgtype.Numeric
		date          pgtype.Timestamptz
		endDate       pgtype.Timestamptz
		templateID    pgtype.Text
		dueDate       pgtype.Date
		billFrequency string
		nextDueDate   pgtype.Date
		lastPaidDate  pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&date,
		&amount,
		&t.Category,
		&t.Description,
		&t.Currency,
		&t.IsRecurring,
		&t.RecurringFrequency,
		&endDate,
		&templateID,
		&dueDate,
		&t.BillStatus,
		&billFrequency,
		&nextDueDate,
		&lastPaidDate,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.Date = date.Time
	t.Amount = numericToDecimal(amount)
	t.BillFrequency = domain.BillFrequency(billFrequency)
	t.CreatedAt = createdAt.Time
	if templateID.Valid {
		t.TemplateID = templateID.String
	}
	if endDate.Valid {
		end := endDate.Time
		t.EndDate = &end
	}
	if dueDate.Valid {
		due := dueDate.Time
		t.DueDate = &due
	}
	if nextDueDate.Valid {
		next := nextDueDate.Time
		t.NextDueDate = &next
	}
	if lastPaidDate.Valid {
		paid := lastPaidDate.Time
		t.LastPaidDate = &paid
	}

	return &t, nil
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func timePtrToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}

	return pgtype.Date{Time: *t, Valid: true}
}
