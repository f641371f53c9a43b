package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/internal/infrastructure/metrics"
)

// BudgetUseCase handles budget CRUD, the change log and progress reporting.
type BudgetUseCase struct {
	budgetRepo BudgetRepository
	txRepo     TransactionRepository
	logRepo    ChangeLogRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(budgetRepo BudgetRepository, txRepo TransactionRepository, logRepo ChangeLogRepository, idGen IDGenerator, m *metrics.Metrics, logger zerolog.Logger) *BudgetUseCase {
	return &BudgetUseCase{
		budgetRepo: budgetRepo,
		txRepo:     txRepo,
		logRepo:    logRepo,
		idGen:      idGen,
		metrics:    m,
		logger:     logger,
	}
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	Title      string
	Amount     decimal.Decimal
	Currency   string
	FromRate   decimal.Decimal
	ToRate     decimal.Decimal
	Recurrence domain.Recurrence
	StartDate  time.Time
	Category   string
	Reason     string
}

// CreateBudget validates the required fields and creates a budget, writing
// one change log entry for the creation.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, userID string, input CreateBudgetInput) (*domain.Budget, error) {
	if err := domain.ValidateBudgetFields(input.Title, input.Amount, input.Currency, input.Recurrence, input.StartDate, input.Category); err != nil {
		return nil, err
	}

	fromRate := input.FromRate
	if fromRate.IsZero() {
		fromRate = decimal.NewFromInt(1)
	}
	toRate := input.ToRate
	if toRate.IsZero() {
		toRate = decimal.NewFromInt(1)
	}

	now := time.Now().UTC()
	budget := &domain.Budget{
		ID:         uc.idGen.Generate(),
		UserID:     userID,
		Title:      input.Title,
		Amount:     input.Amount,
		Currency:   input.Currency,
		FromRate:   fromRate,
		ToRate:     toRate,
		Recurrence: input.Recurrence,
		StartDate:  input.StartDate,
		Category:   input.Category,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}
	uc.metrics.BudgetsCreated.Inc()

	entry := &domain.ChangeLogEntry{
		ID:        uc.idGen.Generate(),
		BudgetID:  budget.ID,
		UserID:    userID,
		Action:    domain.ChangeActionCreated,
		Changes:   domain.DiffBudgets(nil, budget),
		Reason:    input.Reason,
		CreatedAt: now,
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		uc.metrics.ChangeLogWrites.WithLabelValues(string(domain.ChangeActionCreated), "error").Inc()
		return nil, err
	}
	uc.metrics.ChangeLogWrites.WithLabelValues(string(domain.ChangeActionCreated), "ok").Inc()

	return budget, nil
}

// UpdateBudgetInput represents input for updating a budget. Nil fields are
// left unchanged.
type UpdateBudgetInput struct {
	Title      *string
	Amount     *decimal.Decimal
	Currency   *string
	Recurrence *domain.Recurrence
	StartDate  *time.Time
	Category   *string
	Reason     string
}

// UpdateBudget applies the changed fields to an existing budget. When any
// audited field differs, exactly one change log entry is written.
func (uc *BudgetUseCase) UpdateBudget(ctx context.Context, userID, id string, input UpdateBudgetInput) (*domain.Budget, error) {
	existing, err := uc.budgetRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if input.Title != nil {
		updated.Title = *input.Title
	}
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Currency != nil {
		updated.Currency = *input.Currency
	}
	if input.Recurrence != nil {
		updated.Recurrence = *input.Recurrence
	}
	if input.StartDate != nil {
		updated.StartDate = *input.StartDate
	}
	if input.Category != nil {
		updated.Category = *input.Category
	}

	if err := domain.ValidateBudgetFields(updated.Title, updated.Amount, updated.Currency, updated.Recurrence, updated.StartDate, updated.Category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.UpdatedAt = now

	if err := uc.budgetRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	uc.metrics.BudgetsUpdated.Inc()

	changes := domain.DiffBudgets(existing, &updated)
	if len(changes) == 0 {
		// Nothing audited changed: the log entry is skipped.
		return &updated, nil
	}

	entry := &domain.ChangeLogEntry{
		ID:        uc.idGen.Generate(),
		BudgetID:  updated.ID,
		UserID:    userID,
		Action:    domain.ChangeActionUpdated,
		Changes:   changes,
		Reason:    input.Reason,
		CreatedAt: now,
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		uc.metrics.ChangeLogWrites.WithLabelValues(string(domain.ChangeActionUpdated), "error").Inc()
		return nil, err
	}
	uc.metrics.ChangeLogWrites.WithLabelValues(string(domain.ChangeActionUpdated), "ok").Inc()

	return &updated, nil
}

// DeleteBudget removes a budget. The deletion change log entry is
// best-effort: a failed write is logged for operators and never surfaced to
// the caller.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, userID, id, reason string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	existing, err := uc.budgetRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := uc.budgetRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.metrics.BudgetsDeleted.Inc()

	entry := &domain.ChangeLogEntry{
		ID:        uc.idGen.Generate(),
		BudgetID:  existing.ID,
		UserID:    userID,
		Action:    domain.ChangeActionDeleted,
		Changes:   domain.DiffBudgets(existing, nil),
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		uc.metrics.ChangeLogWrites.WithLabelValues(string(domain.ChangeActionDeleted), "error").Inc()
		uc.logger.Error().Err(err).
			Str("budget_id", existing.ID).
			Str("user_id", userID).
			Msg("failed to write deletion change log entry")
		return nil
	}
	uc.metrics.ChangeLogWrites.WithLabelValues(string(domain.ChangeActionDeleted), "ok").Inc()

	return nil
}

// GetBudget retrieves one budget owned by the user.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, userID, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, userID, id)
}

// ListBudgets lists all of the user's budgets.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, userID string) ([]*domain.Budget, error) {
	return uc.budgetRepo.List(ctx, userID)
}

// ListChangeLog lists the append-only change history of one budget. The
// history of a deleted budget remains readable.
func (uc *BudgetUseCase) ListChangeLog(ctx context.Context, userID, budgetID string) ([]*domain.ChangeLogEntry, error) {
	if err := domain.ValidateID(budgetID); err != nil {
		return nil, err
	}
	return uc.logRepo.ListByBudget(ctx, userID, budgetID)
}

// ProgressReport is the full budget progress payload: per-budget records,
// portfolio totals and the health score.
type ProgressReport struct {
	Budgets []domain.BudgetProgress
	Summary domain.PortfolioSummary
	Health  domain.Health
}

// GetBudgetProgress re-reads the user's budgets and full transaction set and
// recomputes every figure from scratch. There is no caching or incremental
// update; the computation is a pure function of the snapshot and now.
func (uc *BudgetUseCase) GetBudgetProgress(ctx context.Context, userID string, now time.Time) (*ProgressReport, error) {
	started := time.Now()

	budgets, err := uc.budgetRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := make([]domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		progress = append(progress, domain.ComputeProgress(b, transactions, now))
	}

	report := &ProgressReport{
		Budgets: progress,
		Summary: domain.Summarize(progress, now),
		Health:  domain.ScoreHealth(progress),
	}

	uc.metrics.ProgressRequests.Inc()
	uc.metrics.ProgressDuration.Observe(time.Since(started).Seconds())
	uc.metrics.HealthScore.Observe(float64(report.Health.Score))

	return report, nil
}
