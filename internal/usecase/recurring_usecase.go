package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/internal/infrastructure/metrics"
)

// RecurringUseCase materializes dated instances from recurring bill
// templates and advances due dates when bills are paid.
type RecurringUseCase struct {
	txRepo  TransactionRepository
	idGen   IDGenerator
	locker  TemplateLocker
	lockTTL time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewRecurringUseCase creates a new RecurringUseCase.
func NewRecurringUseCase(txRepo TransactionRepository, idGen IDGenerator, locker TemplateLocker, lockTTL time.Duration, m *metrics.Metrics, logger zerolog.Logger) *RecurringUseCase {
	return &RecurringUseCase{
		txRepo:  txRepo,
		idGen:   idGen,
		locker:  locker,
		lockTTL: lockTTL,
		metrics: m,
		logger:  logger,
	}
}

// GenerateInstances walks the template's cadence from its anchor due date to
// today and inserts one instance per missed tick. The walk is idempotent:
// ticks that already have an instance are skipped, and the insert itself
// ignores duplicates via the storage uniqueness constraint on
// (template, due day). A per-template lock serializes concurrent runs;
// callers get ErrGenerationInProgress when another run holds it.
// Returns the number of instances created.
func (uc *RecurringUseCase) GenerateInstances(ctx context.Context, template *domain.Transaction, today time.Time) (int, error) {
	if !template.IsTemplate() {
		return 0, domain.ErrNotATemplate
	}
	if template.DueDate == nil || template.BillFrequency == domain.BillOneTime {
		return 0, nil
	}

	acquired, err := uc.locker.Acquire(ctx, template.ID, uc.lockTTL)
	if err != nil {
		return 0, err
	}
	if !acquired {
		return 0, domain.ErrGenerationInProgress
	}
	defer func() {
		if err := uc.locker.Release(ctx, template.ID); err != nil {
			uc.logger.Warn().Err(err).Str("template_id", template.ID).Msg("failed to release generation lock")
		}
	}()

	created := 0
	for _, day := range domain.InstanceDates(*template.DueDate, today, template.BillFrequency) {
		existing, err := uc.txRepo.FindInstance(ctx, template.ID, day)
		if err != nil {
			uc.metrics.GenerationRuns.WithLabelValues("error").Inc()
			return created, err
		}
		if existing != nil {
			continue
		}

		instance := uc.buildInstance(template, day)
		if err := uc.txRepo.Insert(ctx, instance); err != nil {
			uc.metrics.GenerationRuns.WithLabelValues("error").Inc()
			return created, err
		}
		created++
	}

	if created > 0 {
		uc.metrics.InstancesGenerated.Add(float64(created))
		uc.logger.Info().
			Str("template_id", template.ID).
			Int("created", created).
			Msg("materialized recurring instances")
	}
	uc.metrics.GenerationRuns.WithLabelValues("ok").Inc()

	return created, nil
}

// buildInstance copies the template's fields into a new concrete
// transaction dated at the tick.
func (uc *RecurringUseCase) buildInstance(template *domain.Transaction, day time.Time) *domain.Transaction {
	due := day
	return &domain.Transaction{
		ID:            uc.idGen.Generate(),
		UserID:        template.UserID,
		Date:          day,
		Amount:        template.Amount,
		Category:      template.Category,
		Description:   template.Description,
		Currency:      template.Currency,
		IsRecurring:   false,
		TemplateID:    template.ID,
		DueDate:       &due,
		BillStatus:    domain.BillStatusUnpaid,
		BillFrequency: template.BillFrequency,
		CreatedAt:     time.Now().UTC(),
	}
}

// RunForUser walks every recurring template the user owns. Templates whose
// lock is held by another run are skipped, not failed. Returns the total
// number of instances created.
func (uc *RecurringUseCase) RunForUser(ctx context.Context, userID string, today time.Time) (int, error) {
	templates, err := uc.txRepo.ListTemplates(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, template := range templates {
		created, err := uc.GenerateInstances(ctx, template, today)
		if err != nil {
			if err == domain.ErrGenerationInProgress {
				uc.logger.Warn().Str("template_id", template.ID).Msg("generation already running, skipping template")
				continue
			}
			return total, err
		}
		total += created
	}

	return total, nil
}

// MarkBillPaid records a payment on a bill and advances its due date one
// cadence step. This is a single-step advance, distinct from the backfill
// walk in GenerateInstances.
func (uc *RecurringUseCase) MarkBillPaid(ctx context.Context, userID, billID string, now time.Time) (*domain.Transaction, error) {
	if err := domain.ValidateID(billID); err != nil {
		return nil, err
	}

	bill, err := uc.txRepo.GetBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if bill.DueDate == nil {
		return nil, domain.ErrBillNotFound
	}

	next := domain.NextDueDate(*bill.DueDate, bill.BillFrequency)
	paidAt := now

	bill.BillStatus = domain.BillStatusPaid
	bill.LastPaidDate = &paidAt
	bill.DueDate = &next
	bill.NextDueDate = &next

	if err := uc.txRepo.UpdateBill(ctx, bill); err != nil {
		return nil, err
	}
	uc.metrics.BillsPaid.Inc()

	return bill, nil
}
