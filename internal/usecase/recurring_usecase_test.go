package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/internal/usecase"
	"github.com/fintrack/budgetd/internal/usecase/mocks"
)

func billTemplate(anchor time.Time, frequency domain.BillFrequency) *domain.Transaction {
	due := anchor
	return &domain.Transaction{
		ID:            "template-1",
		UserID:        "user-1",
		Date:          anchor,
		Amount:        decimal.NewFromInt(120),
		Category:      "Utilities",
		Description:   "Electricity",
		Currency:      "USD",
		IsRecurring:   true,
		DueDate:       &due,
		BillStatus:    domain.BillStatusUnpaid,
		BillFrequency: frequency,
	}
}

func TestRecurringUseCase_GenerateInstances_MonthlyBackfill(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	anchor := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)
	template := billTemplate(anchor, domain.BillMonthly)

	locker := mocks.NewMockTemplateLocker(ctrl)
	locker.EXPECT().Acquire(gomock.Any(), "template-1", gomock.Any()).Return(true, nil)
	locker.EXPECT().Release(gomock.Any(), "template-1").Return(nil)

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	txRepo.EXPECT().FindInstance(gomock.Any(), "template-1", gomock.Any()).Return(nil, nil).Times(3)

	var inserted []*domain.Transaction
	txRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, tx *domain.Transaction) error {
			inserted = append(inserted, tx)
			return nil
		}).Times(3)

	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().DoAndReturn(func() string { return ulid.Make().String() }).Times(3)

	uc := usecase.NewRecurringUseCase(txRepo, idGen, locker, 30*time.Second, newTestMetrics(), zerolog.Nop())

	created, err := uc.GenerateInstances(context.Background(), template, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 instances, got %d", created)
	}

	wantDays := []time.Time{
		time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
	}
	for i, tx := range inserted {
		if tx.TemplateID != "template-1" {
			t.Fatalf("instance %d must reference its template, got %q", i, tx.TemplateID)
		}
		if tx.IsRecurring {
			t.Fatalf("instance %d must not itself be recurring", i)
		}
		if tx.DueDate == nil || !tx.DueDate.Equal(wantDays[i]) {
			t.Fatalf("instance %d: expected due %v, got %v", i, wantDays[i], tx.DueDate)
		}
		if !tx.Amount.Equal(template.Amount) || tx.Category != template.Category {
			t.Fatalf("instance %d must copy the template fields, got %+v", i, tx)
		}
	}
}

func TestRecurringUseCase_GenerateInstances_SecondRunIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	anchor := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)
	template := billTemplate(anchor, domain.BillMonthly)

	locker := mocks.NewMockTemplateLocker(ctrl)
	locker.EXPECT().Acquire(gomock.Any(), "template-1", gomock.Any()).Return(true, nil)
	locker.EXPECT().Release(gomock.Any(), "template-1").Return(nil)

	// Every tick already has an instance: nothing is inserted.
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	txRepo.EXPECT().FindInstance(gomock.Any(), "template-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, templateID string, day time.Time) (*domain.Transaction, error) {
			return &domain.Transaction{ID: "existing", TemplateID: templateID}, nil
		}).Times(3)

	uc := usecase.NewRecurringUseCase(txRepo,
		mocks.NewMockIDGenerator(ctrl), locker, 30*time.Second, newTestMetrics(), zerolog.Nop())

	created, err := uc.GenerateInstances(context.Background(), template, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Fatalf("second run must create nothing, got %d", created)
	}
}

func TestRecurringUseCase_GenerateInstances_OneTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	template := billTemplate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), domain.BillOneTime)

	uc := usecase.NewRecurringUseCase(
		mocks.NewMockTransactionRepository(ctrl),
		mocks.NewMockIDGenerator(ctrl),
		mocks.NewMockTemplateLocker(ctrl),
		30*time.Second, newTestMetrics(), zerolog.Nop())

	created, err := uc.GenerateInstances(context.Background(), template, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Fatalf("one-time templates terminate immediately, got %d", created)
	}
}

func TestRecurringUseCase_GenerateInstances_NotATemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	instance := billTemplate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), domain.BillMonthly)
	instance.IsRecurring = false
	instance.TemplateID = "template-0"

	uc := usecase.NewRecurringUseCase(
		mocks.NewMockTransactionRepository(ctrl),
		mocks.NewMockIDGenerator(ctrl),
		mocks.NewMockTemplateLocker(ctrl),
		30*time.Second, newTestMetrics(), zerolog.Nop())

	if _, err := uc.GenerateInstances(context.Background(), instance, time.Now().UTC()); !errors.Is(err, domain.ErrNotATemplate) {
		t.Fatalf("expected ErrNotATemplate, got %v", err)
	}
}

func TestRecurringUseCase_GenerateInstances_LockHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	template := billTemplate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), domain.BillMonthly)

	locker := mocks.NewMockTemplateLocker(ctrl)
	locker.EXPECT().Acquire(gomock.Any(), "template-1", gomock.Any()).Return(false, nil)

	uc := usecase.NewRecurringUseCase(
		mocks.NewMockTransactionRepository(ctrl),
		mocks.NewMockIDGenerator(ctrl),
		locker, 30*time.Second, newTestMetrics(), zerolog.Nop())

	if _, err := uc.GenerateInstances(context.Background(), template, time.Now().UTC()); !errors.Is(err, domain.ErrGenerationInProgress) {
		t.Fatalf("expected ErrGenerationInProgress, got %v", err)
	}
}

func TestRecurringUseCase_RunForUser_SkipsLockedTemplates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := time.Date(2024, time.February, 16, 0, 0, 0, 0, time.UTC)

	busy := billTemplate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), domain.BillMonthly)
	busy.ID = "template-busy"
	free := billTemplate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), domain.BillMonthly)
	free.ID = "template-free"

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	txRepo.EXPECT().ListTemplates(gomock.Any(), "user-1").Return([]*domain.Transaction{busy, free}, nil)

	locker := mocks.NewMockTemplateLocker(ctrl)
	locker.EXPECT().Acquire(gomock.Any(), "template-busy", gomock.Any()).Return(false, nil)
	locker.EXPECT().Acquire(gomock.Any(), "template-free", gomock.Any()).Return(true, nil)
	locker.EXPECT().Release(gomock.Any(), "template-free").Return(nil)

	txRepo.EXPECT().FindInstance(gomock.Any(), "template-free", gomock.Any()).Return(nil, nil)
	txRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return(ulid.Make().String())

	uc := usecase.NewRecurringUseCase(txRepo, idGen, locker, 30*time.Second, newTestMetrics(), zerolog.Nop())

	created, err := uc.RunForUser(context.Background(), "user-1", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 instance from the free template, got %d", created)
	}
}

func TestRecurringUseCase_MarkBillPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	billID := ulid.Make().String()
	due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)

	bill := billTemplate(due, domain.BillMonthly)
	bill.ID = billID

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	txRepo.EXPECT().GetBill(gomock.Any(), "user-1", billID).Return(bill, nil)

	var saved *domain.Transaction
	txRepo.EXPECT().UpdateBill(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, tx *domain.Transaction) error {
			saved = tx
			return nil
		})

	uc := usecase.NewRecurringUseCase(txRepo,
		mocks.NewMockIDGenerator(ctrl),
		mocks.NewMockTemplateLocker(ctrl),
		30*time.Second, newTestMetrics(), zerolog.Nop())

	updated, err := uc.MarkBillPaid(context.Background(), "user-1", billID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNext := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	if updated.DueDate == nil || !updated.DueDate.Equal(wantNext) {
		t.Fatalf("expected due date advanced to %v, got %v", wantNext, updated.DueDate)
	}
	if updated.NextDueDate == nil || !updated.NextDueDate.Equal(wantNext) {
		t.Fatalf("expected nextDueDate %v, got %v", wantNext, updated.NextDueDate)
	}
	if updated.LastPaidDate == nil || !updated.LastPaidDate.Equal(now) {
		t.Fatalf("expected lastPaidDate %v, got %v", now, updated.LastPaidDate)
	}
	if updated.BillStatus != domain.BillStatusPaid {
		t.Fatalf("expected status paid, got %q", updated.BillStatus)
	}
	if saved == nil {
		t.Fatalf("expected the bill to be persisted")
	}
}

func TestRecurringUseCase_MarkBillPaid_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	billID := ulid.Make().String()

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	txRepo.EXPECT().GetBill(gomock.Any(), "user-1", billID).Return(nil, domain.ErrBillNotFound)

	uc := usecase.NewRecurringUseCase(txRepo,
		mocks.NewMockIDGenerator(ctrl),
		mocks.NewMockTemplateLocker(ctrl),
		30*time.Second, newTestMetrics(), zerolog.Nop())

	if _, err := uc.MarkBillPaid(context.Background(), "user-1", billID, time.Now().UTC()); !errors.Is(err, domain.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}
