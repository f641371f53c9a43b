package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/budgetd/internal/adapter/http/dto"
	"github.com/fintrack/budgetd/internal/domain"
	"github.com/fintrack/budgetd/tests/testutil"
)

func TestRecurringGenerationIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	// Anchor on the 15th a few months back so the tick count is stable
	// regardless of month lengths.
	now := time.Now().UTC()
	threeMonthsBack := now.AddDate(0, -3, 0)
	anchor := time.Date(threeMonthsBack.Year(), threeMonthsBack.Month(), 15, 0, 0, 0, 0, time.UTC)

	template := testDB.CreateTestTemplate(ctx, "user-1", anchor, decimal.NewFromInt(120), domain.BillMonthly)
	wantTicks := len(domain.InstanceDates(anchor, now, template.BillFrequency))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/bills/generate", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var first dto.GenerateInstancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if first.InstancesCreated != wantTicks {
		t.Fatalf("expected %d instances, got %d", wantTicks, first.InstancesCreated)
	}
	if first.InstancesCreated == 0 {
		t.Fatal("expected the backfill to create instances")
	}

	// Second run finds everything in place.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/bills/generate", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second generate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var second dto.GenerateInstancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if second.InstancesCreated != 0 {
		t.Fatalf("second run must create nothing, got %d", second.InstancesCreated)
	}

	// Every instance points back at the template.
	var count int
	err := testDB.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE template_id = $1`, template.ID).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count instances: %v", err)
	}
	if count != wantTicks {
		t.Fatalf("expected %d stored instances, got %d", wantTicks, count)
	}
}

func TestPayBillAdvancesDueDate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	bill := testDB.CreateTestTemplate(ctx, "user-1", due, decimal.NewFromInt(80), domain.BillMonthly)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/bills/"+bill.ID+"/pay", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pay: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var paid dto.BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &paid); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if paid.BillStatus != domain.BillStatusPaid {
		t.Fatalf("expected paid status, got %q", paid.BillStatus)
	}

	wantNext := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	if paid.DueDate == nil || !paid.DueDate.Equal(wantNext) {
		t.Fatalf("expected due %v, got %v", wantNext, paid.DueDate)
	}
	if paid.LastPaidDate == nil {
		t.Fatal("expected lastPaidDate to be set")
	}

	// Paying someone else's bill fails.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/bills/"+bill.ID+"/pay", "user-2", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user pay: expected 404, got %d", rec.Code)
	}
}
