package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/testutil"
)

func newHistoryFixture(entry time.Time, now time.Time) (*HistoryService, *testutil.MockMonthlyRecordRepository, *domain.Tenant) {
	tenantRepo := testutil.NewMockTenantRepository()
	recordRepo := testutil.NewMockMonthlyRecordRepository()

	tenant := &domain.Tenant{
		ID:          uuid.New(),
		Name:        "Peter Kamau",
		UnitLabel:   "C1",
		MonthlyRent: d(8000),
		GarbageBill: d(200),
		EntryDate:   entry,
	}
	tenantRepo.AddTenant(tenant)

	svc := NewHistoryService(tenantRepo, recordRepo)
	svc.now = func() time.Time { return now }
	return svc, recordRepo, tenant
}

func TestHistoryService_MonthlyHistory_FillsGaps(t *testing.T) {
	svc, recordRepo, tenant := newHistoryFixture(
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	)

	// Only February has a stored record.
	recordRepo.AddRecord(&domain.MonthlyRecord{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		Year:        2026,
		Month:       2,
		MonthlyRent: d(8000),
		RentPaid:    d(8000),
	})

	entries, err := svc.MonthlyHistory(tenant.ID)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries Jan-Apr, got %d", len(entries))
	}
	// Most recent first.
	if entries[0].Month != 4 || entries[3].Month != 1 {
		t.Errorf("unexpected ordering: first month %d, last month %d", entries[0].Month, entries[3].Month)
	}
	if !entries[0].Missing || entries[0].Status != domain.StatusUnpaid {
		t.Errorf("April has no record, expected synthesized unpaid entry: %+v", entries[0])
	}
	if entries[2].Missing || entries[2].Status != domain.StatusPaid {
		t.Errorf("February has a paid record: %+v", entries[2])
	}
	if !entries[0].BalanceDue.Equal(d(8000)) {
		t.Errorf("missing month owes current rent, got %s", entries[0].BalanceDue)
	}
}

func TestHistoryService_MonthlyHistory_SingleMonth(t *testing.T) {
	svc, _, tenant := newHistoryFixture(
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
	)

	entries, err := svc.MonthlyHistory(tenant.ID)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestHistoryService_MonthlyHistory_SpansYearBoundary(t *testing.T) {
	svc, _, tenant := newHistoryFixture(
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	)

	entries, err := svc.MonthlyHistory(tenant.ID)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries Nov-Feb, got %d", len(entries))
	}
	if entries[1].Year != 2026 || entries[1].Month != 1 {
		t.Errorf("expected Jan 2026 second, got %d-%d", entries[1].Year, entries[1].Month)
	}
	if entries[2].Year != 2025 || entries[2].Month != 12 {
		t.Errorf("expected Dec 2025 third, got %d-%d", entries[2].Year, entries[2].Month)
	}
}

func TestHistoryService_MonthlyHistory_TenantNotFound(t *testing.T) {
	svc, _, _ := newHistoryFixture(time.Now(), time.Now())

	_, err := svc.MonthlyHistory(uuid.New())

	if err != domain.ErrTenantNotFound {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}
