package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/testutil"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newPaymentFixture() (*PaymentService, *testutil.MockTenantRepository, *testutil.MockMonthlyRecordRepository, *domain.Tenant) {
	tenantRepo := testutil.NewMockTenantRepository()
	recordRepo := testutil.NewMockMonthlyRecordRepository()

	tenant := &domain.Tenant{
		ID:          uuid.New(),
		Name:        "John Otieno",
		UnitLabel:   "B2",
		MonthlyRent: d(10000),
		GarbageBill: d(300),
		EntryDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	tenantRepo.AddTenant(tenant)

	recordService := NewRecordService(tenantRepo, recordRepo)
	svc := NewPaymentService(recordRepo, recordService)
	return svc, tenantRepo, recordRepo, tenant
}

func TestPaymentService_RecordPayment_FullRent(t *testing.T) {
	svc, _, recordRepo, tenant := newPaymentFixture()

	result, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Rent:      d(10000),
		Garbage:   d(300),
		Method:    domain.MethodMobileMoney,
		Reference: "QX12ABCD34",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Record.RentPaid.Equal(d(10000)) {
		t.Errorf("expected rent paid 10000, got %s", result.Record.RentPaid)
	}
	if !result.Record.BalanceDue.IsZero() {
		t.Errorf("expected zero balance, got %s", result.Record.BalanceDue)
	}
	if result.Transaction == nil {
		t.Fatal("expected a transaction")
	}
	if result.Transaction.Reference != "QX12ABCD34" {
		t.Errorf("unexpected reference %q", result.Transaction.Reference)
	}
	if len(recordRepo.AppendedTransactions) != 1 {
		t.Errorf("expected 1 appended transaction, got %d", len(recordRepo.AppendedTransactions))
	}
}

func TestPaymentService_RecordPayment_LazyRecordCreation(t *testing.T) {
	svc, _, recordRepo, tenant := newPaymentFixture()

	_, err := svc.RecordPayment(tenant.ID, 2026, 5, domain.PaymentInput{
		Rent:   d(4000),
		Method: domain.MethodCash,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	record, err := recordRepo.GetByTenantMonth(tenant.ID, 2026, 5)
	if err != nil {
		t.Fatalf("record should have been created lazily: %v", err)
	}
	// Dues are seeded from the tenant's recurring charges.
	if !record.MonthlyRent.Equal(d(10000)) || !record.GarbageBill.Equal(d(300)) {
		t.Errorf("unexpected seeded dues: rent %s garbage %s", record.MonthlyRent, record.GarbageBill)
	}
	if !record.BalanceDue.Equal(d(6300)) {
		t.Errorf("expected balance 6300, got %s", record.BalanceDue)
	}
}

func TestPaymentService_RecordPayment_OverpaymentBecomesAdvance(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	result, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Rent:      d(15000),
		Method:    domain.MethodBankTransfer,
		Reference: "FT2603/113",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 15000 against 10000 rent: 10300 owed in total, garbage absorbs the
	// excess before rent would, leaving 4700 as advance.
	if !result.Record.GarbagePaid.Equal(d(300)) {
		t.Errorf("expected garbage cleared by excess, got %s", result.Record.GarbagePaid)
	}
	if !result.Record.AdvanceBalance.Equal(d(4700)) {
		t.Errorf("expected advance 4700, got %s", result.Record.AdvanceBalance)
	}
	if !result.Record.BalanceDue.IsZero() {
		t.Errorf("expected zero balance, got %s", result.Record.BalanceDue)
	}
}

func TestPaymentService_RecordPayment_ZeroAmountRejected(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	_, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Method: domain.MethodCash,
	})

	if err != domain.ErrNothingToPay {
		t.Errorf("expected ErrNothingToPay, got %v", err)
	}
}

func TestPaymentService_RecordPayment_ZeroAmountWithWaterUpdateAllowed(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	water := d(750)
	result, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Method:          domain.MethodCash,
		WaterBillUpdate: &water,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Transaction != nil {
		t.Error("no money moved, no transaction should exist")
	}
	if !result.Record.WaterBill.Equal(d(750)) {
		t.Errorf("expected water bill 750, got %s", result.Record.WaterBill)
	}
	if !result.Record.BalanceDue.Equal(d(11050)) {
		t.Errorf("expected balance 11050, got %s", result.Record.BalanceDue)
	}
}

func TestPaymentService_RecordPayment_ReferenceRequiredForNonCash(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	_, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Rent:   d(5000),
		Method: domain.MethodMobileMoney,
	})

	if err != domain.ErrReferenceRequired {
		t.Errorf("expected ErrReferenceRequired, got %v", err)
	}
}

func TestPaymentService_RecordPayment_CashAutoReference(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	result, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Rent:   d(5000),
		Method: domain.MethodCash,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(result.Transaction.Reference, "CASH-") {
		t.Errorf("expected generated cash reference, got %q", result.Transaction.Reference)
	}
}

func TestPaymentService_RecordPayment_NegativeAmountRejected(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	_, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Rent:   d(-100),
		Method: domain.MethodCash,
	})

	if err != domain.ErrNegativeAmount {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestPaymentService_RecordPayment_TenantNotFound(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	_, err := svc.RecordPayment(uuid.New(), 2026, 3, domain.PaymentInput{
		Rent:   d(5000),
		Method: domain.MethodCash,
	})

	if err != domain.ErrTenantNotFound {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestPaymentService_RecordPayment_DepositOutsideBalance(t *testing.T) {
	svc, _, _, tenant := newPaymentFixture()

	result, err := svc.RecordPayment(tenant.ID, 2026, 1, domain.PaymentInput{
		Rent:      d(10000),
		Deposit:   d(10000),
		Garbage:   d(300),
		Method:    domain.MethodBankDeposit,
		Reference: "SLIP-8812",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Record.DepositPaid.Equal(d(10000)) {
		t.Errorf("expected deposit 10000, got %s", result.Record.DepositPaid)
	}
	// Deposit never reduces balance and never becomes advance.
	if !result.Record.BalanceDue.IsZero() || !result.Record.AdvanceBalance.IsZero() {
		t.Errorf("deposit leaked into balance arithmetic: due %s advance %s",
			result.Record.BalanceDue, result.Record.AdvanceBalance)
	}
	if !result.Transaction.Amount.Equal(d(20300)) {
		t.Errorf("expected transaction amount 20300, got %s", result.Transaction.Amount)
	}
	if result.Record.Status() != domain.StatusDeposit {
		t.Errorf("expected deposit status, got %s", result.Record.Status())
	}
}

func TestPaymentService_RecordPayment_StaleSnapshot(t *testing.T) {
	svc, _, recordRepo, tenant := newPaymentFixture()

	recordRepo.UpdateFn = func(record *domain.MonthlyRecord, expected time.Time) (*domain.MonthlyRecord, error) {
		return nil, domain.ErrStaleRecord
	}

	_, err := svc.RecordPayment(tenant.ID, 2026, 3, domain.PaymentInput{
		Rent:   d(5000),
		Method: domain.MethodCash,
	})

	if err != domain.ErrStaleRecord {
		t.Errorf("expected ErrStaleRecord, got %v", err)
	}
}
