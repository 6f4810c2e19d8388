package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the display status of a monthly record. It is derived,
// never persisted.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
	StatusDeposit PaymentStatus = "deposit"
)

// MonthlyRecord is the obligation/payment snapshot for one tenant for one
// calendar month. (TenantID, Year, Month) is the natural key; records are
// created lazily the first time a month is touched.
//
// Invariants: BalanceDue and AdvanceBalance are never both positive, and
// the paid amounts only ever increase (payments are append-only).
type MonthlyRecord struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenantId"`
	Year     int       `json:"year"`
	Month    int       `json:"month"` // 1..12

	// Due amounts for the month.
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	WaterBill   decimal.Decimal `json:"waterBill"`
	GarbageBill decimal.Decimal `json:"garbageBill"`
	Penalties   decimal.Decimal `json:"penalties"`

	// Cumulative paid amounts.
	RentPaid      decimal.Decimal `json:"rentPaid"`
	WaterPaid     decimal.Decimal `json:"waterPaid"`
	GarbagePaid   decimal.Decimal `json:"garbagePaid"`
	DepositPaid   decimal.Decimal `json:"depositPaid"`
	PenaltiesPaid decimal.Decimal `json:"penaltiesPaid"`

	BalanceDue     decimal.Decimal `json:"balanceDue"`
	AdvanceBalance decimal.Decimal `json:"advanceBalance"`

	Transactions []*Transaction `json:"transactions,omitempty"`

	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MonthName returns the English month name for display ("January", ...).
func (r *MonthlyRecord) MonthName() string {
	if r.Month < 1 || r.Month > 12 {
		return ""
	}
	return time.Month(r.Month).String()
}

// TotalDue is the sum of the four due categories. Deposit is not a due
// category and never enters balance arithmetic.
func (r *MonthlyRecord) TotalDue() decimal.Decimal {
	return r.MonthlyRent.Add(r.WaterBill).Add(r.GarbageBill).Add(r.Penalties)
}

// TotalPaid is the sum of payments applied to the four due categories.
func (r *MonthlyRecord) TotalPaid() decimal.Decimal {
	return r.RentPaid.Add(r.WaterPaid).Add(r.GarbagePaid).Add(r.PenaltiesPaid)
}

// FullyPaid reports whether every due category has been paid in full.
func (r *MonthlyRecord) FullyPaid() bool {
	return r.RentPaid.GreaterThanOrEqual(r.MonthlyRent) &&
		r.WaterPaid.GreaterThanOrEqual(r.WaterBill) &&
		r.GarbagePaid.GreaterThanOrEqual(r.GarbageBill) &&
		r.PenaltiesPaid.GreaterThanOrEqual(r.Penalties)
}

// PartiallyPaid reports whether some but not all of the month's total due
// has been paid.
func (r *MonthlyRecord) PartiallyPaid() bool {
	paid := r.TotalPaid()
	return paid.IsPositive() && paid.LessThan(r.TotalDue())
}

// Unpaid reports whether nothing has been paid toward the due categories.
func (r *MonthlyRecord) Unpaid() bool {
	return r.TotalPaid().IsZero()
}

// HasDeposit reports whether this is a deposit-bearing month. Display
// only; deposits never affect balance arithmetic.
func (r *MonthlyRecord) HasDeposit() bool {
	return r.DepositPaid.IsPositive()
}

// Status derives the display status from rent, matching the monthly
// history view: deposit months are tagged as such, otherwise the rent
// column drives unpaid/partial/paid.
func (r *MonthlyRecord) Status() PaymentStatus {
	switch {
	case r.HasDeposit():
		return StatusDeposit
	case r.RentPaid.GreaterThanOrEqual(r.MonthlyRent) && r.MonthlyRent.IsPositive():
		return StatusPaid
	case r.RentPaid.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

type MonthlyRecordRepository interface {
	Create(record *MonthlyRecord) (*MonthlyRecord, error)
	GetByTenantMonth(tenantID uuid.UUID, year, month int) (*MonthlyRecord, error)
	GetAllByTenant(tenantID uuid.UUID) ([]*MonthlyRecord, error)
	// GetAdvanceRecords returns records carrying unconsumed advance
	// balance, oldest first.
	GetAdvanceRecords(tenantID uuid.UUID) ([]*MonthlyRecord, error)
	// Update persists a modified record. expectedLastUpdated is the
	// LastUpdated value the caller read; a mismatch means another writer
	// got there first and the call fails with ErrStaleRecord.
	Update(record *MonthlyRecord, expectedLastUpdated time.Time) (*MonthlyRecord, error)
	// UpdateWithTransaction atomically persists the record update and
	// appends the transaction produced by the same allocation.
	UpdateWithTransaction(record *MonthlyRecord, expectedLastUpdated time.Time, tx *Transaction) (*MonthlyRecord, error)
	// ApplySettlement atomically persists the settled target record and
	// the advance deductions taken from source records.
	ApplySettlement(target *MonthlyRecord, expectedLastUpdated time.Time, deductions map[uuid.UUID]decimal.Decimal) (*MonthlyRecord, error)
}
