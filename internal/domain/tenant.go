package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant is a renter occupying one housing unit. MonthlyRent and
// GarbageBill are the fixed recurring charges seeded into each new
// monthly record; per-month due amounts on the record itself are
// authoritative once the record exists.
type Tenant struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	UnitLabel     string          `json:"unitLabel"`
	Phone         *string         `json:"phone,omitempty"`
	MonthlyRent   decimal.Decimal `json:"monthlyRent"`
	GarbageBill   decimal.Decimal `json:"garbageBill"`
	EntryDate     time.Time       `json:"entryDate"`
	LeavingDate   *time.Time      `json:"leavingDate,omitempty"`
	ExpensesTotal decimal.Decimal `json:"expensesTotal"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Active reports whether the tenant still occupies the unit.
func (t *Tenant) Active() bool {
	return t.LeavingDate == nil
}

type TenantRepository interface {
	Create(tenant *Tenant) (*Tenant, error)
	GetByID(id uuid.UUID) (*Tenant, error)
	GetAll() ([]*Tenant, error)
	SetLeavingDate(id uuid.UUID, leavingDate time.Time) error
	AddExpense(id uuid.UUID, amount decimal.Decimal) error
}
