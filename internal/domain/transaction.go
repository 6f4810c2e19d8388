package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel a payment arrived through.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodMobileMoney  PaymentMethod = "mpesa"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodBankDeposit  PaymentMethod = "bank_deposit"
	MethodCheque       PaymentMethod = "cheque"
)

// Valid reports whether the method is one of the supported channels.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodBankTransfer, MethodBankDeposit, MethodCheque:
		return true
	}
	return false
}

// Transaction records one payment event against a monthly record. It is
// created once, appended to the record's transaction list, and never
// mutated or deleted afterwards.
type Transaction struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenantId"`
	RecordID uuid.UUID `json:"recordId"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`

	// Per-category amounts actually applied by the allocation.
	Rent    decimal.Decimal `json:"rent"`
	Water   decimal.Decimal `json:"water"`
	Garbage decimal.Decimal `json:"garbage"`
	Penalty decimal.Decimal `json:"penalty"`
	Deposit decimal.Decimal `json:"deposit"`

	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type TransactionRepository interface {
	GetByRecord(recordID uuid.UUID) ([]*Transaction, error)
	GetByTenant(tenantID uuid.UUID) ([]*Transaction, error)
}
