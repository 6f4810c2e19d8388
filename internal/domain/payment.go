package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentInput is a proposed payment against one tenant's monthly record:
// four due-category amounts plus an independent deposit. A payment may
// also carry a new water bill for the month, since water is the one
// variable charge and is usually entered alongside the payment that
// covers it.
type PaymentInput struct {
	Rent    decimal.Decimal `json:"rent"`
	Water   decimal.Decimal `json:"water"`
	Garbage decimal.Decimal `json:"garbage"`
	Penalty decimal.Decimal `json:"penalty"`
	Deposit decimal.Decimal `json:"deposit"`

	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference"`
	Date      *time.Time    `json:"date,omitempty"`
	Notes     *string       `json:"notes,omitempty"`

	// WaterBillUpdate, when set, replaces the record's water bill due
	// before the payment is allocated.
	WaterBillUpdate *decimal.Decimal `json:"waterBillUpdate,omitempty"`
}

// Total is the full money amount of the payment, deposit included.
func (p PaymentInput) Total() decimal.Decimal {
	return p.Rent.Add(p.Water).Add(p.Garbage).Add(p.Penalty).Add(p.Deposit)
}

// HasNegative reports whether any proposed amount is negative.
func (p PaymentInput) HasNegative() bool {
	return p.Rent.IsNegative() || p.Water.IsNegative() || p.Garbage.IsNegative() ||
		p.Penalty.IsNegative() || p.Deposit.IsNegative() ||
		(p.WaterBillUpdate != nil && p.WaterBillUpdate.IsNegative())
}
