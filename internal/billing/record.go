package billing

import "github.com/nyumbasoft/nyumba-backend/internal/domain"

// DueAmounts extracts a record's per-category due amounts. The record's
// own amounts are authoritative, never the tenant's defaults.
func DueAmounts(r *domain.MonthlyRecord) CategoryAmounts {
	return CategoryAmounts{
		Rent:    r.MonthlyRent,
		Water:   r.WaterBill,
		Garbage: r.GarbageBill,
		Penalty: r.Penalties,
	}
}

// PaidAmounts extracts a record's cumulative per-category payments.
// Deposit is excluded; it is not a due category.
func PaidAmounts(r *domain.MonthlyRecord) CategoryAmounts {
	return CategoryAmounts{
		Rent:    r.RentPaid,
		Water:   r.WaterPaid,
		Garbage: r.GarbagePaid,
		Penalty: r.PenaltiesPaid,
	}
}
