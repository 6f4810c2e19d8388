// Package billing is the single source of truth for rent/utility payment
// reconciliation: allocating an incoming payment across due categories,
// settling standing advance credit against a later balance, and building
// the month-by-month payment history. All functions are pure; callers own
// persistence and concurrency control around them.
package billing

import "github.com/shopspring/decimal"

// Category is one of the four due categories. Deposit is deliberately not
// a category: deposit money is tracked separately and never enters
// due/remaining arithmetic.
type Category string

const (
	CategoryRent    Category = "rent"
	CategoryWater   Category = "water"
	CategoryGarbage Category = "garbage"
	CategoryPenalty Category = "penalty"
)

// Priority is the fixed order in which pooled excess and advance credit
// are absorbed: penalties are punitive and clear first, water is metered
// and blocks future billing accuracy, garbage is fixed and low priority,
// and rent absorbs credit last so partial-rent states stay visible as
// collection pressure.
var Priority = [4]Category{CategoryPenalty, CategoryWater, CategoryGarbage, CategoryRent}

// CategoryAmounts holds one amount per due category.
type CategoryAmounts struct {
	Rent    decimal.Decimal `json:"rent"`
	Water   decimal.Decimal `json:"water"`
	Garbage decimal.Decimal `json:"garbage"`
	Penalty decimal.Decimal `json:"penalty"`
}

// Get returns the amount for a category.
func (c CategoryAmounts) Get(cat Category) decimal.Decimal {
	switch cat {
	case CategoryRent:
		return c.Rent
	case CategoryWater:
		return c.Water
	case CategoryGarbage:
		return c.Garbage
	case CategoryPenalty:
		return c.Penalty
	}
	return decimal.Zero
}

// Set assigns the amount for a category.
func (c *CategoryAmounts) Set(cat Category, v decimal.Decimal) {
	switch cat {
	case CategoryRent:
		c.Rent = v
	case CategoryWater:
		c.Water = v
	case CategoryGarbage:
		c.Garbage = v
	case CategoryPenalty:
		c.Penalty = v
	}
}

// Add increases the amount for a category.
func (c *CategoryAmounts) Add(cat Category, v decimal.Decimal) {
	c.Set(cat, c.Get(cat).Add(v))
}

// Total sums all four categories.
func (c CategoryAmounts) Total() decimal.Decimal {
	return c.Rent.Add(c.Water).Add(c.Garbage).Add(c.Penalty)
}

// IsZero reports whether every category is zero.
func (c CategoryAmounts) IsZero() bool {
	return c.Total().IsZero()
}

// Outstanding is the canonical remaining-balance definition used by every
// call site: the sum over categories of max(due - paid, 0). Historical
// overpayment in one category never offsets another.
func Outstanding(due, paid CategoryAmounts) decimal.Decimal {
	balance := decimal.Zero
	for _, cat := range Priority {
		rem := due.Get(cat).Sub(paid.Get(cat))
		if rem.IsPositive() {
			balance = balance.Add(rem)
		}
	}
	return balance
}

// HasNegative reports whether any category amount is negative.
func (c CategoryAmounts) HasNegative() bool {
	return c.Rent.IsNegative() || c.Water.IsNegative() ||
		c.Garbage.IsNegative() || c.Penalty.IsNegative()
}
