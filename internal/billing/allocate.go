package billing

import "github.com/shopspring/decimal"

// AllocationResult is the outcome of splitting one payment across the due
// categories of a monthly record.
type AllocationResult struct {
	// Effectives is the portion of the payment actually applied per
	// category, including excess re-allocated by priority.
	Effectives CategoryAmounts `json:"effectives"`
	// Excess is the total proposed beyond what the proposed categories
	// still owed, before re-allocation.
	Excess decimal.Decimal `json:"excess"`
	// NewBalanceDue is what the month still owes after the allocation.
	NewBalanceDue decimal.Decimal `json:"newBalanceDue"`
	// Advance is the overpayment left once every due category is zeroed;
	// it becomes credit carried for future months.
	Advance decimal.Decimal `json:"advance"`
}

// Allocate splits a proposed payment across a record's due categories.
//
// Each proposed category amount first applies to its own category's
// remaining due (due minus already paid, floored at zero for application;
// an over-paid category keeps its negative remaining but never absorbs or
// offsets anything). Whatever a category cannot absorb pools into a single
// excess, which is then re-distributed into categories that still owe, in
// Priority order, repeating full passes until the excess is exhausted or
// nothing remains. Leftover excess is the true overpayment and is returned
// as Advance.
//
// Conservation holds for every input: Effectives.Total() + Advance equals
// proposed.Total().
func Allocate(due, alreadyPaid, proposed CategoryAmounts) AllocationResult {
	var remaining [len(Priority)]decimal.Decimal
	var effectives CategoryAmounts
	excess := decimal.Zero

	for i, cat := range Priority {
		rem := due.Get(cat).Sub(alreadyPaid.Get(cat))
		avail := rem
		if avail.IsNegative() {
			avail = decimal.Zero
		}
		applied := decimal.Min(proposed.Get(cat), avail)
		effectives.Set(cat, applied)
		excess = excess.Add(proposed.Get(cat).Sub(applied))
		remaining[i] = rem.Sub(applied)
	}

	pooledExcess := excess

	// Each pass either allocates a positive amount or breaks, so the loop
	// terminates.
	for excess.IsPositive() {
		allocated := false
		for i, cat := range Priority {
			if excess.IsZero() {
				break
			}
			if !remaining[i].IsPositive() {
				continue
			}
			take := decimal.Min(excess, remaining[i])
			effectives.Add(cat, take)
			remaining[i] = remaining[i].Sub(take)
			excess = excess.Sub(take)
			allocated = true
		}
		if !allocated {
			break
		}
	}

	// A category over-paid in the past keeps a negative remaining; it does
	// not reduce what the other categories still owe.
	balance := decimal.Zero
	for i := range Priority {
		if remaining[i].IsPositive() {
			balance = balance.Add(remaining[i])
		}
	}

	return AllocationResult{
		Effectives:    effectives,
		Excess:        pooledExcess,
		NewBalanceDue: balance,
		Advance:       excess,
	}
}
