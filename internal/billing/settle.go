package billing

import "github.com/shopspring/decimal"

// SettlementResult is the outcome of applying standing advance credit to
// a monthly record's outstanding balance.
type SettlementResult struct {
	// Settled is the per-category breakdown of credit applied.
	Settled CategoryAmounts `json:"settled"`
	// TotalSettled never exceeds min(advance, balance due).
	TotalSettled decimal.Decimal `json:"totalSettled"`
	// RemainingAdvance is the credit left after settlement.
	RemainingAdvance decimal.Decimal `json:"remainingAdvance"`
	// NewBalanceDue is what the month still owes after settlement.
	NewBalanceDue decimal.Decimal `json:"newBalanceDue"`
}

// Settle applies advance credit against the record's outstanding
// categories in Priority order. It is pure and idempotent: the same
// inputs always produce the same result. Callers reject the operation
// up front when the advance or the balance due is non-positive.
func Settle(advance decimal.Decimal, due, alreadyPaid CategoryAmounts) SettlementResult {
	credit := advance
	if credit.IsNegative() {
		credit = decimal.Zero
	}
	start := credit

	var settled CategoryAmounts
	balance := decimal.Zero
	for _, cat := range Priority {
		rem := due.Get(cat).Sub(alreadyPaid.Get(cat))
		if !rem.IsPositive() {
			continue
		}
		take := decimal.Min(credit, rem)
		settled.Set(cat, take)
		credit = credit.Sub(take)
		balance = balance.Add(rem.Sub(take))
	}

	return SettlementResult{
		Settled:          settled,
		TotalSettled:     start.Sub(credit),
		RemainingAdvance: credit,
		NewBalanceDue:    balance,
	}
}
