package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
)

// HistoryEntry is one display row of a tenant's month-by-month timeline.
// Entries are read-only and never persisted back.
type HistoryEntry struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`

	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	WaterBill   decimal.Decimal `json:"waterBill"`
	GarbageBill decimal.Decimal `json:"garbageBill"`
	Penalties   decimal.Decimal `json:"penalties"`

	RentPaid      decimal.Decimal `json:"rentPaid"`
	WaterPaid     decimal.Decimal `json:"waterPaid"`
	GarbagePaid   decimal.Decimal `json:"garbagePaid"`
	DepositPaid   decimal.Decimal `json:"depositPaid"`
	PenaltiesPaid decimal.Decimal `json:"penaltiesPaid"`

	BalanceDue     decimal.Decimal `json:"balanceDue"`
	AdvanceBalance decimal.Decimal `json:"advanceBalance"`

	Status domain.PaymentStatus `json:"status"`
	// Missing marks a month with no stored record. Missing months render
	// as fully owing rather than silently disappearing.
	Missing bool `json:"missing"`
}

// BuildHistory produces one entry per calendar month from the tenant's
// entry date through now, inclusive, most recent first. Months with a
// stored record surface its amounts; months without one synthesize an
// unpaid entry at the tenant's current monthly rent.
func BuildHistory(tenant *domain.Tenant, records []*domain.MonthlyRecord, now time.Time) []HistoryEntry {
	type ym struct{ year, month int }
	byMonth := make(map[ym]*domain.MonthlyRecord, len(records))
	for _, r := range records {
		byMonth[ym{r.Year, r.Month}] = r
	}

	startYear, startMonth := tenant.EntryDate.Year(), int(tenant.EntryDate.Month())
	year, month := now.Year(), int(now.Month())

	var entries []HistoryEntry
	for year > startYear || (year == startYear && month >= startMonth) {
		if r, ok := byMonth[ym{year, month}]; ok {
			entries = append(entries, HistoryEntry{
				Year:           r.Year,
				Month:          r.Month,
				MonthName:      r.MonthName(),
				MonthlyRent:    r.MonthlyRent,
				WaterBill:      r.WaterBill,
				GarbageBill:    r.GarbageBill,
				Penalties:      r.Penalties,
				RentPaid:       r.RentPaid,
				WaterPaid:      r.WaterPaid,
				GarbagePaid:    r.GarbagePaid,
				DepositPaid:    r.DepositPaid,
				PenaltiesPaid:  r.PenaltiesPaid,
				BalanceDue:     r.BalanceDue,
				AdvanceBalance: r.AdvanceBalance,
				Status:         r.Status(),
			})
		} else {
			entries = append(entries, HistoryEntry{
				Year:        year,
				Month:       month,
				MonthName:   time.Month(month).String(),
				MonthlyRent: tenant.MonthlyRent,
				BalanceDue:  tenant.MonthlyRent,
				Status:      domain.StatusUnpaid,
				Missing:     true,
			})
		}

		month--
		if month == 0 {
			year, month = year-1, 12
		}
	}
	return entries
}
