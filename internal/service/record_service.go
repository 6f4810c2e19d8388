package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/billing"
	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/util"
	"github.com/nyumbasoft/nyumba-backend/internal/websocket"
)

// RecordService manages monthly record lifecycle: lazy creation and
// per-month due amount changes (water bill, penalties)
type RecordService struct {
	tenantRepo     domain.TenantRepository
	recordRepo     domain.MonthlyRecordRepository
	eventPublisher websocket.EventPublisher
}

// NewRecordService creates a new RecordService
func NewRecordService(tenantRepo domain.TenantRepository, recordRepo domain.MonthlyRecordRepository) *RecordService {
	return &RecordService{
		tenantRepo: tenantRepo,
		recordRepo: recordRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *RecordService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *RecordService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// GetOrCreate ensures a monthly record exists for the tenant and month,
// creating it lazily with dues seeded from the tenant's recurring charges.
func (s *RecordService) GetOrCreate(tenantID uuid.UUID, year, month int) (*domain.MonthlyRecord, error) {
	if !util.ValidMonth(month) || !util.ValidYear(year) {
		return nil, domain.ErrInvalidMonth
	}

	record, err := s.recordRepo.GetByTenantMonth(tenantID, year, month)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}

	record = &domain.MonthlyRecord{
		TenantID:    tenantID,
		Year:        year,
		Month:       month,
		MonthlyRent: tenant.MonthlyRent,
		GarbageBill: tenant.GarbageBill,
	}
	record.BalanceDue = billing.Outstanding(billing.DueAmounts(record), billing.PaidAmounts(record))

	created, err := s.recordRepo.Create(record)
	if err != nil {
		// A concurrent request may have created the record first; retry
		// the read before failing.
		existing, retryErr := s.recordRepo.GetByTenantMonth(tenantID, year, month)
		if retryErr != nil {
			return nil, err
		}
		return existing, nil
	}
	return created, nil
}

// UpdateWaterBill replaces the water due amount for the month and
// recomputes the balance.
func (s *RecordService) UpdateWaterBill(tenantID uuid.UUID, year, month int, amount decimal.Decimal) (*domain.MonthlyRecord, error) {
	if amount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	record, err := s.GetOrCreate(tenantID, year, month)
	if err != nil {
		return nil, err
	}
	expected := record.LastUpdated

	record.WaterBill = amount
	refreshBalance(record)

	updated, err := s.recordRepo.Update(record, expected)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.RecordUpdated(updated))
	return updated, nil
}

// AddPenalty levies a penalty on the month. Penalties also count toward
// the tenant's lifetime expenses total.
func (s *RecordService) AddPenalty(tenantID uuid.UUID, year, month int, amount decimal.Decimal) (*domain.MonthlyRecord, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrNegativeAmount
	}

	record, err := s.GetOrCreate(tenantID, year, month)
	if err != nil {
		return nil, err
	}
	expected := record.LastUpdated

	record.Penalties = record.Penalties.Add(amount)
	refreshBalance(record)

	updated, err := s.recordRepo.Update(record, expected)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.AddExpense(tenantID, amount); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.RecordUpdated(updated))
	return updated, nil
}

// refreshBalance recomputes BalanceDue after a due amount changed, then
// restores the owing-or-in-credit invariant: a record never reports a
// positive balance while still holding its own credit.
func refreshBalance(record *domain.MonthlyRecord) {
	record.BalanceDue = billing.Outstanding(billing.DueAmounts(record), billing.PaidAmounts(record))
	applyOwnAdvance(record)
}

// applyOwnAdvance consumes the record's own advance balance against its
// outstanding categories.
func applyOwnAdvance(record *domain.MonthlyRecord) {
	if !record.AdvanceBalance.IsPositive() || !record.BalanceDue.IsPositive() {
		return
	}
	result := billing.Settle(record.AdvanceBalance, billing.DueAmounts(record), billing.PaidAmounts(record))
	record.RentPaid = record.RentPaid.Add(result.Settled.Rent)
	record.WaterPaid = record.WaterPaid.Add(result.Settled.Water)
	record.GarbagePaid = record.GarbagePaid.Add(result.Settled.Garbage)
	record.PenaltiesPaid = record.PenaltiesPaid.Add(result.Settled.Penalty)
	record.BalanceDue = result.NewBalanceDue
	record.AdvanceBalance = result.RemainingAdvance
}
