package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/billing"
	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/websocket"
)

// SettlementService consumes a tenant's standing advance balance to
// offset an outstanding monthly balance
type SettlementService struct {
	recordRepo     domain.MonthlyRecordRepository
	eventPublisher websocket.EventPublisher
}

// SettlementOutcome is the result of a successful settlement.
type SettlementOutcome struct {
	Record           *domain.MonthlyRecord   `json:"record"`
	Settled          billing.CategoryAmounts `json:"settled"`
	TotalSettled     decimal.Decimal         `json:"totalSettled"`
	RemainingAdvance decimal.Decimal         `json:"remainingAdvance"`
	SettledAt        time.Time               `json:"settledAt"`
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(recordRepo domain.MonthlyRecordRepository) *SettlementService {
	return &SettlementService{
		recordRepo: recordRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *SettlementService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SettlementService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// Settle applies the tenant's standing advance against the target month's
// balance due. The applied amount never exceeds min(advance, balance due).
// Everything is validated before any record is touched, and the target
// update plus the advance deductions persist atomically.
func (s *SettlementService) Settle(tenantID uuid.UUID, year, month int) (*SettlementOutcome, error) {
	record, err := s.recordRepo.GetByTenantMonth(tenantID, year, month)
	if err != nil {
		return nil, err
	}
	expected := record.LastUpdated

	if !record.BalanceDue.IsPositive() {
		return nil, domain.ErrNothingToSettle
	}

	sources, err := s.recordRepo.GetAdvanceRecords(tenantID)
	if err != nil {
		return nil, err
	}

	advance := decimal.Zero
	for _, src := range sources {
		if src.ID == record.ID {
			continue
		}
		advance = advance.Add(src.AdvanceBalance)
	}
	if !advance.IsPositive() {
		return nil, domain.ErrNoAdvance
	}

	result := billing.Settle(advance, billing.DueAmounts(record), billing.PaidAmounts(record))

	record.RentPaid = record.RentPaid.Add(result.Settled.Rent)
	record.WaterPaid = record.WaterPaid.Add(result.Settled.Water)
	record.GarbagePaid = record.GarbagePaid.Add(result.Settled.Garbage)
	record.PenaltiesPaid = record.PenaltiesPaid.Add(result.Settled.Penalty)
	record.BalanceDue = result.NewBalanceDue

	// Consume advance oldest-record-first until the settled total is
	// covered.
	deductions := make(map[uuid.UUID]decimal.Decimal)
	left := result.TotalSettled
	for _, src := range sources {
		if src.ID == record.ID || !left.IsPositive() {
			continue
		}
		take := decimal.Min(left, src.AdvanceBalance)
		deductions[src.ID] = take
		left = left.Sub(take)
	}

	updated, err := s.recordRepo.ApplySettlement(record, expected, deductions)
	if err != nil {
		return nil, err
	}

	outcome := &SettlementOutcome{
		Record:           updated,
		Settled:          result.Settled,
		TotalSettled:     result.TotalSettled,
		RemainingAdvance: result.RemainingAdvance,
		SettledAt:        time.Now(),
	}

	s.publishEvent(websocket.SettlementCreated(outcome))
	return outcome, nil
}
