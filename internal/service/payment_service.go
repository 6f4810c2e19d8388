package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbasoft/nyumba-backend/internal/billing"
	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/websocket"
)

// PaymentService runs the allocation flow: validate the proposed payment,
// allocate it across the month's due categories, and persist the updated
// record snapshot together with the transaction in one atomic write.
type PaymentService struct {
	recordRepo     domain.MonthlyRecordRepository
	recordService  *RecordService
	eventPublisher websocket.EventPublisher
}

// PaymentResult is the outcome of recording one payment.
type PaymentResult struct {
	Record      *domain.MonthlyRecord    `json:"record"`
	Transaction *domain.Transaction      `json:"transaction,omitempty"`
	Allocation  billing.AllocationResult `json:"allocation"`
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(recordRepo domain.MonthlyRecordRepository, recordService *RecordService) *PaymentService {
	return &PaymentService{
		recordRepo:    recordRepo,
		recordService: recordService,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *PaymentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PaymentService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// RecordPayment allocates a proposed payment against the tenant's monthly
// record. All validation happens before the snapshot is touched; a stale
// snapshot surfaces as ErrStaleRecord and the caller retries from a fresh
// read.
func (s *PaymentService) RecordPayment(tenantID uuid.UUID, year, month int, input domain.PaymentInput) (*PaymentResult, error) {
	if input.HasNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if !input.Method.Valid() {
		return nil, domain.ErrInvalidMethod
	}

	total := input.Total()
	if total.IsZero() && input.WaterBillUpdate == nil {
		return nil, domain.ErrNothingToPay
	}

	reference := strings.TrimSpace(input.Reference)
	if total.IsPositive() && reference == "" {
		if input.Method != domain.MethodCash {
			return nil, domain.ErrReferenceRequired
		}
		reference = cashReference(time.Now())
	}

	record, err := s.recordService.GetOrCreate(tenantID, year, month)
	if err != nil {
		return nil, err
	}
	expected := record.LastUpdated

	if input.WaterBillUpdate != nil {
		record.WaterBill = *input.WaterBillUpdate
	}

	proposed := billing.CategoryAmounts{
		Rent:    input.Rent,
		Water:   input.Water,
		Garbage: input.Garbage,
		Penalty: input.Penalty,
	}
	alloc := billing.Allocate(billing.DueAmounts(record), billing.PaidAmounts(record), proposed)

	record.RentPaid = record.RentPaid.Add(alloc.Effectives.Rent)
	record.WaterPaid = record.WaterPaid.Add(alloc.Effectives.Water)
	record.GarbagePaid = record.GarbagePaid.Add(alloc.Effectives.Garbage)
	record.PenaltiesPaid = record.PenaltiesPaid.Add(alloc.Effectives.Penalty)
	record.DepositPaid = record.DepositPaid.Add(input.Deposit)
	record.BalanceDue = alloc.NewBalanceDue
	record.AdvanceBalance = record.AdvanceBalance.Add(alloc.Advance)

	// A water bill update can raise dues on a record already in credit.
	applyOwnAdvance(record)

	if total.IsZero() {
		// Pure water bill change, no money moved.
		updated, err := s.recordRepo.Update(record, expected)
		if err != nil {
			return nil, err
		}
		s.publishEvent(websocket.RecordUpdated(updated))
		return &PaymentResult{Record: updated, Allocation: alloc}, nil
	}

	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}
	tx := &domain.Transaction{
		ID:        uuid.New(),
		TenantID:  tenantID,
		RecordID:  record.ID,
		Year:      year,
		Month:     month,
		Rent:      alloc.Effectives.Rent,
		Water:     alloc.Effectives.Water,
		Garbage:   alloc.Effectives.Garbage,
		Penalty:   alloc.Effectives.Penalty,
		Deposit:   input.Deposit,
		Amount:    total,
		Method:    input.Method,
		Reference: reference,
		Date:      date,
		Notes:     input.Notes,
		CreatedAt: now,
	}

	updated, err := s.recordRepo.UpdateWithTransaction(record, expected, tx)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.PaymentRecorded(tx))
	return &PaymentResult{Record: updated, Transaction: tx, Allocation: alloc}, nil
}

// cashReference generates a receipt reference for cash payments, which
// arrive without one.
func cashReference(t time.Time) string {
	return fmt.Sprintf("CASH-%d", t.UnixNano())
}
