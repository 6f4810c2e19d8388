package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
)

// TransactionService exposes the immutable payment audit trail
type TransactionService struct {
	tenantRepo      domain.TenantRepository
	recordRepo      domain.MonthlyRecordRepository
	transactionRepo domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(tenantRepo domain.TenantRepository, recordRepo domain.MonthlyRecordRepository, transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		tenantRepo:      tenantRepo,
		recordRepo:      recordRepo,
		transactionRepo: transactionRepo,
	}
}

// ListByTenant returns all of a tenant's transactions.
func (s *TransactionService) ListByTenant(tenantID uuid.UUID) ([]*domain.Transaction, error) {
	if _, err := s.tenantRepo.GetByID(tenantID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByTenant(tenantID)
}

// ListByMonth returns the transactions appended to one tenant's monthly
// record. A month that was never touched has no record and lists empty.
func (s *TransactionService) ListByMonth(tenantID uuid.UUID, year, month int) ([]*domain.Transaction, error) {
	if _, err := s.tenantRepo.GetByID(tenantID); err != nil {
		return nil, err
	}
	record, err := s.recordRepo.GetByTenantMonth(tenantID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.transactionRepo.GetByRecord(record.ID)
}
