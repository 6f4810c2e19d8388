package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/nyumbasoft/nyumba-backend/internal/billing"
	"github.com/nyumbasoft/nyumba-backend/internal/domain"
)

// HistoryService builds the month-by-month payment timeline for a tenant
type HistoryService struct {
	tenantRepo domain.TenantRepository
	recordRepo domain.MonthlyRecordRepository
	now        func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(tenantRepo domain.TenantRepository, recordRepo domain.MonthlyRecordRepository) *HistoryService {
	return &HistoryService{
		tenantRepo: tenantRepo,
		recordRepo: recordRepo,
		now:        time.Now,
	}
}

// MonthlyHistory returns one entry per calendar month from the tenant's
// entry date to today, most recent first, with gap months synthesized as
// unpaid. The result is display-only and never persisted.
func (s *HistoryService) MonthlyHistory(tenantID uuid.UUID) ([]billing.HistoryEntry, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.GetAllByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	return billing.BuildHistory(tenant, records, s.now()), nil
}
