package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/websocket"
)

// TenantService handles tenant registration and lifecycle
type TenantService struct {
	tenantRepo     domain.TenantRepository
	eventPublisher websocket.EventPublisher
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo domain.TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TenantService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TenantService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// Create registers a new tenant. Entry date defaults to today.
func (s *TenantService) Create(tenant *domain.Tenant) (*domain.Tenant, error) {
	tenant.Name = strings.TrimSpace(tenant.Name)
	if tenant.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if tenant.MonthlyRent.IsNegative() || tenant.GarbageBill.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if tenant.EntryDate.IsZero() {
		tenant.EntryDate = time.Now().UTC()
	}

	created, err := s.tenantRepo.Create(tenant)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.TenantCreated(created))
	return created, nil
}

// Get retrieves a tenant by ID
func (s *TenantService) Get(id uuid.UUID) (*domain.Tenant, error) {
	return s.tenantRepo.GetByID(id)
}

// List retrieves all tenants
func (s *TenantService) List() ([]*domain.Tenant, error) {
	return s.tenantRepo.GetAll()
}

// Vacate records the tenant's leaving date.
func (s *TenantService) Vacate(id uuid.UUID, leavingDate time.Time) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if leavingDate.Before(tenant.EntryDate) {
		return nil, domain.ErrInvalidDate
	}

	if err := s.tenantRepo.SetLeavingDate(id, leavingDate); err != nil {
		return nil, err
	}
	return s.tenantRepo.GetByID(id)
}
