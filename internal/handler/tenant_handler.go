package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
)

// TenantHandler handles tenant HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// CreateTenantRequest represents the JSON request for registering a tenant
type CreateTenantRequest struct {
	Name        string  `json:"name"`
	UnitLabel   string  `json:"unitLabel"`
	Phone       *string `json:"phone,omitempty"`
	MonthlyRent string  `json:"monthlyRent"`
	GarbageBill string  `json:"garbageBill"`
	EntryDate   string  `json:"entryDate,omitempty"`
}

// VacateRequest represents the JSON request for recording a leaving date
type VacateRequest struct {
	LeavingDate string `json:"leavingDate"`
}

// Create handles POST /api/v1/tenants
func (h *TenantHandler) Create(c echo.Context) error {
	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	rent, err := decimal.NewFromString(req.MonthlyRent)
	if err != nil {
		return NewValidationError(c, "Invalid monthly rent", []ValidationError{
			{Field: "monthlyRent", Message: "Must be a decimal amount"},
		})
	}
	garbage := decimal.Zero
	if req.GarbageBill != "" {
		garbage, err = decimal.NewFromString(req.GarbageBill)
		if err != nil {
			return NewValidationError(c, "Invalid garbage bill", []ValidationError{
				{Field: "garbageBill", Message: "Must be a decimal amount"},
			})
		}
	}

	tenant := &domain.Tenant{
		Name:        req.Name,
		UnitLabel:   req.UnitLabel,
		Phone:       req.Phone,
		MonthlyRent: rent,
		GarbageBill: garbage,
	}
	if req.EntryDate != "" {
		entryDate, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return NewValidationError(c, "Invalid entry date", []ValidationError{
				{Field: "entryDate", Message: "Must be YYYY-MM-DD"},
			})
		}
		tenant.EntryDate = entryDate
	}

	created, err := h.tenantService.Create(tenant)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Tenant name is required", nil)
		case errors.Is(err, domain.ErrNegativeAmount):
			return NewValidationError(c, "Recurring charges must not be negative", nil)
		default:
			log.Error().Err(err).Msg("Failed to create tenant")
			return NewInternalError(c, "Failed to create tenant")
		}
	}

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/v1/tenants
func (h *TenantHandler) List(c echo.Context) error {
	tenants, err := h.tenantService.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tenants")
		return NewInternalError(c, "Failed to list tenants")
	}
	return c.JSON(http.StatusOK, tenants)
}

// Get handles GET /api/v1/tenants/:id
func (h *TenantHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid tenant ID", nil)
	}

	tenant, err := h.tenantService.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return NewNotFoundError(c, "Tenant not found")
		}
		log.Error().Err(err).Str("tenant_id", id.String()).Msg("Failed to get tenant")
		return NewInternalError(c, "Failed to get tenant")
	}
	return c.JSON(http.StatusOK, tenant)
}

// Vacate handles POST /api/v1/tenants/:id/vacate
func (h *TenantHandler) Vacate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid tenant ID", nil)
	}

	var req VacateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	leavingDate, err := time.Parse("2006-01-02", req.LeavingDate)
	if err != nil {
		return NewValidationError(c, "Invalid leaving date", []ValidationError{
			{Field: "leavingDate", Message: "Must be YYYY-MM-DD"},
		})
	}

	tenant, err := h.tenantService.Vacate(id, leavingDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			return NewNotFoundError(c, "Tenant not found")
		case errors.Is(err, domain.ErrInvalidDate):
			return NewValidationError(c, "Leaving date cannot precede entry date", nil)
		default:
			log.Error().Err(err).Str("tenant_id", id.String()).Msg("Failed to vacate tenant")
			return NewInternalError(c, "Failed to vacate tenant")
		}
	}
	return c.JSON(http.StatusOK, tenant)
}
