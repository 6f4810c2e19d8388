package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
	"github.com/nyumbasoft/nyumba-backend/internal/util"
)

// SettlementHandler handles settlement HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// SettlementRequest represents the JSON request for settling a month from
// the tenant's advance balance
type SettlementRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Create handles POST /api/v1/tenants/:id/settlements
func (h *SettlementHandler) Create(c echo.Context) error {
	tenantID, err := parseTenantID(c)
	if err != nil {
		return NewValidationError(c, "Invalid tenant ID", nil)
	}

	var req SettlementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if !util.ValidYear(req.Year) || !util.ValidMonth(req.Month) {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	outcome, err := h.settlementService.Settle(tenantID, req.Year, req.Month)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, outcome)
}

// handleServiceError maps domain errors to appropriate HTTP responses
func (h *SettlementHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return NewNotFoundError(c, "Monthly record not found")
	case errors.Is(err, domain.ErrNothingToSettle):
		return NewConflictError(c, "Record has no balance due")
	case errors.Is(err, domain.ErrNoAdvance):
		return NewConflictError(c, "Tenant has no advance balance")
	case errors.Is(err, domain.ErrStaleRecord):
		return NewConflictError(c, "Record was modified concurrently, retry the request")
	default:
		log.Error().Err(err).Msg("Failed to create settlement")
		return NewInternalError(c, "Failed to create settlement")
	}
}
