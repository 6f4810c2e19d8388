package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
)

// HistoryHandler handles monthly history HTTP requests
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// Get handles GET /api/v1/tenants/:id/history
func (h *HistoryHandler) Get(c echo.Context) error {
	tenantID, err := parseTenantID(c)
	if err != nil {
		return NewValidationError(c, "Invalid tenant ID", nil)
	}

	entries, err := h.historyService.MonthlyHistory(tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return NewNotFoundError(c, "Tenant not found")
		}
		log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("Failed to build history")
		return NewInternalError(c, "Failed to build history")
	}
	return c.JSON(http.StatusOK, entries)
}

// parseTenantID parses the :id path parameter shared by the tenant-scoped
// routes.
func parseTenantID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
