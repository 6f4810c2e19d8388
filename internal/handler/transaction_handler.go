package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
)

// TransactionHandler handles transaction listing HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListByTenant handles GET /api/v1/tenants/:id/transactions
func (h *TransactionHandler) ListByTenant(c echo.Context) error {
	tenantID, err := parseTenantID(c)
	if err != nil {
		return NewValidationError(c, "Invalid tenant ID", nil)
	}

	transactions, err := h.transactionService.ListByTenant(tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return NewNotFoundError(c, "Tenant not found")
		}
		log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}
	return c.JSON(http.StatusOK, transactions)
}

// ListByMonth handles GET /api/v1/tenants/:id/records/:year/:month/transactions
func (h *TransactionHandler) ListByMonth(c echo.Context) error {
	tenantID, year, month, err := recordParams(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	transactions, err := h.transactionService.ListByMonth(tenantID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return NewNotFoundError(c, "Tenant not found")
		}
		log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("Failed to list month transactions")
		return NewInternalError(c, "Failed to list transactions")
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}
	return c.JSON(http.StatusOK, transactions)
}
