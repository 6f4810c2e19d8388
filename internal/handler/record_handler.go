package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
	"github.com/nyumbasoft/nyumba-backend/internal/util"
)

// RecordHandler handles monthly record HTTP requests
type RecordHandler struct {
	recordService *service.RecordService
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// AmountRequest carries a single decimal amount in the request body
type AmountRequest struct {
	Amount string `json:"amount"`
}

// Get handles GET /api/v1/tenants/:id/records/:year/:month. The record is
// created lazily if the month has not been touched yet.
func (h *RecordHandler) Get(c echo.Context) error {
	tenantID, year, month, err := recordParams(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	record, err := h.recordService.GetOrCreate(tenantID, year, month)
	if err != nil {
		return h.handleServiceError(c, err, tenantID)
	}
	return c.JSON(http.StatusOK, record)
}

// UpdateWaterBill handles PATCH /api/v1/tenants/:id/records/:year/:month/water-bill
func (h *RecordHandler) UpdateWaterBill(c echo.Context) error {
	tenantID, year, month, err := recordParams(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	amount, err := bindAmount(c)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a decimal amount"},
		})
	}

	record, err := h.recordService.UpdateWaterBill(tenantID, year, month, amount)
	if err != nil {
		return h.handleServiceError(c, err, tenantID)
	}
	return c.JSON(http.StatusOK, record)
}

// AddPenalty handles PATCH /api/v1/tenants/:id/records/:year/:month/penalty
func (h *RecordHandler) AddPenalty(c echo.Context) error {
	tenantID, year, month, err := recordParams(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	amount, err := bindAmount(c)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a decimal amount"},
		})
	}

	record, err := h.recordService.AddPenalty(tenantID, year, month, amount)
	if err != nil {
		return h.handleServiceError(c, err, tenantID)
	}
	return c.JSON(http.StatusOK, record)
}

// handleServiceError maps domain errors to appropriate HTTP responses
func (h *RecordHandler) handleServiceError(c echo.Context, err error, tenantID uuid.UUID) error {
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return NewNotFoundError(c, "Tenant not found")
	case errors.Is(err, domain.ErrInvalidMonth):
		return NewValidationError(c, "Invalid year or month", nil)
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Amount must be positive", nil)
	case errors.Is(err, domain.ErrStaleRecord):
		return NewConflictError(c, "Record was modified concurrently, retry the request")
	default:
		log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("Record operation failed")
		return NewInternalError(c, "Record operation failed")
	}
}

// recordParams parses the tenant/year/month path triple shared by the
// record, payment and settlement routes.
func recordParams(c echo.Context) (uuid.UUID, int, int, error) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, 0, 0, errors.New("invalid tenant ID")
	}
	year, month, err := util.ParseYearMonth(c.Param("year"), c.Param("month"))
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	return tenantID, year, month, nil
}

func bindAmount(c echo.Context) (decimal.Decimal, error) {
	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(req.Amount)
}
