package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
	"github.com/nyumbasoft/nyumba-backend/internal/util"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// PaymentRequest represents the JSON request for recording a payment.
// Amounts are decimal strings; absent categories default to zero.
type PaymentRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Rent    string `json:"rent,omitempty"`
	Water   string `json:"water,omitempty"`
	Garbage string `json:"garbage,omitempty"`
	Penalty string `json:"penalty,omitempty"`
	Deposit string `json:"deposit,omitempty"`

	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
	Date      string  `json:"date,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	WaterBillUpdate *string `json:"waterBillUpdate,omitempty"`
}

// Create handles POST /api/v1/tenants/:id/payments
func (h *PaymentHandler) Create(c echo.Context) error {
	tenantID, err := parseTenantID(c)
	if err != nil {
		return NewValidationError(c, "Invalid tenant ID", nil)
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if !util.ValidYear(req.Year) || !util.ValidMonth(req.Month) {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	input, verr := h.buildInput(req)
	if verr != nil {
		return NewValidationError(c, "Invalid payment", []ValidationError{*verr})
	}

	result, err := h.paymentService.RecordPayment(tenantID, req.Year, req.Month, input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// buildInput converts the wire request into a domain payment input.
func (h *PaymentHandler) buildInput(req PaymentRequest) (domain.PaymentInput, *ValidationError) {
	input := domain.PaymentInput{
		Method:    domain.PaymentMethod(req.Method),
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	fields := []struct {
		name  string
		raw   string
		value *decimal.Decimal
	}{
		{"rent", req.Rent, &input.Rent},
		{"water", req.Water, &input.Water},
		{"garbage", req.Garbage, &input.Garbage},
		{"penalty", req.Penalty, &input.Penalty},
		{"deposit", req.Deposit, &input.Deposit},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		amount, err := decimal.NewFromString(f.raw)
		if err != nil {
			return input, &ValidationError{Field: f.name, Message: "Must be a decimal amount"}
		}
		*f.value = amount
	}

	if req.WaterBillUpdate != nil {
		amount, err := decimal.NewFromString(*req.WaterBillUpdate)
		if err != nil {
			return input, &ValidationError{Field: "waterBillUpdate", Message: "Must be a decimal amount"}
		}
		input.WaterBillUpdate = &amount
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return input, &ValidationError{Field: "date", Message: "Must be YYYY-MM-DD"}
		}
		input.Date = &date
	}

	return input, nil
}

// handleServiceError maps domain errors to appropriate HTTP responses
func (h *PaymentHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return NewNotFoundError(c, "Tenant not found")
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Amounts must not be negative", nil)
	case errors.Is(err, domain.ErrInvalidMethod):
		return NewValidationError(c, "Unsupported payment method", nil)
	case errors.Is(err, domain.ErrNothingToPay):
		return NewValidationError(c, "Payment has no amount and no water bill update", nil)
	case errors.Is(err, domain.ErrReferenceRequired):
		return NewValidationError(c, "Reference is required for non-cash payments", nil)
	case errors.Is(err, domain.ErrInvalidMonth):
		return NewValidationError(c, "Invalid year or month", nil)
	case errors.Is(err, domain.ErrStaleRecord):
		return NewConflictError(c, "Record was modified concurrently, retry the request")
	default:
		log.Error().Err(err).Msg("Failed to record payment")
		return NewInternalError(c, "Failed to record payment")
	}
}
