package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
	"github.com/nyumbasoft/nyumba-backend/internal/testutil"
)

func newSettlementHandlerFixture() (*SettlementHandler, *testutil.MockMonthlyRecordRepository, uuid.UUID) {
	recordRepo := testutil.NewMockMonthlyRecordRepository()
	settlementService := service.NewSettlementService(recordRepo)
	return NewSettlementHandler(settlementService), recordRepo, uuid.New()
}

func postSettlement(handler *SettlementHandler, tenantID string, reqBody SettlementRequest) (*httptest.ResponseRecorder, error) {
	body, _ := json.Marshal(reqBody)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/"+tenantID+"/settlements", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(tenantID)

	return rec, handler.Create(c)
}

func TestSettlementHandler_Create_Success(t *testing.T) {
	handler, recordRepo, tenantID := newSettlementHandlerFixture()

	recordRepo.AddRecord(&domain.MonthlyRecord{
		ID:             uuid.New(),
		TenantID:       tenantID,
		Year:           2026,
		Month:          3,
		AdvanceBalance: decimal.NewFromInt(500),
	})
	recordRepo.AddRecord(&domain.MonthlyRecord{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Year:        2026,
		Month:       4,
		MonthlyRent: decimal.NewFromInt(1000),
		BalanceDue:  decimal.NewFromInt(1000),
	})

	rec, err := postSettlement(handler, tenantID.String(), SettlementRequest{Year: 2026, Month: 4})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}

	var outcome service.SettlementOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("failed to unmarshal outcome: %v", err)
	}
	if !outcome.TotalSettled.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected 500 settled, got %s", outcome.TotalSettled)
	}
	if !outcome.Record.BalanceDue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected balance 500, got %s", outcome.Record.BalanceDue)
	}
}

func TestSettlementHandler_Create_NoAdvance(t *testing.T) {
	handler, recordRepo, tenantID := newSettlementHandlerFixture()

	recordRepo.AddRecord(&domain.MonthlyRecord{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Year:        2026,
		Month:       4,
		MonthlyRent: decimal.NewFromInt(1000),
		BalanceDue:  decimal.NewFromInt(1000),
	})

	rec, err := postSettlement(handler, tenantID.String(), SettlementRequest{Year: 2026, Month: 4})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestSettlementHandler_Create_RecordNotFound(t *testing.T) {
	handler, _, tenantID := newSettlementHandlerFixture()

	rec, err := postSettlement(handler, tenantID.String(), SettlementRequest{Year: 2026, Month: 4})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSettlementHandler_Create_InvalidMonth(t *testing.T) {
	handler, _, tenantID := newSettlementHandlerFixture()

	rec, err := postSettlement(handler, tenantID.String(), SettlementRequest{Year: 2026, Month: 0})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
