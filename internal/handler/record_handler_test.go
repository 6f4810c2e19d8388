package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
	"github.com/nyumbasoft/nyumba-backend/internal/testutil"
)

func newRecordHandlerFixture() (*RecordHandler, *domain.Tenant) {
	tenantRepo := testutil.NewMockTenantRepository()
	recordRepo := testutil.NewMockMonthlyRecordRepository()

	tenant := &domain.Tenant{
		ID:          uuid.New(),
		Name:        "Amina Wanjiru",
		UnitLabel:   "A4",
		MonthlyRent: decimal.NewFromInt(12000),
		GarbageBill: decimal.NewFromInt(250),
		EntryDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
	}
	tenantRepo.AddTenant(tenant)

	return NewRecordHandler(service.NewRecordService(tenantRepo, recordRepo)), tenant
}

func recordContext(method, path, tenantID, year, month string, body []byte) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "year", "month")
	c.SetParamValues(tenantID, year, month)
	return c, rec
}

func TestRecordHandler_Get_LazyCreates(t *testing.T) {
	handler, tenant := newRecordHandlerFixture()

	c, rec := recordContext(http.MethodGet, "/api/v1/tenants/x/records/2026/2", tenant.ID.String(), "2026", "2", nil)

	if err := handler.Get(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var record domain.MonthlyRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to unmarshal record: %v", err)
	}
	if !record.MonthlyRent.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("expected seeded rent 12000, got %s", record.MonthlyRent)
	}
	if !record.BalanceDue.Equal(decimal.NewFromInt(12250)) {
		t.Errorf("expected balance 12250, got %s", record.BalanceDue)
	}
}

func TestRecordHandler_Get_InvalidYear(t *testing.T) {
	handler, tenant := newRecordHandlerFixture()

	c, rec := recordContext(http.MethodGet, "/api/v1/tenants/x/records/abc/2", tenant.ID.String(), "abc", "2", nil)

	if err := handler.Get(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestRecordHandler_UpdateWaterBill(t *testing.T) {
	handler, tenant := newRecordHandlerFixture()

	body, _ := json.Marshal(AmountRequest{Amount: "900"})
	c, rec := recordContext(http.MethodPatch, "/api/v1/tenants/x/records/2026/2/water-bill", tenant.ID.String(), "2026", "2", body)

	if err := handler.UpdateWaterBill(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var record domain.MonthlyRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to unmarshal record: %v", err)
	}
	if !record.WaterBill.Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected water bill 900, got %s", record.WaterBill)
	}
}

func TestRecordHandler_AddPenalty_NegativeRejected(t *testing.T) {
	handler, tenant := newRecordHandlerFixture()

	body, _ := json.Marshal(AmountRequest{Amount: "-50"})
	c, rec := recordContext(http.MethodPatch, "/api/v1/tenants/x/records/2026/2/penalty", tenant.ID.String(), "2026", "2", body)

	if err := handler.AddPenalty(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestRecordHandler_Get_TenantNotFound(t *testing.T) {
	handler, _ := newRecordHandlerFixture()

	c, rec := recordContext(http.MethodGet, "/api/v1/tenants/x/records/2026/2", uuid.NewString(), "2026", "2", nil)

	if err := handler.Get(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
