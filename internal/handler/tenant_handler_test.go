package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
	"github.com/nyumbasoft/nyumba-backend/internal/service"
	"github.com/nyumbasoft/nyumba-backend/internal/testutil"
)

func newTenantHandlerFixture() (*TenantHandler, *testutil.MockTenantRepository) {
	tenantRepo := testutil.NewMockTenantRepository()
	return NewTenantHandler(service.NewTenantService(tenantRepo)), tenantRepo
}

func TestTenantHandler_Create_Success(t *testing.T) {
	handler, _ := newTenantHandlerFixture()

	body, _ := json.Marshal(CreateTenantRequest{
		Name:        "Grace Njeri",
		UnitLabel:   "D3",
		MonthlyRent: "9500",
		GarbageBill: "300",
		EntryDate:   "2026-01-01",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}

	var tenant domain.Tenant
	if err := json.Unmarshal(rec.Body.Bytes(), &tenant); err != nil {
		t.Fatalf("failed to unmarshal tenant: %v", err)
	}
	if tenant.Name != "Grace Njeri" {
		t.Errorf("unexpected name %q", tenant.Name)
	}
	if tenant.ID == uuid.Nil {
		t.Error("expected an assigned ID")
	}
}

func TestTenantHandler_Create_BadRent(t *testing.T) {
	handler, _ := newTenantHandlerFixture()

	body, _ := json.Marshal(CreateTenantRequest{
		Name:        "Grace Njeri",
		MonthlyRent: "lots",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestTenantHandler_Get_NotFound(t *testing.T) {
	handler, _ := newTenantHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := handler.Get(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestTenantHandler_Vacate(t *testing.T) {
	handler, tenantRepo := newTenantHandlerFixture()

	tenant := &domain.Tenant{ID: uuid.New(), Name: "Grace Njeri"}
	tenantRepo.AddTenant(tenant)

	body, _ := json.Marshal(VacateRequest{LeavingDate: "2026-03-31"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/x/vacate", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(tenant.ID.String())

	if err := handler.Vacate(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var updated domain.Tenant
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to unmarshal tenant: %v", err)
	}
	if updated.LeavingDate == nil {
		t.Error("expected a leaving date")
	}
}
