package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, tenantHandler *TenantHandler, recordHandler *RecordHandler, paymentHandler *PaymentHandler, settlementHandler *SettlementHandler, historyHandler *HistoryHandler, transactionHandler *TransactionHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Tenant routes
	tenants := api.Group("/tenants")
	tenants.POST("", tenantHandler.Create)
	tenants.GET("", tenantHandler.List)
	tenants.GET("/:id", tenantHandler.Get)
	tenants.POST("/:id/vacate", tenantHandler.Vacate)

	// Monthly record routes
	tenants.GET("/:id/records/:year/:month", recordHandler.Get)
	tenants.PATCH("/:id/records/:year/:month/water-bill", recordHandler.UpdateWaterBill)
	tenants.PATCH("/:id/records/:year/:month/penalty", recordHandler.AddPenalty)

	// Payment, settlement and reporting routes
	tenants.POST("/:id/payments", paymentHandler.Create)
	tenants.POST("/:id/settlements", settlementHandler.Create)
	tenants.GET("/:id/history", historyHandler.Get)
	tenants.GET("/:id/transactions", transactionHandler.ListByTenant)
	tenants.GET("/:id/records/:year/:month/transactions", transactionHandler.ListByMonth)
}
