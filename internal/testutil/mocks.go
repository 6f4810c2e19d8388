package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
)

// MockTenantRepository is a mock implementation of domain.TenantRepository
type MockTenantRepository struct {
	Tenants  map[uuid.UUID]*domain.Tenant
	CreateFn func(tenant *domain.Tenant) (*domain.Tenant, error)
}

// NewMockTenantRepository creates a new MockTenantRepository
func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{
		Tenants: make(map[uuid.UUID]*domain.Tenant),
	}
}

// Create creates a new tenant
func (m *MockTenantRepository) Create(tenant *domain.Tenant) (*domain.Tenant, error) {
	if m.CreateFn != nil {
		return m.CreateFn(tenant)
	}
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = tenant.CreatedAt
	m.Tenants[tenant.ID] = tenant
	return tenant, nil
}

// GetByID retrieves a tenant by ID
func (m *MockTenantRepository) GetByID(id uuid.UUID) (*domain.Tenant, error) {
	if tenant, ok := m.Tenants[id]; ok {
		return tenant, nil
	}
	return nil, domain.ErrTenantNotFound
}

// GetAll retrieves all tenants
func (m *MockTenantRepository) GetAll() ([]*domain.Tenant, error) {
	result := make([]*domain.Tenant, 0, len(m.Tenants))
	for _, t := range m.Tenants {
		result = append(result, t)
	}
	return result, nil
}

// SetLeavingDate marks a tenant as vacating
func (m *MockTenantRepository) SetLeavingDate(id uuid.UUID, leavingDate time.Time) error {
	tenant, ok := m.Tenants[id]
	if !ok {
		return domain.ErrTenantNotFound
	}
	tenant.LeavingDate = &leavingDate
	tenant.UpdatedAt = time.Now()
	return nil
}

// AddExpense increases the tenant's lifetime expenses total
func (m *MockTenantRepository) AddExpense(id uuid.UUID, amount decimal.Decimal) error {
	tenant, ok := m.Tenants[id]
	if !ok {
		return domain.ErrTenantNotFound
	}
	tenant.ExpensesTotal = tenant.ExpensesTotal.Add(amount)
	return nil
}

// AddTenant adds a tenant to the mock repository (helper for tests)
func (m *MockTenantRepository) AddTenant(tenant *domain.Tenant) {
	m.Tenants[tenant.ID] = tenant
}

// MockMonthlyRecordRepository is a mock implementation of
// domain.MonthlyRecordRepository
type MockMonthlyRecordRepository struct {
	Records  map[uuid.UUID]*domain.MonthlyRecord
	UpdateFn func(record *domain.MonthlyRecord, expectedLastUpdated time.Time) (*domain.MonthlyRecord, error)

	// AppendedTransactions collects transactions persisted through
	// UpdateWithTransaction, in order.
	AppendedTransactions []*domain.Transaction
	// SettlementDeductions records the last deductions map passed to
	// ApplySettlement.
	SettlementDeductions map[uuid.UUID]decimal.Decimal
}

// NewMockMonthlyRecordRepository creates a new MockMonthlyRecordRepository
func NewMockMonthlyRecordRepository() *MockMonthlyRecordRepository {
	return &MockMonthlyRecordRepository{
		Records: make(map[uuid.UUID]*domain.MonthlyRecord),
	}
}

// Create creates a new monthly record
func (m *MockMonthlyRecordRepository) Create(record *domain.MonthlyRecord) (*domain.MonthlyRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	record.LastUpdated = record.CreatedAt
	m.Records[record.ID] = record
	return record, nil
}

// GetByTenantMonth retrieves a record by its natural key
func (m *MockMonthlyRecordRepository) GetByTenantMonth(tenantID uuid.UUID, year, month int) (*domain.MonthlyRecord, error) {
	for _, r := range m.Records {
		if r.TenantID == tenantID && r.Year == year && r.Month == month {
			return r, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

// GetAllByTenant retrieves all records for a tenant
func (m *MockMonthlyRecordRepository) GetAllByTenant(tenantID uuid.UUID) ([]*domain.MonthlyRecord, error) {
	var result []*domain.MonthlyRecord
	for _, r := range m.Records {
		if r.TenantID == tenantID {
			result = append(result, r)
		}
	}
	return result, nil
}

// GetAdvanceRecords retrieves records carrying advance balance, oldest first
func (m *MockMonthlyRecordRepository) GetAdvanceRecords(tenantID uuid.UUID) ([]*domain.MonthlyRecord, error) {
	var result []*domain.MonthlyRecord
	for _, r := range m.Records {
		if r.TenantID == tenantID && r.AdvanceBalance.IsPositive() {
			result = append(result, r)
		}
	}
	// oldest first
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			a, b := result[i], result[j]
			if b.Year < a.Year || (b.Year == a.Year && b.Month < a.Month) {
				result[i], result[j] = b, a
			}
		}
	}
	return result, nil
}

// Update persists a modified record with an optimistic concurrency check
func (m *MockMonthlyRecordRepository) Update(record *domain.MonthlyRecord, expectedLastUpdated time.Time) (*domain.MonthlyRecord, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(record, expectedLastUpdated)
	}
	stored, ok := m.Records[record.ID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if !stored.LastUpdated.Equal(expectedLastUpdated) {
		return nil, domain.ErrStaleRecord
	}
	record.LastUpdated = time.Now()
	m.Records[record.ID] = record
	return record, nil
}

// UpdateWithTransaction persists the record and appends the transaction
func (m *MockMonthlyRecordRepository) UpdateWithTransaction(record *domain.MonthlyRecord, expectedLastUpdated time.Time, tx *domain.Transaction) (*domain.MonthlyRecord, error) {
	updated, err := m.Update(record, expectedLastUpdated)
	if err != nil {
		return nil, err
	}
	updated.Transactions = append(updated.Transactions, tx)
	m.AppendedTransactions = append(m.AppendedTransactions, tx)
	return updated, nil
}

// ApplySettlement persists the settled target and the advance deductions
func (m *MockMonthlyRecordRepository) ApplySettlement(target *domain.MonthlyRecord, expectedLastUpdated time.Time, deductions map[uuid.UUID]decimal.Decimal) (*domain.MonthlyRecord, error) {
	updated, err := m.Update(target, expectedLastUpdated)
	if err != nil {
		return nil, err
	}
	for id, amount := range deductions {
		source, ok := m.Records[id]
		if !ok {
			return nil, domain.ErrRecordNotFound
		}
		source.AdvanceBalance = source.AdvanceBalance.Sub(amount)
		source.LastUpdated = time.Now()
	}
	m.SettlementDeductions = deductions
	return updated, nil
}

// AddRecord adds a record to the mock repository (helper for tests)
func (m *MockMonthlyRecordRepository) AddRecord(record *domain.MonthlyRecord) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}
	m.Records[record.ID] = record
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// GetByRecord retrieves transactions for a monthly record
func (m *MockTransactionRepository) GetByRecord(recordID uuid.UUID) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.RecordID == recordID {
			result = append(result, tx)
		}
	}
	return result, nil
}

// GetByTenant retrieves all transactions for a tenant
func (m *MockTransactionRepository) GetByTenant(tenantID uuid.UUID) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.TenantID == tenantID {
			result = append(result, tx)
		}
	}
	return result, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	m.Transactions[tx.ID] = tx
}
