package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
)

// TenantRepository implements domain.TenantRepository using PostgreSQL
type TenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

const tenantColumns = `id, name, unit_label, phone, monthly_rent, garbage_bill,
	entry_date, leaving_date, expenses_total, created_at, updated_at`

// Create creates a new tenant
func (r *TenantRepository) Create(tenant *domain.Tenant) (*domain.Tenant, error) {
	ctx := context.Background()

	rent, err := decimalToPgNumeric(tenant.MonthlyRent)
	if err != nil {
		return nil, err
	}
	garbage, err := decimalToPgNumeric(tenant.GarbageBill)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tenants (name, unit_label, phone, monthly_rent, garbage_bill, entry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+tenantColumns,
		tenant.Name, tenant.UnitLabel, tenant.Phone, rent, garbage, timeToPgDate(tenant.EntryDate),
	)
	return scanTenant(row)
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(id uuid.UUID) (*domain.Tenant, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)

	tenant, err := scanTenant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// GetAll retrieves all tenants, newest first
func (r *TenantRepository) GetAll() ([]*domain.Tenant, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+tenantColumns+` FROM tenants ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tenant)
	}
	return result, rows.Err()
}

// SetLeavingDate marks a tenant as vacating
func (r *TenantRepository) SetLeavingDate(id uuid.UUID, leavingDate time.Time) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE tenants SET leaving_date = $2, updated_at = now() WHERE id = $1`,
		id, timeToPgDate(leavingDate))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// AddExpense increases the tenant's lifetime expenses total
func (r *TenantRepository) AddExpense(id uuid.UUID, amount decimal.Decimal) error {
	ctx := context.Background()

	num, err := decimalToPgNumeric(amount)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE tenants SET expenses_total = expenses_total + $2, updated_at = now()
		WHERE id = $1`, id, num)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// Helper functions

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	var rent, garbage, expenses pgtype.Numeric
	var entryDate, leavingDate pgtype.Date
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&t.ID, &t.Name, &t.UnitLabel, &t.Phone, &rent, &garbage,
		&entryDate, &leavingDate, &expenses, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.MonthlyRent = pgNumericToDecimal(rent)
	t.GarbageBill = pgNumericToDecimal(garbage)
	t.ExpensesTotal = pgNumericToDecimal(expenses)
	t.EntryDate = pgDateToTime(entryDate)
	if leavingDate.Valid {
		t.LeavingDate = &leavingDate.Time
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{
		Time:  t,
		Valid: true,
	}
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return d.Time
}
