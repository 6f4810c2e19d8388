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

// MonthlyRecordRepository implements domain.MonthlyRecordRepository using
// PostgreSQL. Writes carry an optimistic concurrency check on last_updated.
type MonthlyRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyRecordRepository creates a new MonthlyRecordRepository
func NewMonthlyRecordRepository(pool *pgxpool.Pool) *MonthlyRecordRepository {
	return &MonthlyRecordRepository{pool: pool}
}

const recordColumns = `id, tenant_id, year, month,
	monthly_rent, water_bill, garbage_bill, penalties,
	rent_paid, water_paid, garbage_paid, deposit_paid, penalties_paid,
	balance_due, advance_balance, last_updated, created_at`

// Create creates a new monthly record. The (tenant_id, year, month) unique
// constraint makes concurrent lazy creation fail for all but one writer.
func (r *MonthlyRecordRepository) Create(record *domain.MonthlyRecord) (*domain.MonthlyRecord, error) {
	ctx := context.Background()

	nums, err := recordNumerics(record)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_records (
			tenant_id, year, month,
			monthly_rent, water_bill, garbage_bill, penalties,
			rent_paid, water_paid, garbage_paid, deposit_paid, penalties_paid,
			balance_due, advance_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+recordColumns,
		record.TenantID, record.Year, record.Month,
		nums[0], nums[1], nums[2], nums[3],
		nums[4], nums[5], nums[6], nums[7], nums[8],
		nums[9], nums[10],
	)
	return scanRecord(row)
}

// GetByTenantMonth retrieves a record by its natural key
func (r *MonthlyRecordRepository) GetByTenantMonth(tenantID uuid.UUID, year, month int) (*domain.MonthlyRecord, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+recordColumns+` FROM monthly_records
		WHERE tenant_id = $1 AND year = $2 AND month = $3`,
		tenantID, year, month)

	record, err := scanRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// GetAllByTenant retrieves all records for a tenant, most recent first
func (r *MonthlyRecordRepository) GetAllByTenant(tenantID uuid.UUID) ([]*domain.MonthlyRecord, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+` FROM monthly_records
		WHERE tenant_id = $1 ORDER BY year DESC, month DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

// GetAdvanceRecords retrieves records carrying unconsumed advance balance,
// oldest first
func (r *MonthlyRecordRepository) GetAdvanceRecords(tenantID uuid.UUID) ([]*domain.MonthlyRecord, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+` FROM monthly_records
		WHERE tenant_id = $1 AND advance_balance > 0
		ORDER BY year ASC, month ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Update persists a modified record with an optimistic concurrency check
func (r *MonthlyRecordRepository) Update(record *domain.MonthlyRecord, expectedLastUpdated time.Time) (*domain.MonthlyRecord, error) {
	ctx := context.Background()
	return r.update(ctx, r.pool, record, expectedLastUpdated)
}

// UpdateWithTransaction atomically persists the record update and appends
// the payment transaction
func (r *MonthlyRecordRepository) UpdateWithTransaction(record *domain.MonthlyRecord, expectedLastUpdated time.Time, payment *domain.Transaction) (*domain.MonthlyRecord, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := r.update(ctx, tx, record, expectedLastUpdated)
	if err != nil {
		return nil, err
	}

	if err := insertTransaction(ctx, tx, updated.ID, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// ApplySettlement atomically persists the settled target record and deducts
// the consumed advance from the source records
func (r *MonthlyRecordRepository) ApplySettlement(target *domain.MonthlyRecord, expectedLastUpdated time.Time, deductions map[uuid.UUID]decimal.Decimal) (*domain.MonthlyRecord, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := r.update(ctx, tx, target, expectedLastUpdated)
	if err != nil {
		return nil, err
	}

	for id, amount := range deductions {
		num, err := decimalToPgNumeric(amount)
		if err != nil {
			return nil, err
		}
		// The advance_balance guard makes a concurrently drained source
		// fail the whole settlement rather than go negative.
		tag, err := tx.Exec(ctx, `
			UPDATE monthly_records
			SET advance_balance = advance_balance - $2, last_updated = now()
			WHERE id = $1 AND advance_balance >= $2`, id, num)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.ErrStaleRecord
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *MonthlyRecordRepository) update(ctx context.Context, q querier, record *domain.MonthlyRecord, expectedLastUpdated time.Time) (*domain.MonthlyRecord, error) {
	nums, err := recordNumerics(record)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, `
		UPDATE monthly_records SET
			monthly_rent = $3, water_bill = $4, garbage_bill = $5, penalties = $6,
			rent_paid = $7, water_paid = $8, garbage_paid = $9,
			deposit_paid = $10, penalties_paid = $11,
			balance_due = $12, advance_balance = $13,
			last_updated = now()
		WHERE id = $1 AND last_updated = $2
		RETURNING `+recordColumns,
		record.ID, expectedLastUpdated,
		nums[0], nums[1], nums[2], nums[3],
		nums[4], nums[5], nums[6], nums[7], nums[8],
		nums[9], nums[10],
	)

	updated, err := scanRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, r.classifyUpdateMiss(ctx, record.ID)
		}
		return nil, err
	}
	return updated, nil
}

// classifyUpdateMiss distinguishes a concurrent modification from a missing
// row when the guarded update matched nothing.
func (r *MonthlyRecordRepository) classifyUpdateMiss(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM monthly_records WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrStaleRecord
	}
	return domain.ErrRecordNotFound
}

// Helper functions

// recordNumerics converts the record's decimal fields in column order.
func recordNumerics(record *domain.MonthlyRecord) ([11]pgtype.Numeric, error) {
	var nums [11]pgtype.Numeric
	values := []decimal.Decimal{
		record.MonthlyRent, record.WaterBill, record.GarbageBill, record.Penalties,
		record.RentPaid, record.WaterPaid, record.GarbagePaid,
		record.DepositPaid, record.PenaltiesPaid,
		record.BalanceDue, record.AdvanceBalance,
	}
	for i, v := range values {
		num, err := decimalToPgNumeric(v)
		if err != nil {
			return nums, err
		}
		nums[i] = num
	}
	return nums, nil
}

func scanRecord(row pgx.Row) (*domain.MonthlyRecord, error) {
	var r domain.MonthlyRecord
	var nums [11]pgtype.Numeric
	var lastUpdated, createdAt pgtype.Timestamptz

	err := row.Scan(&r.ID, &r.TenantID, &r.Year, &r.Month,
		&nums[0], &nums[1], &nums[2], &nums[3],
		&nums[4], &nums[5], &nums[6], &nums[7], &nums[8],
		&nums[9], &nums[10], &lastUpdated, &createdAt)
	if err != nil {
		return nil, err
	}

	r.MonthlyRent = pgNumericToDecimal(nums[0])
	r.WaterBill = pgNumericToDecimal(nums[1])
	r.GarbageBill = pgNumericToDecimal(nums[2])
	r.Penalties = pgNumericToDecimal(nums[3])
	r.RentPaid = pgNumericToDecimal(nums[4])
	r.WaterPaid = pgNumericToDecimal(nums[5])
	r.GarbagePaid = pgNumericToDecimal(nums[6])
	r.DepositPaid = pgNumericToDecimal(nums[7])
	r.PenaltiesPaid = pgNumericToDecimal(nums[8])
	r.BalanceDue = pgNumericToDecimal(nums[9])
	r.AdvanceBalance = pgNumericToDecimal(nums[10])
	r.LastUpdated = lastUpdated.Time
	r.CreatedAt = createdAt.Time
	return &r, nil
}

func collectRecords(rows pgx.Rows) ([]*domain.MonthlyRecord, error) {
	var result []*domain.MonthlyRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
