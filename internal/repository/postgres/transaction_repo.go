package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nyumbasoft/nyumba-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL. Rows are written once through UpdateWithTransaction and only
// read here.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, tenant_id, record_id, year, month,
	rent, water, garbage, penalty, deposit,
	amount, method, reference, date, notes, created_at`

// GetByRecord retrieves the transactions appended to a monthly record,
// newest first
func (r *TransactionRepository) GetByRecord(recordID uuid.UUID) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE record_id = $1 ORDER BY created_at DESC`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// GetByTenant retrieves all of a tenant's transactions, newest first
func (r *TransactionRepository) GetByTenant(tenantID uuid.UUID) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// insertTransaction writes a transaction row inside an open database
// transaction. Used by MonthlyRecordRepository.UpdateWithTransaction.
func insertTransaction(ctx context.Context, tx pgx.Tx, recordID uuid.UUID, t *domain.Transaction) error {
	amounts := []decimal.Decimal{t.Rent, t.Water, t.Garbage, t.Penalty, t.Deposit, t.Amount}
	nums := make([]pgtype.Numeric, len(amounts))
	for i, v := range amounts {
		num, err := decimalToPgNumeric(v)
		if err != nil {
			return err
		}
		nums[i] = num
	}

	return tx.QueryRow(ctx, `
		INSERT INTO transactions (
			tenant_id, record_id, year, month,
			rent, water, garbage, penalty, deposit,
			amount, method, reference, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`,
		t.TenantID, recordID, t.Year, t.Month,
		nums[0], nums[1], nums[2], nums[3], nums[4],
		nums[5], string(t.Method), t.Reference, t.Date, t.Notes,
	).Scan(&t.ID, &t.CreatedAt)
}

// Helper functions

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var nums [6]pgtype.Numeric
	var method string
	var createdAt pgtype.Timestamptz

	err := row.Scan(&t.ID, &t.TenantID, &t.RecordID, &t.Year, &t.Month,
		&nums[0], &nums[1], &nums[2], &nums[3], &nums[4],
		&nums[5], &method, &t.Reference, &t.Date, &t.Notes, &createdAt)
	if err != nil {
		return nil, err
	}

	t.Rent = pgNumericToDecimal(nums[0])
	t.Water = pgNumericToDecimal(nums[1])
	t.Garbage = pgNumericToDecimal(nums[2])
	t.Penalty = pgNumericToDecimal(nums[3])
	t.Deposit = pgNumericToDecimal(nums[4])
	t.Amount = pgNumericToDecimal(nums[5])
	t.Method = domain.PaymentMethod(method)
	t.CreatedAt = createdAt.Time
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
