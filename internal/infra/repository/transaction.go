package repository

import (
	"context"
	"time"

	"guildhall/internal/domain/billing"
	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TransactionRepository struct{}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

const createTransactionSQL = `
INSERT INTO transactions (
	id, charge_key, user_id, description, amount_cents,
	status, type, due_date, paid_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
RETURNING id`

func (r *TransactionRepository) Create(ctx context.Context, dbtx db.DBTX, t *billing.Transaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createTransactionSQL,
		t.ID(),
		pgconv.StringPtrToPgtype(t.ChargeKey()),
		t.UserID(),
		t.Description(),
		t.AmountCents(),
		t.Status().String(),
		t.Type().String(),
		dueDateToPgtype(t.DueDate()),
		pgconv.TimePtrToPgtype(t.PaidAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create transaction", err)
	}
	return id, nil
}

const upsertChargeSQL = `
INSERT INTO transactions (
	id, charge_key, user_id, description, amount_cents,
	status, type, due_date, paid_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
ON CONFLICT (charge_key) DO UPDATE
SET description = EXCLUDED.description,
	amount_cents = EXCLUDED.amount_cents,
	updated_at = now()
WHERE transactions.status = 'pending'
RETURNING id`

// UpsertByChargeKey inserts the charge or, when one already exists under the
// same key and is still pending, replaces its amount. Settled charges are
// never touched; the existing id is returned instead.
func (r *TransactionRepository) UpsertByChargeKey(ctx context.Context, dbtx db.DBTX, t *billing.Transaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, upsertChargeSQL,
		t.ID(),
		pgconv.StringPtrToPgtype(t.ChargeKey()),
		t.UserID(),
		t.Description(),
		t.AmountCents(),
		t.Status().String(),
		t.Type().String(),
		dueDateToPgtype(t.DueDate()),
		pgconv.TimePtrToPgtype(t.PaidAt()),
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !pgconv.IsNoRows(err) {
		return uuid.Nil, wrapWriteErr("failed to upsert guest charge", err)
	}

	err = dbtx.QueryRow(ctx,
		`SELECT id FROM transactions WHERE charge_key = $1`,
		pgconv.StringPtrToPgtype(t.ChargeKey()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to find settled guest charge", err)
	}
	return id, nil
}

const markPaidSQL = `
UPDATE transactions
SET status = 'paid', paid_at = $2, updated_at = now()
WHERE id = $1 AND status <> 'paid'`

func (r *TransactionRepository) MarkPaid(ctx context.Context, dbtx db.DBTX, id uuid.UUID, paidAt time.Time) error {
	tag, err := dbtx.Exec(ctx, markPaidSQL, id, pgconv.TimeToPgtype(paidAt))
	if err != nil {
		return wrapWriteErr("failed to mark transaction paid", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("transaction not found or already paid", nil, infra.KindConflict)
	}
	return nil
}

const markOverdueSQL = `
UPDATE transactions
SET status = 'overdue', updated_at = now()
WHERE user_id = $1
	AND type = 'monthly'
	AND status = 'pending'
	AND (due_date IS NULL OR due_date < $2)`

func (r *TransactionRepository) MarkOverdueBefore(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, before schedule.Date) (int64, error) {
	tag, err := dbtx.Exec(ctx, markOverdueSQL, userID, pgconv.DateToPgtype(before.Time()))
	if err != nil {
		return 0, wrapWriteErr("failed to mark transactions overdue", err)
	}
	return tag.RowsAffected(), nil
}

func dueDateToPgtype(d *schedule.Date) any {
	if d == nil {
		return pgconv.DatePtrToPgtype(nil)
	}
	t := d.Time()
	return pgconv.DatePtrToPgtype(&t)
}
