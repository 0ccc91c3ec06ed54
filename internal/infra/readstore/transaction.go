package readstore

import (
	"context"

	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/pkg/pgconv"
	"guildhall/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(dbtx db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: dbtx}
}

const findTransactionByIDSQL = `
SELECT id, user_id, description, amount_cents, status, type, due_date, paid_at, created_at
FROM transactions
WHERE id = $1`

func (s *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	row := s.db.QueryRow(ctx, findTransactionByIDSQL, id)
	view, err := scanTransactionView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction by ID", err)
	}
	return view, nil
}

const listTransactionsByUserSQL = `
SELECT id, user_id, description, amount_cents, status, type, due_date, paid_at, created_at
FROM transactions
WHERE user_id = $1
ORDER BY created_at DESC`

func (s *TransactionReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.TransactionView, error) {
	rows, err := s.db.Query(ctx, listTransactionsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions by user", err)
	}
	defer rows.Close()

	var views []*queries.TransactionView
	for rows.Next() {
		view, err := scanTransactionView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transaction rows", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionView(row rowScanner) (*queries.TransactionView, error) {
	var (
		view      queries.TransactionView
		dueDate   pgtype.Date
		paidAt    pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.UserID, &view.Description, &view.AmountCents,
		&view.Status, &view.Type, &dueDate, &paidAt, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		due := schedule.DateOf(dueDate.Time).String()
		view.DueDate = &due
	}
	view.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
