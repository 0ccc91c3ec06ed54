package queries

import (
	"context"

	"guildhall/internal/infra"
	"guildhall/internal/pkg/errs"

	"github.com/google/uuid"
)

type TransactionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error)
}

type TransactionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error)
}

type transactionQueriesImpl struct {
	store TransactionReadStore
}

func NewTransactionQueries(store TransactionReadStore) TransactionQueries {
	return &transactionQueriesImpl{store: store}
}

func (q *transactionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *transactionQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error) {
	return q.store.FindByUser(ctx, userID)
}
