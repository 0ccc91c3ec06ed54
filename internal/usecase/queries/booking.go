package queries

import (
	"context"

	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra"
	"guildhall/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*BookingListItem, error)
	FindForRoomDay(ctx context.Context, roomID uuid.UUID, date schedule.Date) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*BookingListItem, error)
	ListForRoomDay(ctx context.Context, roomID uuid.UUID, date schedule.Date) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*BookingListItem, error) {
	return q.store.FindByOrganizer(ctx, organizerID)
}

func (q *bookingQueriesImpl) ListForRoomDay(ctx context.Context, roomID uuid.UUID, date schedule.Date) ([]*BookingListItem, error) {
	return q.store.FindForRoomDay(ctx, roomID, date)
}
