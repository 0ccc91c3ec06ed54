package queries

import (
	"context"
)

// CatalogReadStore serves the mostly static room and plan listings.
type CatalogReadStore interface {
	ListRooms(ctx context.Context) ([]*RoomView, error)
	ListPlans(ctx context.Context) ([]*PlanView, error)
}

type CatalogQueries interface {
	Rooms(ctx context.Context) ([]*RoomView, error)
	Plans(ctx context.Context) ([]*PlanView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) Rooms(ctx context.Context) ([]*RoomView, error) {
	return q.store.ListRooms(ctx)
}

func (q *catalogQueriesImpl) Plans(ctx context.Context) ([]*PlanView, error) {
	return q.store.ListPlans(ctx)
}
