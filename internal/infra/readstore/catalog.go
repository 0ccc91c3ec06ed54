package readstore

import (
	"context"

	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/usecase/queries"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

const listRoomsSQL = `
SELECT id, name, capacity, status
FROM rooms
ORDER BY name`

func (s *CatalogReadStore) ListRooms(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := s.db.Query(ctx, listRoomsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		var view queries.RoomView
		if err := rows.Scan(&view.ID, &view.Name, &view.Capacity, &view.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return views, nil
}

const listPlansSQL = `
SELECT id, name, price_cents, weekly_quota, monthly_quota, owl_quota,
	invites, extra_invite_price_cents, voting_weight
FROM plans
ORDER BY price_cents`

func (s *CatalogReadStore) ListPlans(ctx context.Context) ([]*queries.PlanView, error) {
	rows, err := s.db.Query(ctx, listPlansSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list plans", err)
	}
	defer rows.Close()

	var views []*queries.PlanView
	for rows.Next() {
		var view queries.PlanView
		if err := rows.Scan(
			&view.ID, &view.Name, &view.PriceCents,
			&view.WeeklyQuota, &view.MonthlyQuota, &view.OwlQuota,
			&view.Invites, &view.ExtraInvitePriceCents, &view.VotingWeight,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan plan row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate plan rows", err)
	}
	return views, nil
}
