package repository

import (
	"context"

	"guildhall/internal/domain/plan"
	"guildhall/internal/infra/db"

	"github.com/google/uuid"
)

type PlanRepository struct{}

func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

const createPlanSQL = `
INSERT INTO plans (
	id, name, price_cents, weekly_quota, monthly_quota, owl_quota,
	invites, extra_invite_price_cents, voting_weight, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
RETURNING id`

func (r *PlanRepository) Create(ctx context.Context, dbtx db.DBTX, p *plan.Plan) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createPlanSQL,
		p.ID(), p.Name(), p.PriceCents(),
		int32(p.WeeklyQuota()), int32(p.MonthlyQuota()), int32(p.OwlQuota()),
		int32(p.Invites()), p.ExtraInvitePriceCents(), int32(p.VotingWeight()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create plan", err)
	}
	return id, nil
}
