package commands

import (
	"context"

	"guildhall/internal/domain/plan"
	"guildhall/internal/domain/room"
	reqdto "guildhall/internal/handler/dto/request"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/shared"

	"github.com/google/uuid"
)

// CatalogCommands covers the administrator-only room and plan management.
type CatalogCommands interface {
	CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error)
	CreatePlan(ctx context.Context, req reqdto.CreatePlanRequest) (uuid.UUID, error)
}

type catalogCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCatalogCommands(uow shared.UnitOfWork) CatalogCommands {
	return &catalogCommandsImpl{uow: uow}
}

func (c *catalogCommandsImpl) CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error) {
	r, err := room.NewRoom(req.Name, req.Capacity)
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Rooms().Create(ctx, tx.DB(), r)
		return err
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create room")
	}
	return r.ID(), nil
}

func (c *catalogCommandsImpl) CreatePlan(ctx context.Context, req reqdto.CreatePlanRequest) (uuid.UUID, error) {
	p, err := plan.NewPlan(
		req.Name,
		req.PriceCents,
		req.WeeklyQuota, req.MonthlyQuota, req.OwlQuota, req.Invites,
		req.ExtraInvitePriceCents,
		req.VotingWeight,
	)
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Plans().Create(ctx, tx.DB(), p)
		return err
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create plan")
	}
	return p.ID(), nil
}
