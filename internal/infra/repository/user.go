package repository

import (
	"context"

	"guildhall/internal/domain/member"
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) SetStatus(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, status member.Status) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE users SET status = $2, updated_at = now() WHERE id = $1`,
		userID, status.String(),
	)
	if err != nil {
		return wrapWriteErr("failed to set user status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx,
		`UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return wrapWriteErr("failed to update last login", err)
	}
	return nil
}
