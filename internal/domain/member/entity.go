package member

import (
	"time"

	"github.com/google/uuid"
)

// User is an association member. Category joins a Plan by name; planID is the
// explicit reference kept alongside it so renaming a plan cannot silently
// detach members.
type User struct {
	id           uuid.UUID
	name         string
	email        Email
	passwordHash string
	category     string
	planID       *uuid.UUID
	status       Status
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name string, email Email, passwordHash, category string, planID *uuid.UUID, role Role) *User {
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		category:     category,
		planID:       planID,
		status:       StatusPending,
		role:         role,
	}
}

func ReconstructUser(
	id uuid.UUID,
	name string,
	email Email,
	passwordHash, category string,
	planID *uuid.UUID,
	status Status,
	role Role,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		category:     category,
		planID:       planID,
		status:       status,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID       { return u.id }
func (u *User) Name() string        { return u.name }
func (u *User) Email() Email        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Category() string    { return u.category }
func (u *User) PlanID() *uuid.UUID  { return u.planID }
func (u *User) Status() Status      { return u.status }
func (u *User) Role() Role          { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// CanOrganize gates booking creation: only active members with a real plan
// category may organize sessions or be billed quotas.
func (u *User) CanOrganize() bool {
	return u.status == StatusActive && u.category != CategoryVisitor
}

func (u *User) IsAdministrator() bool {
	return u.role == RoleAdministrator
}

// MarkDelinquent is the overdue-flagging signal: the member goes back to
// pending until every open invoice is settled.
func (u *User) MarkDelinquent() {
	u.status = StatusPending
}

func (u *User) Activate() {
	u.status = StatusActive
}
