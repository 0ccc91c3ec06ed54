package plan

import (
	"errors"

	"guildhall/internal/domain/quota"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("plan name cannot be empty")
	ErrNegativePrice = errors.New("plan price cannot be negative")
	ErrNegativeQuota = errors.New("plan quotas cannot be negative")
)

// Plan is a membership tier ("Player", "Gamer", "Master"...). Quota fields
// use 0 as the unlimited sentinel.
type Plan struct {
	id                    uuid.UUID
	name                  string
	priceCents            int64
	weeklyQuota           int
	monthlyQuota          int
	owlQuota              int
	invites               int
	extraInvitePriceCents int64
	votingWeight          int
}

func NewPlan(
	name string,
	priceCents int64,
	weeklyQuota, monthlyQuota, owlQuota, invites int,
	extraInvitePriceCents int64,
	votingWeight int,
) (*Plan, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents < 0 || extraInvitePriceCents < 0 {
		return nil, ErrNegativePrice
	}
	if weeklyQuota < 0 || monthlyQuota < 0 || owlQuota < 0 || invites < 0 {
		return nil, ErrNegativeQuota
	}
	return &Plan{
		id:                    uuid.New(),
		name:                  name,
		priceCents:            priceCents,
		weeklyQuota:           weeklyQuota,
		monthlyQuota:          monthlyQuota,
		owlQuota:              owlQuota,
		invites:               invites,
		extraInvitePriceCents: extraInvitePriceCents,
		votingWeight:          votingWeight,
	}, nil
}

func ReconstructPlan(
	id uuid.UUID,
	name string,
	priceCents int64,
	weeklyQuota, monthlyQuota, owlQuota, invites int,
	extraInvitePriceCents int64,
	votingWeight int,
) *Plan {
	return &Plan{
		id:                    id,
		name:                  name,
		priceCents:            priceCents,
		weeklyQuota:           weeklyQuota,
		monthlyQuota:          monthlyQuota,
		owlQuota:              owlQuota,
		invites:               invites,
		extraInvitePriceCents: extraInvitePriceCents,
		votingWeight:          votingWeight,
	}
}

func (p *Plan) ID() uuid.UUID                { return p.id }
func (p *Plan) Name() string                 { return p.name }
func (p *Plan) PriceCents() int64            { return p.priceCents }
func (p *Plan) WeeklyQuota() int             { return p.weeklyQuota }
func (p *Plan) MonthlyQuota() int            { return p.monthlyQuota }
func (p *Plan) OwlQuota() int                { return p.owlQuota }
func (p *Plan) Invites() int                 { return p.invites }
func (p *Plan) ExtraInvitePriceCents() int64 { return p.extraInvitePriceCents }
func (p *Plan) VotingWeight() int            { return p.votingWeight }

func (p *Plan) Limits() quota.Limits {
	return quota.Limits{
		Weekly:  p.weeklyQuota,
		Monthly: p.monthlyQuota,
		Owl:     p.owlQuota,
	}
}

// ChargesExtraInvites reports whether guests beyond the invite allowance are
// billable on this plan.
func (p *Plan) ChargesExtraInvites() bool {
	return p.extraInvitePriceCents > 0
}
