package request

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required,max=80"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type CreatePlanRequest struct {
	Name                  string `json:"name" binding:"required,max=80"`
	PriceCents            int64  `json:"price_cents" binding:"min=0"`
	WeeklyQuota           int    `json:"weekly_quota" binding:"min=0"`
	MonthlyQuota          int    `json:"monthly_quota" binding:"min=0"`
	OwlQuota              int    `json:"owl_quota" binding:"min=0"`
	Invites               int    `json:"invites" binding:"min=0"`
	ExtraInvitePriceCents int64  `json:"extra_invite_price_cents" binding:"min=0"`
	VotingWeight          int    `json:"voting_weight" binding:"min=0"`
}
