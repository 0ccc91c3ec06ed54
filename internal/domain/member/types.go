package member

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleEditor        Role = "editor"
	RoleReviewer      Role = "reviewer"
	RoleMember        Role = "member"
	RoleGuest         Role = "guest"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleEditor, RoleReviewer, RoleMember, RoleGuest:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusBlocked Status = "blocked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPending, StatusBlocked:
		return true
	default:
		return false
	}
}

// CategoryVisitor marks people who attend sessions but hold no plan. They
// never organize bookings and never receive invoices.
const CategoryVisitor = "Visitor"
