package billing

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	default:
		return false
	}
}

type Type string

const (
	TypeMonthly Type = "monthly"
	TypeOneOff  Type = "one_off"
	TypeInitial Type = "initial"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeMonthly, TypeOneOff, TypeInitial:
		return true
	default:
		return false
	}
}
