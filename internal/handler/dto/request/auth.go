package request

import (
	"guildhall/internal/domain/member"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r LoginRequest) ToDomain() (member.Credentials, error) {
	email, err := member.NewEmail(r.Email)
	if err != nil {
		return member.Credentials{}, err
	}
	pass, err := member.NewPassword(r.Password)
	if err != nil {
		return member.Credentials{}, err
	}
	return member.NewCredentials(email, pass), nil
}
