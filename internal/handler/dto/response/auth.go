package response

import "guildhall/internal/usecase/queries"

type LoginResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}

type MeResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}
