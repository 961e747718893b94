package response

import "github.com/sorteo-app/raffles-api/internal/domain"

type EntityLoginResponse struct {
	Token  string        `json:"token"`
	Entity domain.Entity `json:"entity"`
}

type ManagerLoginResponse struct {
	Token   string         `json:"token"`
	Manager domain.Manager `json:"manager"`
}

type DeletedResponse struct {
	Message string `json:"message"`
}
