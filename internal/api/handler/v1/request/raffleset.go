package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateRaffleSetRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Quantity  uint   `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

func (req *CreateRaffleSetRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Type, validation.Required, validation.In("online", "physical")),
		validation.Field(&req.Quantity, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.UnitPrice, validation.Min(0)),
	)
}

type UpdateRaffleSetRequest struct {
	Name      *string `json:"name"`
	Type      *string `json:"type"`
	UnitPrice *int    `json:"unit_price"`
}

func (req *UpdateRaffleSetRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.Type, validation.In("online", "physical")),
	)
}
