package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// SellRaffleRequest records a completed sale. SellerNumber is only honoured
// for entity callers; a manager always sells as themselves.
type SellRaffleRequest struct {
	BuyerNumber   uint   `json:"buyer_number"`
	PaymentMethod string `json:"payment_method"`
	SellerNumber  *uint  `json:"seller_number"`
}

func (req *SellRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BuyerNumber, validation.Required),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In("cash", "card", "transfer")),
	)
}

// UpdateRaffleRequest toggles the reservation state. A raffle is only ever
// marked sold through the sale endpoint.
type UpdateRaffleRequest struct {
	State *string `json:"state"`
}

func (req *UpdateRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.State, validation.In("available", "reserved")),
	)
}
