package domain

import "time"

type RaffleState string

const (
	RaffleAvailable RaffleState = "available"
	RaffleReserved  RaffleState = "reserved"
	RaffleSold      RaffleState = "sold"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Raffle is a single sellable number, identified by
// (entity_id, project_number, raffle_number). SetNumber points back at the
// raffle set the number was materialized from. Buyer, seller and payment
// method are bound together atomically when the raffle is sold.
type Raffle struct {
	EntityID            uint           `json:"entity_id"`
	ProjectNumber       uint           `json:"project_number"`
	RaffleNumber        uint           `json:"raffle_number"`
	SetNumber           uint           `json:"set_number"`
	BuyerNumber         *uint          `json:"buyer_number"`
	SoldByManagerNumber *uint          `json:"sold_by_manager_number"`
	PaymentMethod       *PaymentMethod `json:"payment_method"`
	State               RaffleState    `json:"state"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Sellable reports whether the raffle can still transition to sold.
func (r Raffle) Sellable() bool {
	return r.State == RaffleAvailable || r.State == RaffleReserved
}
