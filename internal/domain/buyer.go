package domain

import "time"

// Buyer is a person raffles are sold to, identified by
// (entity_id, buyer_number). Name and phone are unique together per entity.
// CreatedByManagerNumber records which manager registered the buyer; it is
// nulled when that manager is deleted, so consumers must tolerate nil.
type Buyer struct {
	EntityID               uint      `json:"entity_id"`
	BuyerNumber            uint      `json:"buyer_number"`
	Name                   string    `json:"name"`
	Phone                  string    `json:"phone"`
	Email                  *string   `json:"email"`
	CreatedByManagerNumber *uint     `json:"created_by_manager_number"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
