package domain

import "time"

// Entity is a tenant organization, the root of the scope hierarchy.
// Every other record is keyed by the entity it belongs to.
type Entity struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Password    string    `json:"-"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
