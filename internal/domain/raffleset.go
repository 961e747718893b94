package domain

import "time"

type SetType string

const (
	SetTypeOnline   SetType = "online"
	SetTypePhysical SetType = "physical"
)

// RaffleSet is a batch of consecutively numbered raffles inside a project.
// Identified by (entity_id, project_number, set_number). Init and Final are
// inclusive raffle numbers; numbering is continuous across all sets of the
// same project, so a new set starts right after the highest existing raffle
// number in the project.
type RaffleSet struct {
	EntityID      uint      `json:"entity_id"`
	ProjectNumber uint      `json:"project_number"`
	SetNumber     uint      `json:"set_number"`
	Name          string    `json:"name"`
	Type          SetType   `json:"type"`
	Init          uint      `json:"init"`
	Final         uint      `json:"final"`
	UnitPrice     int       `json:"unit_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Quantity is the number of raffles the set spans.
func (s RaffleSet) Quantity() uint {
	return s.Final - s.Init + 1
}
