package domain

import "time"

// Project groups raffle sets under an entity. Identified by
// (entity_id, project_number).
type Project struct {
	EntityID      uint      `json:"entity_id"`
	ProjectNumber uint      `json:"project_number"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
