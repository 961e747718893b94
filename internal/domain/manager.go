package domain

import "time"

// Manager is an employee-level principal belonging to exactly one entity.
// It is identified by (entity_id, manager_number); the number is allocated
// per entity starting at 1 and never reused.
type Manager struct {
	EntityID      uint      `json:"entity_id"`
	ManagerNumber uint      `json:"manager_number"`
	Username      string    `json:"username"`
	Password      string    `json:"-"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
