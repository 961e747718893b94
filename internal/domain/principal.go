package domain

type Role string

const (
	RoleEntity  Role = "entity"
	RoleManager Role = "manager"
)

// Principal is the authenticated caller of an operation, resolved once at the
// request boundary and passed explicitly through every service call. The
// scope of a principal is always its own entity; managers never act across
// entities. ManagerNumber is zero for entity principals.
type Principal struct {
	EntityID      uint `json:"entity_id"`
	Role          Role `json:"role"`
	ManagerNumber uint `json:"manager_number,omitempty"`
}

// IsEntity reports whether the caller is the tenant owner.
func (p Principal) IsEntity() bool {
	return p.Role == RoleEntity
}

// IsManager reports whether the caller is an employee-level manager.
func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}
