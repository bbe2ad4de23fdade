package user

type Role string

const (
	RoleAdmin  Role = "admin"  // Can review timesheets/leave and edit configuration
	RoleMember Role = "member" // Regular worker
)

// Identity is the authenticated caller as seen by the engine. It arrives via
// JWT claims; the engine performs no authentication of its own.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin checks if the caller may review submissions and edit configuration.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
