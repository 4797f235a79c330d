package domain

// Role is the kind of user acting on the system.
type Role string

// List of user roles
const (
	RoleGenerator   Role = "generator"
	RoleTransporter Role = "transporter"
)

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	return r == RoleGenerator || r == RoleTransporter
}

// Actor identifies the caller of an operation.
type Actor struct {
	ID   string
	Role Role
}
