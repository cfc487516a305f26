package models

// Role is the closed set of roles a principal can hold. Keeping it a
// dedicated type (rather than a free-form string) lets the route guard
// check it exhaustively.
type Role string

const (
	// RoleCardOwner grants access to the /dollarcards namespace.
	RoleCardOwner Role = "CARD-OWNER"

	// RoleNotOwner is authenticated but barred from the card surface.
	RoleNotOwner Role = "NOT-OWNER"
)

// User represents a bootstrap principal: a username, its bcrypt password
// hash, and exactly one role. Users are created once at process start and
// never mutated; there is no runtime user management.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
}

// Principal is the authenticated identity attached to a request after the
// basic-auth gate has verified its credentials.
type Principal struct {
	Username string
	Role     Role
}
