package company

import "strings"

// Role is a normalized membership role. Stored role strings are
// operator-entered free text, so every comparison must go through
// NormalizeRole rather than matching raw column values.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// NormalizeRole trims and lowercases a stored role string. Anything outside
// the known set degrades to employee.
func NormalizeRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleEmployee
	}
}
