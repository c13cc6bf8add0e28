package company

// Membership links a user to a company with a role. At most one membership
// exists per (user, company) pair.
type Membership struct {
	UserID    string
	CompanyID int64
	Role      Role
}

// PrimaryMembership selects the user's primary company from their
// memberships: admin rows first, ties broken by ascending company id. The
// order is total so repeated calls are deterministic. Returns nil when the
// user has no memberships.
func PrimaryMembership(memberships []Membership) *Membership {
	var best *Membership
	for i := range memberships {
		m := &memberships[i]
		if best == nil {
			best = m
			continue
		}
		if m.Role.IsAdmin() != best.Role.IsAdmin() {
			if m.Role.IsAdmin() {
				best = m
			}
			continue
		}
		if m.CompanyID < best.CompanyID {
			best = m
		}
	}
	return best
}

// HasAdmin reports whether any membership carries the admin role.
func HasAdmin(memberships []Membership) bool {
	for _, m := range memberships {
		if m.Role.IsAdmin() {
			return true
		}
	}
	return false
}
