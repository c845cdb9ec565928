package domain

import "time"

// StaffRole enumerates bank staff roles. The declaration order is the
// seniority order; comparisons go through auth.Rank, never raw equality.
type StaffRole string

const (
	StaffRoleAgent      StaffRole = "Agent"
	StaffRoleAdmin      StaffRole = "Admin"
	StaffRoleSuperAdmin StaffRole = "SuperAdmin"
)

// ParseStaffRole validates a role name received from the outside.
func ParseStaffRole(s string) (StaffRole, bool) {
	switch StaffRole(s) {
	case StaffRoleAgent, StaffRoleAdmin, StaffRoleSuperAdmin:
		return StaffRole(s), true
	}
	return "", false
}

// StaffStatus represents lifecycle states for a staff identity.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "Active"
	StaffStatusDisabled StaffStatus = "Disabled"
)

// Staff models an agent or administrator. The ID is the subject identifier
// assigned by the identity provider on first creation, not a local sequence.
type Staff struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      StaffRole
	Status    StaffStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Visible reports whether the identity should appear in lookups. Disabled
// rows stay in storage but behave as absent.
func (s *Staff) Visible() bool {
	return s != nil && s.Status == StaffStatusActive
}
