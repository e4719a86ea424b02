package domain

// Role of the actor requesting availability.
// Authorization happens upstream; the role is trusted as supplied.
type Role string

const (
	RolePatient    Role = "patient"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleDoctor     Role = "doctor"
	RoleSuperAdmin Role = "superadmin"
)

// IsKnown returns true if the role belongs to the closed set of roles
func (r Role) IsKnown() bool {
	switch r {
	case RolePatient, RoleAdmin, RoleStaff, RoleDoctor, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsPrivileged returns true for roles exempt from the patient lead-time rule
func (r Role) IsPrivileged() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleDoctor, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
