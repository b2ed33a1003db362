package user

// Role is the caller identity supplied by the external identity
// provider. The engine only consumes it for authorization checks.
type Role string

const (
	RoleMember Role = "member"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageCourts reports whether the role may mutate schedules and
// maintenance windows.
func (r Role) CanManageCourts() bool {
	return r == RoleOwner || r == RoleAdmin
}
