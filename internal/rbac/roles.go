package rbac

// Role names. Keep these stable; they are embedded in issued tokens.
const (
	RoleOwner      = "owner"
	RoleAnalyst    = "analyst"
	RoleSuperAdmin = "super_admin"
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

// IsKnownRole reports whether role may be issued a dashboard token.
func IsKnownRole(role string) bool {
	switch role {
	case RoleOwner, RoleAnalyst, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
