package models

// Role is the set of roles the rating service assigns to accounts.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStoreOwner Role = "store_owner"
	RoleNormal     Role = "normal"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStoreOwner, RoleNormal:
		return true
	}
	return false
}

// LandingPath returns the view a freshly logged-in user of this role lands on.
// Every role maps to exactly one landing view; unknown roles fall back to home.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleStoreOwner:
		return "/store/dashboard"
	case RoleNormal:
		return "/user/stores"
	}
	return "/"
}
