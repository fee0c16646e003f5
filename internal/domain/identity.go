package domain

// Role separates administrators from standard users.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// Identity is the logged-in user of a session. It is created at login,
// destroyed at logout and replaced wholesale, never patched.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar"`
}

// IsAdmin reports whether the identity holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
