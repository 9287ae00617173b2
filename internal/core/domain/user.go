package domain

import "time"

// Role is the access level of a session.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAdministrator Role = "administrator"
)

// AuthMode selects between the two tabs of the sign-in form.
type AuthMode string

const (
	AuthModeSignUp AuthMode = "sign-up"
	AuthModeSignIn AuthMode = "sign-in"
)

// Credentials is what the sign-in form submits. Name is only read on sign-up.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Session is the authenticated identity of one client.
type Session struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the session may use the admin dashboard.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdministrator
}
