package entity

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReviewer Role = "reviewer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReviewer
}

// Session is the authenticated-user context that survives restarts.
// At most one is active; a non-empty Token means authenticated.
type Session struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	UserID   int    `json:"user_id"`
	Remember bool   `json:"remember"`

	// RememberedPassword is only populated in memory; at rest it is sealed.
	RememberedPassword string `json:"-"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Public strips secrets before the session is placed in shared state.
func (s *Session) Public() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.RememberedPassword = ""
	return &cp
}

type TeamUser struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

type Profile struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)
