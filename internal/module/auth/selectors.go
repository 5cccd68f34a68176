package auth

import "rfp-console/internal/entity"

func IsAuthenticated(s State) bool {
	return s.Session.Authenticated()
}

func IsAdmin(s State) bool {
	return s.Session.Authenticated() && s.Session.Role == entity.RoleAdmin
}

func CurrentUserID(s State) int {
	if !s.Session.Authenticated() {
		return 0
	}
	return s.Session.UserID
}

// RememberedEmail is the email to prefill on the login form.
func RememberedEmail(s State) string {
	if s.Session == nil || !s.Session.Remember {
		return ""
	}
	return s.Session.Email
}
