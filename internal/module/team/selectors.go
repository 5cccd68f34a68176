package team

import "rfp-console/internal/entity"

func ByRole(s State, role entity.Role) []entity.TeamUser {
	var out []entity.TeamUser
	for _, u := range s.Members {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// Unverified lists members who have not confirmed their email.
func Unverified(s State) []entity.TeamUser {
	var out []entity.TeamUser
	for _, u := range s.Members {
		if !u.Verified {
			out = append(out, u)
		}
	}
	return out
}
