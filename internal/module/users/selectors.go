package users

import (
	"sort"
	"strings"

	"rfp-console/internal/entity"
)

// Reviewers returns the cached reviewers sorted by username.
func Reviewers(s State) []entity.TeamUser {
	var out []entity.TeamUser
	for _, u := range s.Users {
		if u.Role == entity.RoleReviewer {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})
	return out
}

func ByID(s State, userID int) (entity.TeamUser, bool) {
	for _, u := range s.Users {
		if u.UserID == userID {
			return u, true
		}
	}
	return entity.TeamUser{}, false
}
