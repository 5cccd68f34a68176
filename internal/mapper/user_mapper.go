package mapper

import (
	"strings"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
)

func ToRole(raw *string) entity.Role {
	if raw == nil {
		return ""
	}
	role := entity.Role(strings.ToLower(strings.TrimSpace(*raw)))
	if !role.Valid() {
		return ""
	}
	return role
}

// ToSession builds the session from a login response. Role and UserID stay
// zero when the backend omitted them.
func ToSession(email string, resp dto.LoginResponse) entity.Session {
	return entity.Session{
		Email:  dto.FirstString(resp.Email, email),
		Token:  resp.AccessToken,
		Role:   ToRole(resp.Role),
		UserID: dto.FirstInt(resp.UserID),
	}
}

func ToTeamUser(u dto.UserDetailResponse) entity.TeamUser {
	verified := false
	if u.IsVerified != nil {
		verified = *u.IsVerified
	} else if u.Verified != nil {
		verified = *u.Verified
	}
	return entity.TeamUser{
		UserID:   dto.FirstInt(u.UserID, u.ID),
		Username: dto.FirstString(u.Username, u.Name),
		Email:    u.Email,
		Role:     ToRole(u.Role),
		Verified: verified,
	}
}

func ToTeamUsers(list []dto.UserDetailResponse) []entity.TeamUser {
	users := make([]entity.TeamUser, 0, len(list))
	for _, u := range list {
		users = append(users, ToTeamUser(u))
	}
	return users
}

func ToProfile(u dto.UserDetailResponse) entity.Profile {
	t := ToTeamUser(u)
	return entity.Profile{UserID: t.UserID, Username: t.Username, Email: t.Email, Role: t.Role}
}

// FindByEmail returns the user whose email matches, ignoring case.
func FindByEmail(list []dto.UserDetailResponse, email string) (dto.UserDetailResponse, bool) {
	for _, u := range list {
		if strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email)) {
			return u, true
		}
	}
	return dto.UserDetailResponse{}, false
}
