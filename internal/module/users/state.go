package users

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Users []entity.TeamUser `json:"users"`
	// Role is the filter the cached list was fetched with; "" means all.
	Role  string            `json:"role,omitempty"`
	List  store.Status      `json:"list"`

	Profile       *entity.Profile `json:"profile,omitempty"`
	ProfileStatus store.Status    `json:"profile_status"`

	Update         store.Status      `json:"update"`
	UpdateFields   map[string]string `json:"update_fields,omitempty"`
	Password       store.Status      `json:"password"`
	PasswordFields map[string]string `json:"password_fields,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(role string, users []entity.TeamUser) func(State) State {
	return func(s State) State {
		s.Users = users
		s.Role = role
		s.List = s.List.Succeed()
		return s
	}
}

func listFailed(msg string) func(State) State {
	return func(s State) State {
		s.List = s.List.Fail(msg)
		return s
	}
}

func profileStarted(s State) State {
	s.ProfileStatus = s.ProfileStatus.Start()
	return s
}

func profileLoaded(p entity.Profile) func(State) State {
	return func(s State) State {
		s.Profile = &p
		s.ProfileStatus = s.ProfileStatus.Succeed()
		return s
	}
}

func profileFailed(msg string) func(State) State {
	return func(s State) State {
		s.ProfileStatus = s.ProfileStatus.Fail(msg)
		return s
	}
}

func updateStarted(s State) State {
	s.Update = s.Update.Start()
	s.UpdateFields = nil
	return s
}

func updateFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Update = store.Status{}
		s.UpdateFields = fields
		return s
	}
}

// usernameChanged renames the profile and the matching cached user.
func usernameChanged(userID int, username string) func(State) State {
	return func(s State) State {
		if s.Profile != nil {
			p := *s.Profile
			p.Username = username
			s.Profile = &p
			userID = p.UserID
		}
		if userID != 0 {
			users := make([]entity.TeamUser, len(s.Users))
			for i, u := range s.Users {
				if u.UserID == userID {
					u.Username = username
				}
				users[i] = u
			}
			s.Users = users
		}
		s.Update = s.Update.Succeed()
		return s
	}
}

func updateFailed(msg string) func(State) State {
	return func(s State) State {
		s.Update = s.Update.Fail(msg)
		return s
	}
}

func passwordStarted(s State) State {
	s.Password = s.Password.Start()
	s.PasswordFields = nil
	return s
}

func passwordFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Password = store.Status{}
		s.PasswordFields = fields
		return s
	}
}

func passwordChanged(s State) State {
	s.Password = s.Password.Succeed()
	return s
}

func passwordFailed(msg string) func(State) State {
	return func(s State) State {
		s.Password = s.Password.Fail(msg)
		return s
	}
}
