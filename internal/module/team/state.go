package team

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Members []entity.TeamUser `json:"members"`
	List    store.Status      `json:"list"`

	Save       store.Status      `json:"save"`
	SaveFields map[string]string `json:"save_fields,omitempty"`

	Deleting    store.Flags `json:"deleting,omitempty"`
	Resending   store.Flags `json:"resending,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(members []entity.TeamUser) func(State) State {
	return func(s State) State {
		s.Members = members
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

func saveStarted(s State) State {
	s.Save = s.Save.Start()
	s.SaveFields = nil
	return s
}

func saveFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Save = store.Status{}
		s.SaveFields = fields
		return s
	}
}

func saveSucceeded(s State) State {
	s.Save = s.Save.Succeed()
	return s
}

func saveFailed(msg string) func(State) State {
	return func(s State) State {
		s.Save = s.Save.Fail(msg)
		return s
	}
}

func flagStarted(flags func(*State) *store.Flags, key string) func(State) State {
	return func(s State) State {
		f := flags(&s)
		*f = f.Set(key)
		s.ActionError = ""
		return s
	}
}

func flagFinished(flags func(*State) *store.Flags, key, msg string) func(State) State {
	return func(s State) State {
		f := flags(&s)
		*f = f.Clear(key)
		if msg != "" {
			s.ActionError = msg
		}
		return s
	}
}

func deleting(s *State) *store.Flags  { return &s.Deleting }
func resending(s *State) *store.Flags { return &s.Resending }

func memberRemoved(userID int, key string) func(State) State {
	return func(s State) State {
		members := make([]entity.TeamUser, 0, len(s.Members))
		for _, u := range s.Members {
			if u.UserID != userID {
				members = append(members, u)
			}
		}
		s.Members = members
		s.Deleting = s.Deleting.Clear(key)
		return s
	}
}
