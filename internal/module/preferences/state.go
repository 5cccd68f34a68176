package preferences

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Theme  entity.Theme `json:"theme"`
	Load   store.Status `json:"load"`
	Save   store.Status `json:"save"`
	Loaded bool         `json:"loaded"`
}

func loadStarted(s State) State {
	s.Load = s.Load.Start()
	return s
}

func themeLoaded(theme entity.Theme) func(State) State {
	return func(s State) State {
		s.Theme = theme
		s.Loaded = true
		s.Load = s.Load.Succeed()
		return s
	}
}

func loadFailed(msg string) func(State) State {
	return func(s State) State {
		s.Load = s.Load.Fail(msg)
		return s
	}
}

func saveStarted(s State) State {
	s.Save = s.Save.Start()
	return s
}

func themeSaved(theme entity.Theme) func(State) State {
	return func(s State) State {
		s.Theme = theme
		s.Save = s.Save.Succeed()
		return s
	}
}

func saveFailed(msg string) func(State) State {
	return func(s State) State {
		s.Save = s.Save.Fail(msg)
		return s
	}
}
