package recyclebin

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Entries []entity.TrashEntry `json:"entries"`
	List    store.Status        `json:"list"`

	Restoring   store.Flags  `json:"restoring,omitempty"`
	Purging     store.Flags  `json:"purging,omitempty"`
	Emptying    store.Status `json:"emptying"`
	ActionError string       `json:"action_error,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(entries []entity.TrashEntry) func(State) State {
	return func(s State) State {
		s.Entries = entries
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

func withoutEntry(entries []entity.TrashEntry, id int) []entity.TrashEntry {
	out := make([]entity.TrashEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func restoreStarted(key string) func(State) State {
	return func(s State) State {
		s.Restoring = s.Restoring.Set(key)
		s.ActionError = ""
		return s
	}
}

func restored(id int, key string) func(State) State {
	return func(s State) State {
		s.Entries = withoutEntry(s.Entries, id)
		s.Restoring = s.Restoring.Clear(key)
		return s
	}
}

func restoreFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Restoring = s.Restoring.Clear(key)
		s.ActionError = msg
		return s
	}
}

func purgeStarted(key string) func(State) State {
	return func(s State) State {
		s.Purging = s.Purging.Set(key)
		s.ActionError = ""
		return s
	}
}

func purged(id int, key string) func(State) State {
	return func(s State) State {
		s.Entries = withoutEntry(s.Entries, id)
		s.Purging = s.Purging.Clear(key)
		return s
	}
}

func purgeFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Purging = s.Purging.Clear(key)
		s.ActionError = msg
		return s
	}
}

func emptyStarted(s State) State {
	s.Emptying = s.Emptying.Start()
	s.ActionError = ""
	return s
}

func emptied(s State) State {
	s.Entries = []entity.TrashEntry{}
	s.Emptying = s.Emptying.Succeed()
	return s
}

func emptyFailed(msg string) func(State) State {
	return func(s State) State {
		s.Emptying = s.Emptying.Fail(msg)
		s.ActionError = msg
		return s
	}
}
