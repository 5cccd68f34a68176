package library

import (
	"rfp-console/internal/entity"
	"rfp-console/internal/mapper"
	"rfp-console/pkg/store"
)

type State struct {
	Library entity.Library `json:"library"`
	List    store.Status   `json:"list"`

	Upload       store.Status      `json:"upload"`
	UploadFields map[string]string `json:"upload_fields,omitempty"`

	Deleting    store.Flags `json:"deleting,omitempty"`
	Moving      store.Flags `json:"moving,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

// all flattens the buckets back into one list.
func all(lib entity.Library) []entity.Document {
	out := make([]entity.Document, 0, len(lib.HistoricRFPs)+len(lib.Clean)+len(lib.TrainingMaterials)+len(lib.LearningDocuments)+len(lib.Other))
	out = append(out, lib.HistoricRFPs...)
	out = append(out, lib.Clean...)
	out = append(out, lib.TrainingMaterials...)
	out = append(out, lib.LearningDocuments...)
	return append(out, lib.Other...)
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(docs []entity.Document) func(State) State {
	return func(s State) State {
		s.Library = mapper.ToLibrary(docs)
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

func uploadStarted(s State) State {
	s.Upload = s.Upload.Start()
	s.UploadFields = nil
	return s
}

func uploadFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Upload = store.Status{}
		s.UploadFields = fields
		return s
	}
}

func uploadSucceeded(s State) State {
	s.Upload = s.Upload.Succeed()
	return s
}

func uploadFailed(msg string) func(State) State {
	return func(s State) State {
		s.Upload = s.Upload.Fail(msg)
		return s
	}
}

func deleteStarted(key string) func(State) State {
	return func(s State) State {
		s.Deleting = s.Deleting.Set(key)
		s.ActionError = ""
		return s
	}
}

func assetRemoved(id int, key string) func(State) State {
	return func(s State) State {
		docs := all(s.Library)
		kept := make([]entity.Document, 0, len(docs))
		for _, d := range docs {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		s.Library = mapper.ToLibrary(kept)
		s.Deleting = s.Deleting.Clear(key)
		return s
	}
}

func deleteFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Deleting = s.Deleting.Clear(key)
		s.ActionError = msg
		return s
	}
}

func moveStarted(key string) func(State) State {
	return func(s State) State {
		s.Moving = s.Moving.Set(key)
		s.ActionError = ""
		return s
	}
}

// assetMoved re-buckets id under category.
func assetMoved(id int, category entity.Category, key string) func(State) State {
	return func(s State) State {
		docs := all(s.Library)
		for i := range docs {
			if docs[i].ID == id {
				docs[i].Category = category
			}
		}
		s.Library = mapper.ToLibrary(docs)
		s.Moving = s.Moving.Clear(key)
		return s
	}
}

func moveFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Moving = s.Moving.Clear(key)
		s.ActionError = msg
		return s
	}
}
