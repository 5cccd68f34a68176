package keystone

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Files []entity.KeystoneFile `json:"files"`
	List  store.Status          `json:"list"`

	Upload       store.Status      `json:"upload"`
	UploadFields map[string]string `json:"upload_fields,omitempty"`

	Viewer *entity.BlobView `json:"viewer,omitempty"`
	View   store.Status     `json:"view"`

	Deleting    store.Flags `json:"deleting,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(files []entity.KeystoneFile) func(State) State {
	return func(s State) State {
		s.Files = files
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

func fileRemoved(id int, key string) func(State) State {
	return func(s State) State {
		files := make([]entity.KeystoneFile, 0, len(s.Files))
		for _, f := range s.Files {
			if f.ID != id {
				files = append(files, f)
			}
		}
		s.Files = files
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

func viewStarted(s State) State {
	s.View = s.View.Start()
	return s
}

func viewOpened(view entity.BlobView) func(State) State {
	return func(s State) State {
		s.Viewer = &view
		s.View = s.View.Succeed()
		return s
	}
}

func viewFailed(msg string) func(State) State {
	return func(s State) State {
		s.View = s.View.Fail(msg)
		return s
	}
}

// viewerClosed clears the viewer if it still shows url ("" matches any).
func viewerClosed(url string) func(State) State {
	return func(s State) State {
		if s.Viewer == nil || (url != "" && s.Viewer.URL != url) {
			return s
		}
		s.Viewer = nil
		s.View = store.Status{}
		return s
	}
}
