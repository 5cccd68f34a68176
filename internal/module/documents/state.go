package documents

import (
	"maps"

	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Documents []entity.Document `json:"documents"`
	List      store.Status      `json:"list"`

	Current    *entity.Document `json:"current,omitempty"`
	Detail     store.Status     `json:"detail"`
	SelectedID int              `json:"selected_id,omitempty"`

	Upload       store.Status      `json:"upload"`
	UploadFields map[string]string `json:"upload_fields,omitempty"`

	// Uploads holds the progress of each running upload by job id.
	// UploadProgress is the slowest of them, or the last outcome once idle.
	Uploads        map[string]int `json:"uploads,omitempty"`
	UploadProgress int            `json:"upload_progress"`

	Analyses map[int]entity.AnalysisResult `json:"analyses,omitempty"`
	Analysis store.Status                  `json:"analysis"`

	// Generated maps a document id to the object URL of its generated file.
	Generated map[int]string `json:"generated,omitempty"`

	Viewer *entity.BlobView `json:"viewer,omitempty"`
	View   store.Status     `json:"view"`

	Deleting    store.Flags `json:"deleting,omitempty"`
	Analyzing   store.Flags `json:"analyzing,omitempty"`
	Generating  store.Flags `json:"generating,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

// listLoaded replaces the list, so applying it twice is harmless.
func listLoaded(docs []entity.Document) func(State) State {
	return func(s State) State {
		s.Documents = docs
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

func detailStarted(s State) State {
	s.Detail = s.Detail.Start()
	return s
}

func detailLoaded(doc entity.Document) func(State) State {
	return func(s State) State {
		s.Current = &doc
		s.Detail = s.Detail.Succeed()
		return s
	}
}

func detailFailed(msg string) func(State) State {
	return func(s State) State {
		s.Detail = s.Detail.Fail(msg)
		return s
	}
}

func selected(id int) func(State) State {
	return func(s State) State {
		s.SelectedID = id
		return s
	}
}

func uploadStarted(key string) func(State) State {
	return func(s State) State {
		s.Upload = s.Upload.Start()
		s.UploadFields = nil
		s.Uploads = withUpload(s.Uploads, key, 0)
		s.UploadProgress = slowest(s.Uploads)
		return s
	}
}

func uploadFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		if len(s.Uploads) == 0 {
			s.Upload = store.Status{}
		}
		s.UploadFields = fields
		return s
	}
}

// uploadTicked advances the progress of one upload by step, never past
// ceiling and never backwards.
func uploadTicked(key string, step, ceiling int) func(State) State {
	return func(s State) State {
		p, ok := s.Uploads[key]
		if !ok || p >= ceiling {
			return s
		}
		s.Uploads = withUpload(s.Uploads, key, min(p+step, ceiling))
		s.UploadProgress = slowest(s.Uploads)
		return s
	}
}

func uploadSucceeded(key string) func(State) State {
	return func(s State) State {
		s.Uploads = withoutUpload(s.Uploads, key)
		if len(s.Uploads) > 0 {
			s.UploadProgress = slowest(s.Uploads)
			return s
		}
		s.Upload = s.Upload.Succeed()
		s.UploadProgress = 100
		return s
	}
}

func uploadFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Uploads = withoutUpload(s.Uploads, key)
		if len(s.Uploads) > 0 {
			s.Upload.Error = msg
			s.UploadProgress = slowest(s.Uploads)
			return s
		}
		s.Upload = s.Upload.Fail(msg)
		s.UploadProgress = 0
		return s
	}
}

func withUpload(uploads map[string]int, key string, progress int) map[string]int {
	next := maps.Clone(uploads)
	if next == nil {
		next = make(map[string]int, 1)
	}
	next[key] = progress
	return next
}

func withoutUpload(uploads map[string]int, key string) map[string]int {
	if _, ok := uploads[key]; !ok {
		return uploads
	}
	next := maps.Clone(uploads)
	delete(next, key)
	if len(next) == 0 {
		return nil
	}
	return next
}

func slowest(uploads map[string]int) int {
	lowest := 100
	for _, p := range uploads {
		lowest = min(lowest, p)
	}
	return lowest
}

func deleteStarted(key string) func(State) State {
	return func(s State) State {
		s.Deleting = s.Deleting.Set(key)
		s.ActionError = ""
		return s
	}
}

func documentRemoved(id int, key string) func(State) State {
	return func(s State) State {
		docs := make([]entity.Document, 0, len(s.Documents))
		for _, d := range s.Documents {
			if d.ID != id {
				docs = append(docs, d)
			}
		}
		s.Documents = docs
		if s.Current != nil && s.Current.ID == id {
			s.Current = nil
		}
		if s.SelectedID == id {
			s.SelectedID = 0
		}
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

func analysisRunStarted(key string) func(State) State {
	return func(s State) State {
		s.Analyzing = s.Analyzing.Set(key)
		s.ActionError = ""
		return s
	}
}

func analysisRunFinished(key string, result *entity.AnalysisResult, msg string) func(State) State {
	return func(s State) State {
		s.Analyzing = s.Analyzing.Clear(key)
		if result != nil {
			s = withAnalysis(s, *result)
		}
		if msg != "" {
			s.ActionError = msg
		}
		return s
	}
}

func analysisLoadStarted(s State) State {
	s.Analysis = s.Analysis.Start()
	return s
}

func analysisLoaded(result entity.AnalysisResult) func(State) State {
	return func(s State) State {
		s = withAnalysis(s, result)
		s.Analysis = s.Analysis.Succeed()
		return s
	}
}

func analysisLoadFailed(msg string) func(State) State {
	return func(s State) State {
		s.Analysis = s.Analysis.Fail(msg)
		return s
	}
}

func withAnalysis(s State, result entity.AnalysisResult) State {
	next := maps.Clone(s.Analyses)
	if next == nil {
		next = make(map[int]entity.AnalysisResult)
	}
	next[result.DocumentID] = result
	s.Analyses = next
	return s
}

func generateStarted(key string) func(State) State {
	return func(s State) State {
		s.Generating = s.Generating.Set(key)
		s.ActionError = ""
		return s
	}
}

func generateFinished(key string, id int, url, msg string) func(State) State {
	return func(s State) State {
		s.Generating = s.Generating.Clear(key)
		if url != "" {
			next := maps.Clone(s.Generated)
			if next == nil {
				next = make(map[int]string)
			}
			next[id] = url
			s.Generated = next
		}
		if msg != "" {
			s.ActionError = msg
		}
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
