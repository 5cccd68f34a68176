package documents

import (
	"sort"
	"strconv"

	"rfp-console/internal/entity"
)

type ProjectGroup struct {
	Project   string            `json:"project"`
	Documents []entity.Document `json:"documents"`
}

// ByProject groups documents by project name. Duplicate ids are kept once;
// groups are sorted by project and documents by filename then id.
func ByProject(s State) []ProjectGroup {
	seen := make(map[int]bool, len(s.Documents))
	groups := make(map[string][]entity.Document)
	for _, d := range s.Documents {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		groups[d.ProjectName] = append(groups[d.ProjectName], d)
	}

	out := make([]ProjectGroup, 0, len(groups))
	for project, docs := range groups {
		sort.SliceStable(docs, func(i, j int) bool {
			if docs[i].Filename != docs[j].Filename {
				return docs[i].Filename < docs[j].Filename
			}
			return docs[i].ID < docs[j].ID
		})
		out = append(out, ProjectGroup{Project: project, Documents: docs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Project < out[j].Project })
	return out
}

// Selected returns the selected document, falling back to the last detail fetch.
func Selected(s State) *entity.Document {
	for i := range s.Documents {
		if s.Documents[i].ID == s.SelectedID {
			doc := s.Documents[i]
			return &doc
		}
	}
	if s.Current != nil && (s.SelectedID == 0 || s.Current.ID == s.SelectedID) {
		doc := *s.Current
		return &doc
	}
	return nil
}

func Viewer(s State) *entity.BlobView {
	return s.Viewer
}

// UploadProgress is the progress of the slowest running upload.
func UploadProgress(s State) int {
	return s.UploadProgress
}

func UploadsInFlight(s State) int {
	return len(s.Uploads)
}

func Analysis(s State, documentID int) (entity.AnalysisResult, bool) {
	r, ok := s.Analyses[documentID]
	return r, ok
}

func IsDeleting(s State, documentID int) bool {
	return s.Deleting.Has(strconv.Itoa(documentID))
}
