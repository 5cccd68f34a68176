package entity

import (
	"encoding/json"
	"time"
)

type Category string

const (
	CategoryHistory  Category = "history"
	CategoryClean    Category = "clean"
	CategoryTraining Category = "training"
	CategoryLearning Category = "learning"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHistory, CategoryClean, CategoryTraining, CategoryLearning:
		return true
	}
	return false
}

// Document is an uploaded RFP.
type Document struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	ProjectName string    `json:"project_name"`
	Category    Category  `json:"category"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Summary     string    `json:"summary,omitempty"`
	IsDeleted   bool      `json:"is_deleted"`
}

// TrashEntry is a soft-deleted document awaiting restore or purge.
type TrashEntry struct {
	ID        int       `json:"id"`
	Filename  string    `json:"filename"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Library is the client-side projection of library documents by category.
type Library struct {
	HistoricRFPs      []Document `json:"historic_rfps"`
	Clean             []Document `json:"clean"`
	TrainingMaterials []Document `json:"training_materials"`
	LearningDocuments []Document `json:"learning_documents"`
	// Other keeps documents whose category the console does not know.
	Other             []Document `json:"other,omitempty"`
}

type KeystoneFile struct {
	ID         int       `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int64     `json:"size"`
}

type AnalysisSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AnalysisResult is the AI analysis of one document.
type AnalysisResult struct {
	DocumentID int               `json:"document_id"`
	Summary    string            `json:"summary"`
	Sections   []AnalysisSection `json:"sections"`
	Raw        json.RawMessage   `json:"raw,omitempty"`
}

// BlobView is a downloaded binary exposed under a temporary object URL.
type BlobView struct {
	OwnerID     int    `json:"owner_id"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}
