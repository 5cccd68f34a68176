package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchLibrary       workflow.Kind = "library/fetch"
	KindUploadLibraryAsset workflow.Kind = "library/upload"
	KindDeleteLibraryAsset workflow.Kind = "library/delete"
	KindMoveLibraryAsset   workflow.Kind = "library/move"
)

type FetchLibrary struct {
	workflow.Callbacks
}

func (FetchLibrary) Kind() workflow.Kind { return KindFetchLibrary }

type UploadLibraryAsset struct {
	workflow.Callbacks
	Category string `json:"category" validate:"required,oneof=history clean training learning"`
	Filename string `json:"filename" validate:"required"`
	Content  []byte `json:"content" validate:"required"`
}

func (UploadLibraryAsset) Kind() workflow.Kind { return KindUploadLibraryAsset }

type DeleteLibraryAsset struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (DeleteLibraryAsset) Kind() workflow.Kind { return KindDeleteLibraryAsset }

type MoveLibraryAsset struct {
	workflow.Callbacks
	ID       int    `json:"id" validate:"gt=0"`
	Category string `json:"category" validate:"required,oneof=history clean training learning"`
}

func (MoveLibraryAsset) Kind() workflow.Kind { return KindMoveLibraryAsset }
