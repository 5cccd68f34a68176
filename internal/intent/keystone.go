package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchKeystoneFiles workflow.Kind = "keystone/fetch"
	KindUploadKeystoneFile workflow.Kind = "keystone/upload"
	KindDeleteKeystoneFile workflow.Kind = "keystone/delete"
	KindViewKeystoneFile   workflow.Kind = "keystone/view"
	KindCloseKeystoneView  workflow.Kind = "keystone/close_view"
)

type FetchKeystoneFiles struct {
	workflow.Callbacks
}

func (FetchKeystoneFiles) Kind() workflow.Kind { return KindFetchKeystoneFiles }

type UploadKeystoneFile struct {
	workflow.Callbacks
	Filename string `json:"filename" validate:"required"`
	Content  []byte `json:"content" validate:"required"`
}

func (UploadKeystoneFile) Kind() workflow.Kind { return KindUploadKeystoneFile }

type DeleteKeystoneFile struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (DeleteKeystoneFile) Kind() workflow.Kind { return KindDeleteKeystoneFile }

type ViewKeystoneFile struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (ViewKeystoneFile) Kind() workflow.Kind { return KindViewKeystoneFile }

type CloseKeystoneView struct {
	workflow.Callbacks
}

func (CloseKeystoneView) Kind() workflow.Kind { return KindCloseKeystoneView }
