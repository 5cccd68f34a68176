package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchDocuments   workflow.Kind = "documents/fetch"
	KindFetchDocument    workflow.Kind = "documents/fetch_one"
	KindSelectDocument   workflow.Kind = "documents/select"
	KindUploadDocument   workflow.Kind = "documents/upload"
	KindDeleteDocument   workflow.Kind = "documents/delete"
	KindRunAnalysis      workflow.Kind = "documents/run_analysis"
	KindLoadAnalysis     workflow.Kind = "documents/load_analysis"
	KindGenerateDocument workflow.Kind = "documents/generate"
	KindViewDocument     workflow.Kind = "documents/view"
	KindCloseViewer      workflow.Kind = "documents/close_viewer"
)

type FetchDocuments struct {
	workflow.Callbacks
}

func (FetchDocuments) Kind() workflow.Kind { return KindFetchDocuments }

type FetchDocument struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (FetchDocument) Kind() workflow.Kind { return KindFetchDocument }

type SelectDocument struct {
	workflow.Callbacks
	ID int `json:"id"`
}

func (SelectDocument) Kind() workflow.Kind { return KindSelectDocument }

type UploadDocument struct {
	workflow.Callbacks
	ProjectName string `json:"project_name" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=history clean training learning"`
	Filename    string `json:"filename" validate:"required"`
	Content     []byte `json:"content" validate:"required"`
}

func (UploadDocument) Kind() workflow.Kind { return KindUploadDocument }

func NewUploadDocument(projectName, category, filename string, content []byte) UploadDocument {
	return UploadDocument{ProjectName: projectName, Category: category, Filename: filename, Content: content}
}

type DeleteDocument struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (DeleteDocument) Kind() workflow.Kind { return KindDeleteDocument }

type RunAnalysis struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (RunAnalysis) Kind() workflow.Kind { return KindRunAnalysis }

type LoadAnalysis struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (LoadAnalysis) Kind() workflow.Kind { return KindLoadAnalysis }

type GenerateDocument struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (GenerateDocument) Kind() workflow.Kind { return KindGenerateDocument }

type ViewDocument struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (ViewDocument) Kind() workflow.Kind { return KindViewDocument }

type CloseViewer struct {
	workflow.Callbacks
}

func (CloseViewer) Kind() workflow.Kind { return KindCloseViewer }
