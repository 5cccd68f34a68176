package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchMyAssignments    workflow.Kind = "assignments/fetch"
	KindFetchAssignmentDetail workflow.Kind = "assignments/fetch_detail"
	KindSubmitAssignment      workflow.Kind = "assignments/submit"
)

type FetchMyAssignments struct {
	workflow.Callbacks
}

func (FetchMyAssignments) Kind() workflow.Kind { return KindFetchMyAssignments }

type FetchAssignmentDetail struct {
	workflow.Callbacks
	FileID int `json:"file_id" validate:"gt=0"`
}

func (FetchAssignmentDetail) Kind() workflow.Kind { return KindFetchAssignmentDetail }

type SubmitAssignment struct {
	workflow.Callbacks
	FileID int `json:"file_id" validate:"gt=0"`
}

func (SubmitAssignment) Kind() workflow.Kind { return KindSubmitAssignment }
