package intent

import (
	"rfp-console/internal/entity"
	"rfp-console/pkg/workflow"
)

const (
	KindFetchAssignedReviewers workflow.Kind = "reviewers/fetch_assigned"
	KindSetDraft               workflow.Kind = "reviewers/set_draft"
	KindAssignReviewer         workflow.Kind = "reviewers/assign"
	KindUnassignReviewer       workflow.Kind = "reviewers/unassign"
)

type FetchAssignedReviewers struct {
	workflow.Callbacks
	FileID int `json:"file_id" validate:"gt=0"`
}

func (FetchAssignedReviewers) Kind() workflow.Kind { return KindFetchAssignedReviewers }

// SetDraft records the reviewers picked for row QIdx before they are assigned.
type SetDraft struct {
	workflow.Callbacks
	QIdx  int               `json:"q_idx" validate:"gte=0"`
	Users []entity.Reviewer `json:"users"`
}

func (SetDraft) Kind() workflow.Kind { return KindSetDraft }

type AssignReviewer struct {
	workflow.Callbacks
	QIdx       int               `json:"q_idx" validate:"gte=0"`
	Users      []entity.Reviewer `json:"users" validate:"required,min=1"`
	QuestionID int               `json:"question_id" validate:"gt=0"`
	FileID     int               `json:"file_id" validate:"gt=0"`
}

func (AssignReviewer) Kind() workflow.Kind { return KindAssignReviewer }

func NewAssignReviewer(qIdx int, users []entity.Reviewer, questionID, fileID int) AssignReviewer {
	return AssignReviewer{QIdx: qIdx, Users: users, QuestionID: questionID, FileID: fileID}
}

type UnassignReviewer struct {
	workflow.Callbacks
	QIdx       int `json:"q_idx" validate:"gte=0"`
	QuestionID int `json:"question_id" validate:"gt=0"`
	UserID     int `json:"user_id" validate:"gt=0"`
	FileID     int `json:"file_id" validate:"gt=0"`
}

func (UnassignReviewer) Kind() workflow.Kind { return KindUnassignReviewer }

func NewUnassignReviewer(qIdx, questionID, userID, fileID int) UnassignReviewer {
	return UnassignReviewer{QIdx: qIdx, QuestionID: questionID, UserID: userID, FileID: fileID}
}
