package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchTeam          workflow.Kind = "team/fetch"
	KindAddMember          workflow.Kind = "team/add"
	KindUpdateMember       workflow.Kind = "team/update"
	KindDeleteMember       workflow.Kind = "team/delete"
	KindResendVerification workflow.Kind = "team/resend_verification"
)

type FetchTeam struct {
	workflow.Callbacks
}

func (FetchTeam) Kind() workflow.Kind { return KindFetchTeam }

type AddMember struct {
	workflow.Callbacks
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin reviewer"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

func (AddMember) Kind() workflow.Kind { return KindAddMember }

type UpdateMember struct {
	workflow.Callbacks
	UserID   int    `json:"user_id" validate:"gt=0"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin reviewer"`
}

func (UpdateMember) Kind() workflow.Kind { return KindUpdateMember }

type DeleteMember struct {
	workflow.Callbacks
	UserID int `json:"user_id" validate:"gt=0"`
}

func (DeleteMember) Kind() workflow.Kind { return KindDeleteMember }

type ResendVerification struct {
	workflow.Callbacks
	UserID int `json:"user_id" validate:"gt=0"`
}

func (ResendVerification) Kind() workflow.Kind { return KindResendVerification }
