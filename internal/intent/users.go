package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchUsers     workflow.Kind = "users/fetch"
	KindFetchProfile   workflow.Kind = "users/fetch_profile"
	KindUpdateProfile  workflow.Kind = "users/update_profile"
	KindChangePassword workflow.Kind = "users/change_password"
)

type FetchUsers struct {
	workflow.Callbacks
	Role string `json:"role" validate:"omitempty,oneof=admin reviewer"`
}

func (FetchUsers) Kind() workflow.Kind { return KindFetchUsers }

type FetchProfile struct {
	workflow.Callbacks
}

func (FetchProfile) Kind() workflow.Kind { return KindFetchProfile }

type UpdateProfile struct {
	workflow.Callbacks
	Username string `json:"username" validate:"required"`
}

func (UpdateProfile) Kind() workflow.Kind { return KindUpdateProfile }

type ChangePassword struct {
	workflow.Callbacks
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (ChangePassword) Kind() workflow.Kind { return KindChangePassword }
