package intent

import "rfp-console/pkg/workflow"

const (
	KindLogin          workflow.Kind = "auth/login"
	KindLogout         workflow.Kind = "auth/logout"
	KindRestoreSession workflow.Kind = "auth/restore_session"
	KindForgotPassword workflow.Kind = "auth/forgot_password"
	KindResetPassword  workflow.Kind = "auth/reset_password"
)

type Login struct {
	workflow.Callbacks
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Remember bool   `json:"remember"`
}

func (Login) Kind() workflow.Kind { return KindLogin }

func NewLogin(email, password string, remember bool) Login {
	return Login{Email: email, Password: password, Remember: remember}
}

type Logout struct {
	workflow.Callbacks
}

func (Logout) Kind() workflow.Kind { return KindLogout }

type RestoreSession struct {
	workflow.Callbacks
}

func (RestoreSession) Kind() workflow.Kind { return KindRestoreSession }

type ForgotPassword struct {
	workflow.Callbacks
	Email string `json:"email" validate:"required,email"`
}

func (ForgotPassword) Kind() workflow.Kind { return KindForgotPassword }

func NewForgotPassword(email string) ForgotPassword {
	return ForgotPassword{Email: email}
}

type ResetPassword struct {
	workflow.Callbacks
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (ResetPassword) Kind() workflow.Kind { return KindResetPassword }

func NewResetPassword(token, password, confirm string) ResetPassword {
	return ResetPassword{Token: token, Password: password, ConfirmPassword: confirm}
}
