package auth

import (
	"context"
	"errors"
	"net/url"

	"rfp-console/internal/dto"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

var ErrUserNotFound = errors.New("user details not found")

func (m *Module) login(ctx context.Context, job *workflow.Job, in intent.Login) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, loginFieldErrors(fields))
	}) {
		return
	}

	m.slice.Update(job, loginStarted)
	m.deps.Logger.Info(Name, "Login started", map[string]interface{}{"email": in.Email})

	fail := func(err error) {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Login failed", func(msg string) {
			m.slice.Update(job, loginFailed(msg))
		})
	}

	form := url.Values{"username": {in.Email}, "password": {in.Password}}
	var resp dto.LoginResponse
	if err := m.deps.API.PostForm(ctx, "/login", form, &resp); err != nil {
		fail(err)
		return
	}

	s := mapper.ToSession(in.Email, resp)
	if s.Role == "" || s.UserID == 0 {
		var users dto.FlexList[dto.UserDetailResponse]
		if err := m.deps.API.Get(apiclient.WithToken(ctx, s.Token), "/userdetails", nil, &users); err != nil {
			fail(err)
			return
		}
		u, ok := mapper.FindByEmail(users, s.Email)
		if !ok {
			fail(ErrUserNotFound)
			return
		}
		detail := mapper.ToTeamUser(u)
		if s.Role == "" {
			s.Role = detail.Role
		}
		if s.UserID == 0 {
			s.UserID = detail.UserID
		}
	}

	s.Remember = in.Remember
	if in.Remember {
		s.RememberedPassword = in.Password
	}

	if !job.Live() {
		return
	}
	if err := m.deps.Sessions.Set(ctx, s); err != nil {
		fail(err)
		return
	}

	m.slice.Update(job, loginSucceeded(s.Public()))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Login successful", s.Public())
}

func (m *Module) logout(ctx context.Context, job *workflow.Job, in intent.Logout) {
	if err := m.deps.API.Post(ctx, "/logout", nil, nil); err != nil {
		m.deps.Logger.Debug(Name, "Backend logout failed", map[string]interface{}{"error": err.Error()})
	}
	if err := m.deps.Sessions.Clear(context.WithoutCancel(ctx)); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Logout failed", nil)
		return
	}
	m.slice.Update(job, sessionReplaced(nil))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Logged out", nil)
}

func (m *Module) restore(ctx context.Context, job *workflow.Job, in intent.RestoreSession) {
	s, err := m.deps.Sessions.Get(ctx)
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Could not restore session", nil)
		return
	}
	m.slice.Update(job, sessionReplaced(s.Public()))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", s.Public())
}

func (m *Module) forgotPassword(ctx context.Context, job *workflow.Job, in intent.ForgotPassword) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, forgotFieldErrors(fields))
	}) {
		return
	}

	m.slice.Update(job, forgotStarted)
	if err := m.deps.API.Post(ctx, "/forgot-password", dto.ForgotPasswordRequest{Email: in.Email}, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Could not send reset link", func(msg string) {
			m.slice.Update(job, forgotDone(msg))
		})
		return
	}
	m.slice.Update(job, forgotDone(""))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Password reset link sent", nil)
}

func (m *Module) resetPassword(ctx context.Context, job *workflow.Job, in intent.ResetPassword) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, resetFieldErrors(fields))
	}) {
		return
	}

	m.slice.Update(job, resetStarted)
	req := dto.ResetPasswordRequest{Token: in.Token, NewPassword: in.Password}
	if err := m.deps.API.Post(ctx, "/reset-password", req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Password reset failed", func(msg string) {
			m.slice.Update(job, resetDone(msg))
		})
		return
	}
	m.slice.Update(job, resetDone(""))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Password updated", nil)
}
