package users

import (
	"context"
	"errors"
	"net/url"

	"rfp-console/internal/dto"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/pkg/workflow"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrProfileNotFound = errors.New("profile not found")
)

func (m *Module) fetchUsers(ctx context.Context, job *workflow.Job, in intent.FetchUsers) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, listStarted)

	var query url.Values
	if in.Role != "" {
		query = url.Values{"role": {in.Role}}
	}
	var resp dto.FlexList[dto.UserDetailResponse]
	if err := m.deps.API.Get(ctx, "/users", query, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load users", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	users := mapper.ToTeamUsers(resp)
	m.slice.Update(job, listLoaded(in.Role, users))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", users)
}

func (m *Module) fetchProfile(ctx context.Context, job *workflow.Job, in intent.FetchProfile) {
	m.slice.Update(job, profileStarted)

	fail := func(err error) {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load profile", func(msg string) {
			m.slice.Update(job, profileFailed(msg))
		})
	}

	s, err := m.deps.Sessions.Get(ctx)
	if err != nil {
		fail(err)
		return
	}
	if !s.Authenticated() {
		fail(ErrNoSession)
		return
	}

	var resp dto.FlexList[dto.UserDetailResponse]
	if err := m.deps.API.Get(ctx, "/userdetails", nil, &resp); err != nil {
		fail(err)
		return
	}
	u, ok := mapper.FindByEmail(resp, s.Email)
	if !ok {
		fail(ErrProfileNotFound)
		return
	}

	profile := mapper.ToProfile(u)
	m.slice.Update(job, profileLoaded(profile))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", profile)
}

func (m *Module) updateProfile(ctx context.Context, job *workflow.Job, in intent.UpdateProfile) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, updateFieldErrors(fields))
	}) {
		return
	}
	m.slice.Update(job, updateStarted)

	req := dto.UpdateProfileRequest{Username: in.Username}
	if err := m.deps.API.Put(ctx, "/users/me", req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to update profile", func(msg string) {
			m.slice.Update(job, updateFailed(msg))
		})
		return
	}

	var userID int
	if s, err := m.deps.Sessions.Get(ctx); err == nil && s != nil {
		userID = s.UserID
	}
	m.slice.Update(job, usernameChanged(userID, in.Username))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Profile updated", in.Username)
}

func (m *Module) changePassword(ctx context.Context, job *workflow.Job, in intent.ChangePassword) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, passwordFieldErrors(fields))
	}) {
		return
	}
	m.slice.Update(job, passwordStarted)

	req := dto.ChangePasswordRequest{CurrentPassword: in.CurrentPassword, NewPassword: in.NewPassword}
	if err := m.deps.API.Post(ctx, "/users/me/password", req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to change password", func(msg string) {
			m.slice.Update(job, passwordFailed(msg))
		})
		return
	}

	m.slice.Update(job, passwordChanged)
	m.deps.Runtime.Succeed(job, in.Callbacks, "Password changed", nil)
}
