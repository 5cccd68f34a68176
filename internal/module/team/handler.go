package team

import (
	"context"

	"rfp-console/internal/dto"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

func (m *Module) fetch(ctx context.Context, job *workflow.Job, in intent.FetchTeam) {
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.UserDetailResponse]
	if err := m.deps.API.Get(ctx, "/team", nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load team", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	members := mapper.ToTeamUsers(resp)
	m.slice.Update(job, listLoaded(members))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", members)
}

func (m *Module) add(ctx context.Context, job *workflow.Job, in intent.AddMember) {
	req := dto.TeamMemberRequest{Username: in.Username, Email: in.Email, Role: in.Role, Password: in.Password}
	m.save(ctx, job, in.Callbacks, in, func() error {
		return m.deps.API.Post(ctx, "/team", req, nil)
	}, "Failed to add team member", "Team member added")
}

func (m *Module) update(ctx context.Context, job *workflow.Job, in intent.UpdateMember) {
	req := dto.TeamMemberRequest{Username: in.Username, Email: in.Email, Role: in.Role}
	m.save(ctx, job, in.Callbacks, in, func() error {
		return m.deps.API.Put(ctx, apiclient.Path("team", in.UserID), req, nil)
	}, "Failed to update team member", "Team member updated")
}

// save runs one member create/update and refetches the team on success.
func (m *Module) save(ctx context.Context, job *workflow.Job, cb workflow.Callbacks, in any, call func() error, fallback, toast string) {
	if !m.deps.Validate(ctx, job, Name, cb, in, func(fields map[string]string) {
		m.slice.Update(job, saveFieldErrors(fields))
	}) {
		return
	}
	m.slice.Update(job, saveStarted)

	if err := call(); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, cb, err, fallback, func(msg string) {
			m.slice.Update(job, saveFailed(msg))
		})
		return
	}

	m.slice.Update(job, saveSucceeded)
	m.deps.Dispatch(intent.FetchTeam{})
	m.deps.Runtime.Succeed(job, cb, toast, nil)
}

func (m *Module) remove(ctx context.Context, job *workflow.Job, in intent.DeleteMember) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.UserID)
	m.slice.Update(job, flagStarted(deleting, key))

	if err := m.deps.API.Delete(ctx, apiclient.Path("team", in.UserID), nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to remove team member", func(msg string) {
			m.slice.Update(job, flagFinished(deleting, key, msg))
		})
		return
	}

	m.slice.Update(job, memberRemoved(in.UserID, key))
	m.deps.Dispatch(intent.FetchTeam{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Team member removed", in.UserID)
}

func (m *Module) resendVerification(ctx context.Context, job *workflow.Job, in intent.ResendVerification) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.UserID)
	m.slice.Update(job, flagStarted(resending, key))

	if err := m.deps.API.Post(ctx, apiclient.Path("team", in.UserID, "resend-verification"), nil, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to resend verification", func(msg string) {
			m.slice.Update(job, flagFinished(resending, key, msg))
		})
		return
	}

	m.slice.Update(job, flagFinished(resending, key, ""))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Verification email sent", in.UserID)
}
