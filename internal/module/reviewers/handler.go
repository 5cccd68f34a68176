package reviewers

import (
	"context"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

func (m *Module) fetchAssigned(ctx context.Context, job *workflow.Job, in intent.FetchAssignedReviewers) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.AssignedReviewersResponse]
	if err := m.deps.API.Get(ctx, apiclient.Path("rfps", in.FileID, "assigned-reviewers"), nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load assigned reviewers", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	assignments := mapper.ToAssignments(resp, in.FileID)
	m.slice.Update(job, listLoaded(in.FileID, assignments))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", assignments)
}

func (m *Module) setDraft(_ context.Context, job *workflow.Job, in intent.SetDraft) {
	m.slice.Update(job, draftSet(in.QIdx, in.Users))
	in.Succeed(in.Users)
}

// assign records the reviewers, then notifies them. The notification is
// sent only once the assignment call has succeeded.
func (m *Module) assign(ctx context.Context, job *workflow.Job, in intent.AssignReviewer) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QIdx)
	m.slice.Update(job, assignStarted(in.QIdx, in.QuestionID, key))

	userIDs := make([]int, 0, len(in.Users))
	for _, u := range in.Users {
		userIDs = append(userIDs, u.UserID)
	}
	questionIDs := []int{in.QuestionID}

	req := dto.AssignRequest{QuesIDs: questionIDs, UserIDs: userIDs, FileID: in.FileID}
	if err := m.deps.API.Post(ctx, "/assign", req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to assign reviewers", func(msg string) {
			m.slice.Update(job, assignFinished(key, msg))
		})
		return
	}

	m.slice.Update(job, assigned(in.QIdx, in.QuestionID, in.FileID, in.Users))
	m.deps.Logger.Info(Name, "Reviewers assigned", map[string]interface{}{"question_id": in.QuestionID, "user_ids": userIDs})

	refetch := func() {
		m.deps.Dispatch(intent.FetchAssignedReviewers{FileID: in.FileID}, intent.FetchFilterData{RfpID: in.FileID})
	}

	notify := dto.NotificationRequest{UserIDs: userIDs, QuesIDs: questionIDs}
	if err := m.deps.API.Post(ctx, "/send-notification", notify, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Reviewers assigned but notification failed", func(msg string) {
			m.slice.Update(job, assignFinished(key, msg))
		})
		refetch()
		return
	}

	m.slice.Update(job, assignFinished(key, ""))
	refetch()
	m.deps.Runtime.Succeed(job, in.Callbacks, "Reviewers assigned", entity.AssignedLabel(in.Users))
}

func (m *Module) unassign(ctx context.Context, job *workflow.Job, in intent.UnassignReviewer) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QuestionID, in.UserID)
	m.slice.Update(job, unassignStarted(in.QIdx, in.QuestionID, key))

	req := dto.UnassignRequest{QuesID: in.QuestionID, UserID: in.UserID}
	if err := m.deps.API.Post(ctx, "/unassign", req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to unassign reviewer", func(msg string) {
			m.slice.Update(job, unassignFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, unassigned(in.QuestionID, in.UserID, key))
	m.deps.Dispatch(intent.FetchFilterData{RfpID: in.FileID})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Reviewer unassigned", in.UserID)
}
