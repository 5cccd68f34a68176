package assignments

import (
	"context"

	"rfp-console/internal/dto"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

func (m *Module) fetchMine(ctx context.Context, job *workflow.Job, in intent.FetchMyAssignments) {
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.AssignmentSummaryResponse]
	if err := m.deps.API.Get(ctx, "/assignments", nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load assignments", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	summaries := mapper.ToAssignmentSummaries(resp)
	m.slice.Update(job, listLoaded(summaries))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", summaries)
}

func (m *Module) fetchDetail(ctx context.Context, job *workflow.Job, in intent.FetchAssignmentDetail) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, detailStarted)

	var resp dto.FlexList[dto.QuestionResponse]
	if err := m.deps.API.Get(ctx, apiclient.Path("assignments", in.FileID), nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load assignment", func(msg string) {
			m.slice.Update(job, detailFailed(msg))
		})
		return
	}

	questions := mapper.ToQuestions(resp, in.FileID)
	m.slice.Update(job, detailLoaded(in.FileID, questions))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", questions)
}

func (m *Module) submit(ctx context.Context, job *workflow.Job, in intent.SubmitAssignment) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.FileID)
	m.slice.Update(job, submitStarted(key))

	if err := m.deps.API.Post(ctx, apiclient.Path("assignments", in.FileID, "submit"), nil, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to submit assignment", func(msg string) {
			m.slice.Update(job, submitFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, submitted(in.FileID, key))
	m.deps.Dispatch(intent.FetchMyAssignments{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Assignment submitted", in.FileID)
}
