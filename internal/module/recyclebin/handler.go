package recyclebin

import (
	"context"

	"rfp-console/internal/dto"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

func (m *Module) fetch(ctx context.Context, job *workflow.Job, in intent.FetchTrash) {
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.DocumentResponse]
	if err := m.deps.API.Get(ctx, "/recycle-bin", nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load recycle bin", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	entries := mapper.ToTrashEntries(resp)
	m.slice.Update(job, listLoaded(entries))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", entries)
}

func (m *Module) restore(ctx context.Context, job *workflow.Job, in intent.RestoreDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, restoreStarted(key))

	if err := m.deps.API.Post(ctx, apiclient.Path("recycle-bin", in.ID, "restore"), nil, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to restore document", func(msg string) {
			m.slice.Update(job, restoreFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, restored(in.ID, key))
	m.deps.Dispatch(intent.FetchDocuments{}, intent.FetchLibrary{}, intent.FetchTrash{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Document restored", in.ID)
}

func (m *Module) purge(ctx context.Context, job *workflow.Job, in intent.PurgeDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, purgeStarted(key))

	if err := m.deps.API.Delete(ctx, apiclient.Path("recycle-bin", in.ID), nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to delete document", func(msg string) {
			m.slice.Update(job, purgeFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, purged(in.ID, key))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Document permanently deleted", in.ID)
}

func (m *Module) empty(ctx context.Context, job *workflow.Job, in intent.EmptyTrash) {
	m.slice.Update(job, emptyStarted)

	if err := m.deps.API.Delete(ctx, "/recycle-bin", nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to empty recycle bin", func(msg string) {
			m.slice.Update(job, emptyFailed(msg))
		})
		return
	}

	m.slice.Update(job, emptied)
	m.deps.Runtime.Succeed(job, in.Callbacks, "Recycle bin emptied", nil)
}
