package library

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

func (m *Module) fetch(ctx context.Context, job *workflow.Job, in intent.FetchLibrary) {
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.DocumentResponse]
	if err := m.deps.API.Get(ctx, "/library", nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load library", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	docs := mapper.ToDocuments(resp)
	m.slice.Update(job, listLoaded(docs))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", mapper.ToLibrary(docs))
}

func (m *Module) upload(ctx context.Context, job *workflow.Job, in intent.UploadLibraryAsset) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, uploadFieldErrors(fields))
	}) {
		return
	}
	m.slice.Update(job, uploadStarted)
	m.deps.Logger.Info(Name, "Uploading library asset", map[string]interface{}{"filename": in.Filename, "category": in.Category})

	fields := map[string]string{"category": in.Category}
	var resp dto.DocumentResponse
	if err := m.deps.API.Upload(ctx, "/library/upload", fields, apiclient.File{Name: in.Filename, Content: in.Content}, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Upload failed", func(msg string) {
			m.slice.Update(job, uploadFailed(msg))
		})
		return
	}

	m.slice.Update(job, uploadSucceeded)
	m.deps.Dispatch(intent.FetchLibrary{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Asset uploaded", mapper.ToDocument(resp))
}

func (m *Module) remove(ctx context.Context, job *workflow.Job, in intent.DeleteLibraryAsset) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, deleteStarted(key))

	if err := m.deps.API.Delete(ctx, apiclient.Path("library", in.ID), nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to delete asset", func(msg string) {
			m.slice.Update(job, deleteFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, assetRemoved(in.ID, key))
	m.deps.Dispatch(intent.FetchTrash{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Asset moved to recycle bin", in.ID)
}

func (m *Module) move(ctx context.Context, job *workflow.Job, in intent.MoveLibraryAsset) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, moveStarted(key))

	req := dto.MoveAssetRequest{Category: in.Category}
	if err := m.deps.API.Put(ctx, apiclient.Path("library", in.ID), req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to move asset", func(msg string) {
			m.slice.Update(job, moveFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, assetMoved(in.ID, entity.Category(in.Category), key))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Asset moved", in.ID)
}
