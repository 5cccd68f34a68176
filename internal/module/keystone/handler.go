package keystone

import (
	"context"
	"time"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

func (m *Module) fetch(ctx context.Context, job *workflow.Job, in intent.FetchKeystoneFiles) {
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.DocumentResponse]
	if err := m.deps.API.Get(ctx, "/keystone", nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load keystone files", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	files := mapper.ToKeystoneFiles(resp)
	m.slice.Update(job, listLoaded(files))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", files)
}

func (m *Module) upload(ctx context.Context, job *workflow.Job, in intent.UploadKeystoneFile) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, uploadFieldErrors(fields))
	}) {
		return
	}
	m.slice.Update(job, uploadStarted)

	if err := m.deps.API.Upload(ctx, "/keystone/upload", nil, apiclient.File{Name: in.Filename, Content: in.Content}, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Upload failed", func(msg string) {
			m.slice.Update(job, uploadFailed(msg))
		})
		return
	}

	m.slice.Update(job, uploadSucceeded)
	m.deps.Dispatch(intent.FetchKeystoneFiles{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Keystone file uploaded", in.Filename)
}

func (m *Module) remove(ctx context.Context, job *workflow.Job, in intent.DeleteKeystoneFile) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, deleteStarted(key))

	if err := m.deps.API.Delete(ctx, apiclient.Path("keystone", in.ID), nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to delete keystone file", func(msg string) {
			m.slice.Update(job, deleteFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, fileRemoved(in.ID, key))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Keystone file deleted", in.ID)
}

func (m *Module) view(ctx context.Context, job *workflow.Job, in intent.ViewKeystoneFile) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, viewStarted)

	blob, err := m.deps.API.Download(ctx, apiclient.Path("keystone", in.ID, "download"))
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to open keystone file", func(msg string) {
			m.slice.Update(job, viewFailed(msg))
		})
		return
	}

	filename := blob.Filename
	if filename == "" {
		for _, f := range m.slice.Get().Files {
			if f.ID == in.ID {
				filename = f.Filename
			}
		}
	}
	view := entity.BlobView{
		OwnerID:     in.ID,
		URL:         m.deps.Blobs.Create(blob.Data, blob.ContentType, filename),
		Filename:    filename,
		ContentType: blob.ContentType,
	}

	previous := m.slice.Get().Viewer
	if !m.slice.Update(job, viewOpened(view)) {
		m.deps.Blobs.Revoke(view.URL)
		return
	}
	if previous != nil {
		m.deps.Blobs.Revoke(previous.URL)
	}
	if ttl := m.deps.BlobTTL; ttl > 0 {
		time.AfterFunc(ttl, func() {
			m.slice.Update(store.Always, viewerClosed(view.URL))
		})
	}
	m.deps.Runtime.Succeed(job, in.Callbacks, "", view)
}

func (m *Module) closeView(_ context.Context, job *workflow.Job, in intent.CloseKeystoneView) {
	if v := m.slice.Get().Viewer; v != nil {
		m.deps.Blobs.Revoke(v.URL)
	}
	m.slice.Update(job, viewerClosed(""))
	in.Succeed(nil)
}
