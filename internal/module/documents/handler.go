package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/internal/repository/contract"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

const (
	progressStep    = 10
	progressCeiling = 90
)

func (m *Module) fetchDocuments(ctx context.Context, job *workflow.Job, in intent.FetchDocuments) {
	m.slice.Update(job, listStarted)

	var resp dto.FlexList[dto.DocumentResponse]
	if err := m.deps.API.Get(ctx, "/rfps", nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load documents", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	docs := mapper.ToDocuments(resp)
	m.slice.Update(job, listLoaded(docs))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", docs)
}

func (m *Module) fetchDocument(ctx context.Context, job *workflow.Job, in intent.FetchDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, detailStarted)

	var resp dto.DocumentResponse
	if err := m.deps.API.Get(ctx, apiclient.Path("rfps", in.ID), nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load document", func(msg string) {
			m.slice.Update(job, detailFailed(msg))
		})
		return
	}

	doc := mapper.ToDocument(resp)
	if doc.ID == 0 {
		doc.ID = in.ID
	}
	m.slice.Update(job, detailLoaded(doc))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", doc)
}

func (m *Module) selectDocument(_ context.Context, job *workflow.Job, in intent.SelectDocument) {
	m.slice.Update(job, selected(in.ID))
	in.Succeed(in.ID)
}

func (m *Module) uploadDocument(ctx context.Context, job *workflow.Job, in intent.UploadDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, uploadFieldErrors(fields))
	}) {
		return
	}

	key := job.ID.String()
	m.slice.Update(job, uploadStarted(key))
	m.deps.Logger.Info(Name, "Uploading document", map[string]interface{}{"filename": in.Filename, "project": in.ProjectName})

	stop := m.simulateProgress(job, key)
	fields := map[string]string{"project_name": in.ProjectName, "category": in.Category}
	var resp dto.DocumentResponse
	err := m.deps.API.Upload(ctx, "/upload", fields, apiclient.File{Name: in.Filename, Content: in.Content}, &resp)
	stop()

	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Upload failed", func(msg string) {
			m.slice.Update(job, uploadFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, uploadSucceeded(key))
	m.deps.Dispatch(intent.FetchDocuments{}, intent.FetchLibrary{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Document uploaded", mapper.ToDocument(resp))
}

// simulateProgress ticks the upload bar toward its ceiling until stop is called.
func (m *Module) simulateProgress(job *workflow.Job, key string) (stop func()) {
	tick := m.deps.UploadTick
	if tick <= 0 {
		tick = 300 * time.Millisecond
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				m.slice.Update(job, uploadTicked(key, progressStep, progressCeiling))
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

func (m *Module) deleteDocument(ctx context.Context, job *workflow.Job, in intent.DeleteDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, deleteStarted(key))

	if err := m.deps.API.Delete(ctx, apiclient.Path("rfps", in.ID), nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to delete document", func(msg string) {
			m.slice.Update(job, deleteFailed(key, msg))
		})
		return
	}

	m.slice.Update(job, documentRemoved(in.ID, key))
	m.deps.Dispatch(intent.FetchTrash{})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Document moved to recycle bin", in.ID)
}

func (m *Module) runAnalysis(ctx context.Context, job *workflow.Job, in intent.RunAnalysis) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, analysisRunStarted(key))
	m.deps.Logger.Info(Name, "Running AI analysis", map[string]interface{}{"document_id": in.ID})

	result, err := m.requestAnalysis(ctx, in.ID, true)
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "AI analysis failed", func(msg string) {
			m.slice.Update(job, analysisRunFinished(key, nil, msg))
		})
		return
	}

	m.slice.Update(job, analysisRunFinished(key, &result, ""))
	m.deps.Runtime.Succeed(job, in.Callbacks, "AI analysis complete", result)
}

func (m *Module) loadAnalysis(ctx context.Context, job *workflow.Job, in intent.LoadAnalysis) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, analysisLoadStarted)

	result, found, err := m.cachedAnalysis(ctx, in.ID)
	if err != nil {
		m.deps.Logger.Warn(Name, "Ignoring unreadable cached analysis", map[string]interface{}{"document_id": in.ID, "error": err.Error()})
	}
	if !found {
		result, err = m.requestAnalysis(ctx, in.ID, false)
		if err != nil {
			m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load analysis", func(msg string) {
				m.slice.Update(job, analysisLoadFailed(msg))
			})
			return
		}
	}

	m.slice.Update(job, analysisLoaded(result))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", result)
}

// requestAnalysis runs (POST) or reads (GET) the analysis and caches it.
func (m *Module) requestAnalysis(ctx context.Context, id int, run bool) (entity.AnalysisResult, error) {
	path := apiclient.Path("rfps", id, "ai-analysis")
	var raw json.RawMessage
	var err error
	if run {
		err = m.deps.API.Post(ctx, path, nil, &raw)
	} else {
		err = m.deps.API.Get(ctx, path, nil, &raw)
	}
	if err != nil {
		return entity.AnalysisResult{}, err
	}

	var resp dto.AnalysisResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return entity.AnalysisResult{}, fmt.Errorf("decode analysis: %w", err)
		}
	}
	result := mapper.ToAnalysis(id, resp, raw)

	if encoded, err := json.Marshal(result); err == nil {
		if err := m.deps.KV.Set(ctx, contract.AnalysisKey(id), encoded); err != nil {
			m.deps.Logger.Warn(Name, "Failed to cache analysis", map[string]interface{}{"document_id": id, "error": err.Error()})
		}
	}
	return result, nil
}

func (m *Module) cachedAnalysis(ctx context.Context, id int) (entity.AnalysisResult, bool, error) {
	raw, found, err := m.deps.KV.Get(ctx, contract.AnalysisKey(id))
	if err != nil || !found {
		return entity.AnalysisResult{}, false, err
	}
	var result entity.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return entity.AnalysisResult{}, false, err
	}
	return result, true, nil
}

func (m *Module) generateDocument(ctx context.Context, job *workflow.Job, in intent.GenerateDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.ID)
	m.slice.Update(job, generateStarted(key))

	blob, err := m.deps.API.PostDownload(ctx, apiclient.Path("rfps", in.ID, "generate-doc"), nil)
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to generate document", func(msg string) {
			m.slice.Update(job, generateFinished(key, in.ID, "", msg))
		})
		return
	}

	filename := blob.Filename
	if filename == "" {
		filename = fmt.Sprintf("rfp-%d-response.docx", in.ID)
	}
	url := m.deps.Blobs.Create(blob.Data, blob.ContentType, filename)
	m.slice.Update(job, generateFinished(key, in.ID, url, ""))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Document generated", url)
}

func (m *Module) viewDocument(ctx context.Context, job *workflow.Job, in intent.ViewDocument) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, viewStarted)

	blob, err := m.deps.API.Download(ctx, apiclient.Path("rfps", in.ID, "download"))
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to open document", func(msg string) {
			m.slice.Update(job, viewFailed(msg))
		})
		return
	}

	view := entity.BlobView{
		OwnerID:     in.ID,
		URL:         m.deps.Blobs.Create(blob.Data, blob.ContentType, blob.Filename),
		Filename:    blob.Filename,
		ContentType: blob.ContentType,
	}

	previous := m.slice.Get().Viewer
	if !m.slice.Update(job, viewOpened(view)) {
		// Superseded by a newer view request.
		m.deps.Blobs.Revoke(view.URL)
		return
	}
	if previous != nil {
		m.deps.Blobs.Revoke(previous.URL)
	}
	m.expireViewer(view.URL)
	m.deps.Runtime.Succeed(job, in.Callbacks, "", view)
}

// expireViewer drops the viewer once its object URL has been released.
func (m *Module) expireViewer(url string) {
	if m.deps.BlobTTL <= 0 {
		return
	}
	time.AfterFunc(m.deps.BlobTTL, func() {
		m.slice.Update(store.Always, viewerClosed(url))
	})
}

func (m *Module) closeViewer(_ context.Context, job *workflow.Job, in intent.CloseViewer) {
	if v := m.slice.Get().Viewer; v != nil {
		m.deps.Blobs.Revoke(v.URL)
	}
	m.slice.Update(job, viewerClosed(""))
	in.Succeed(nil)
}
