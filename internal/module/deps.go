package module

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"rfp-console/internal/apperror"
	"rfp-console/internal/blob"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/pkg/validation"
	"rfp-console/internal/repository/contract"
	"rfp-console/internal/session"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

// API is the subset of the HTTP client handlers use.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
	Upload(ctx context.Context, path string, fields map[string]string, file apiclient.File, out any) error
	Download(ctx context.Context, path string) (*apiclient.Blob, error)
	PostDownload(ctx context.Context, path string, body any) (*apiclient.Blob, error)
}

var _ API = (*apiclient.Client)(nil)

// Deps is what every workflow module is built from.
type Deps struct {
	API        API
	Sessions   session.Repository
	KV         contract.KVRepository
	Blobs      *blob.Registry
	Runtime    *workflow.Runtime
	Dispatcher workflow.Dispatcher
	Logger     logger.ILogger

	// UploadTick paces the simulated upload progress.
	UploadTick time.Duration
	// BlobTTL bounds how long a viewed binary stays reachable.
	BlobTTL time.Duration
}

// Validate checks in before any network call. On failure it reports the
// error through the runtime without a toast and hands the field map to
// onFields.
func (d *Deps) Validate(ctx context.Context, job *workflow.Job, module string, cb workflow.Callbacks, in any, onFields func(fields map[string]string)) bool {
	err := validation.Struct(in)
	if err == nil {
		return true
	}
	d.Runtime.Fail(ctx, job, module, cb, err, "", nil)
	if onFields != nil && job.Live() {
		onFields(apperror.FieldsOf(err))
	}
	return false
}

func (d *Deps) Dispatch(intents ...workflow.Intent) {
	if d.Dispatcher == nil {
		return
	}
	for _, in := range intents {
		d.Dispatcher.Dispatch(in)
	}
}

// Key joins ids into a per-item loading key, e.g. Key(5, 9) == "5-9".
func Key(ids ...int) string {
	key := ""
	for i, id := range ids {
		if i > 0 {
			key += "-"
		}
		key += strconv.Itoa(id)
	}
	return key
}
