package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"rfp-console/internal/blob"
	"rfp-console/internal/entity"
	"rfp-console/internal/module"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/repository/memory"
	"rfp-console/internal/session"
	"rfp-console/internal/toast"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/require"
)

// Recorder is a Dispatcher that remembers every intent it was handed.
type Recorder struct {
	mu      sync.Mutex
	intents []workflow.Intent
}

func (r *Recorder) Dispatch(in workflow.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, in)
}

func (r *Recorder) Intents() []workflow.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]workflow.Intent(nil), r.intents...)
}

func (r *Recorder) Kinds() []workflow.Kind {
	var kinds []workflow.Kind
	for _, in := range r.Intents() {
		kinds = append(kinds, in.Kind())
	}
	return kinds
}

// Harness wires a module's dependencies against a fake backend and an
// in-memory KV store.
type Harness struct {
	Backend    *Backend
	API        *apiclient.Client
	KV         *memory.KVRepository
	Sessions   *session.Manager
	Toasts     *toast.Center
	Blobs      *blob.Registry
	Dispatched *Recorder
	Deps       *module.Deps
}

func New(t *testing.T) *Harness {
	t.Helper()

	log := logger.NewNopLogger()
	backend := NewBackend(t)
	kv := memory.NewKVRepository()
	sealer, err := session.NewSealer("test")
	require.NoError(t, err)
	sessions := session.NewManager(kv, sealer, nil, log)
	toasts := toast.NewCenter(time.Minute)
	blobs := blob.NewRegistry(time.Minute)
	recorder := &Recorder{}
	api := apiclient.New(backend.URL, 5*time.Second, sessions, true)

	return &Harness{
		Backend:    backend,
		API:        api,
		KV:         kv,
		Sessions:   sessions,
		Toasts:     toasts,
		Blobs:      blobs,
		Dispatched: recorder,
		Deps: &module.Deps{
			API:        api,
			Sessions:   sessions,
			KV:         kv,
			Blobs:      blobs,
			Runtime:    &workflow.Runtime{Sessions: sessions, Notifier: toasts, Logger: log},
			Dispatcher: recorder,
			Logger:     log,
			UploadTick: time.Millisecond,
			BlobTTL:    time.Minute,
		},
	}
}

// SignIn stores an authenticated session.
func (h *Harness) SignIn(t *testing.T, s entity.Session) {
	t.Helper()
	require.NoError(t, h.Sessions.Set(context.Background(), s))
}

// Start runs a coordinator over modules for the duration of the test.
func (h *Harness) Start(t *testing.T, modules ...workflow.Module) *workflow.Coordinator {
	t.Helper()
	c := workflow.NewCoordinator(store.NewTree(), logger.NewNopLogger())
	require.NoError(t, c.Register(modules...))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return c
}

// Messages returns active toast messages prefixed by level, newest first.
func (h *Harness) Messages() []string {
	var out []string
	for _, t := range h.Toasts.Active() {
		out = append(out, string(t.Level)+":"+t.Message)
	}
	return out
}
