package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rfp-console/internal/apperror"
	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/pkg/validation"
	"rfp-console/internal/session"
	"rfp-console/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchList struct {
	Callbacks
	Tag     string
	Page    int `validate:"gte=0"`
	Release <-chan struct{}
	Started chan<- struct{}
}

func (fetchList) Kind() Kind { return "test/fetch" }

type removeItem struct {
	Callbacks
	ID int `validate:"gte=0"`
}

func (removeItem) Kind() Kind { return "test/remove" }

type explode struct{ Callbacks }

func (explode) Kind() Kind { return "test/explode" }

type unrouted struct{}

func (unrouted) Kind() Kind { return "test/unrouted" }

type listState struct {
	Items  []string
	Status store.Status
}

type listModule struct {
	slice *store.Slice[listState]
}

func (m *listModule) Name() string     { return "list" }
func (m *listModule) Node() store.Node { return m.slice }

func (m *listModule) Routes() []Route {
	return []Route{
		On(Latest, func(ctx context.Context, job *Job, in fetchList) {
			if err := validation.Struct(in); err != nil {
				in.Fail(err)
				return
			}
			m.slice.Update(job, func(s listState) listState { s.Status = s.Status.Start(); return s })
			if in.Started != nil {
				in.Started <- struct{}{}
			}
			if in.Release != nil {
				<-in.Release
			}
			m.slice.Update(job, func(s listState) listState {
				s.Items = []string{in.Tag}
				s.Status = s.Status.Succeed()
				return s
			})
		}),
		On(Every, func(ctx context.Context, job *Job, in removeItem) {
			if err := validation.Struct(in); err != nil {
				in.Fail(err)
				return
			}
			in.Succeed(in.ID)
		}),
		On(Every, func(ctx context.Context, job *Job, in explode) {
			panic("kaboom")
		}),
	}
}

func startCoordinator(t *testing.T, modules ...Module) *Coordinator {
	t.Helper()
	c := NewCoordinator(store.NewTree(), logger.NewNopLogger())
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

func TestLatestWinsDropsStaleResponse(t *testing.T) {
	m := &listModule{slice: store.NewSlice("list", listState{})}
	c := startCoordinator(t, m)

	releaseFirst := make(chan struct{})
	started := make(chan struct{}, 1)

	c.Dispatch(fetchList{Tag: "T1", Release: releaseFirst, Started: started})
	<-started

	c.Dispatch(fetchList{Tag: "T2"})
	require.Eventually(t, func() bool {
		return len(m.slice.Get().Items) == 1 && m.slice.Get().Items[0] == "T2"
	}, time.Second, 5*time.Millisecond)

	close(releaseFirst)
	c.Drain()

	assert.Equal(t, []string{"T2"}, m.slice.Get().Items)
	assert.True(t, m.slice.Get().Status.Success)
}

func TestInvalidIntentKeepsRequestInFlight(t *testing.T) {
	tests := []struct {
		name    string
		invalid func(onError func(error)) Intent
	}{
		{name: "latest", invalid: func(onError func(error)) Intent {
			return fetchList{Tag: "bad", Page: -1, Callbacks: Callbacks{OnError: onError}}
		}},
		{name: "every", invalid: func(onError func(error)) Intent {
			return removeItem{ID: -1, Callbacks: Callbacks{OnError: onError}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &listModule{slice: store.NewSlice("list", listState{})}
			c := startCoordinator(t, m)

			release := make(chan struct{})
			started := make(chan struct{}, 1)
			c.Dispatch(fetchList{Tag: "T1", Release: release, Started: started})
			<-started

			errs := make(chan error, 1)
			c.Dispatch(tt.invalid(func(err error) { errs <- err }))
			select {
			case err := <-errs:
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			case <-time.After(time.Second):
				t.Fatal("expected the invalid intent to fail")
			}

			close(release)
			c.Drain()

			s := m.slice.Get()
			assert.Equal(t, []string{"T1"}, s.Items)
			assert.False(t, s.Status.Loading)
			assert.True(t, s.Status.Success)
		})
	}
}

func TestEveryRunsIndependently(t *testing.T) {
	m := &listModule{slice: store.NewSlice("list", listState{})}
	c := startCoordinator(t, m)

	var mu sync.Mutex
	seen := map[int]bool{}
	for i := 1; i <= 10; i++ {
		c.Dispatch(removeItem{ID: i, Callbacks: Callbacks{OnSuccess: func(v any) {
			mu.Lock()
			seen[v.(int)] = true
			mu.Unlock()
		}}})
	}
	c.Drain()

	assert.Len(t, seen, 10)
}

func TestUnroutedIntentIsIgnored(t *testing.T) {
	m := &listModule{slice: store.NewSlice("list", listState{})}
	c := startCoordinator(t, m)

	c.Dispatch(unrouted{})
	c.Dispatch(nil)
	c.Drain()

	assert.False(t, c.Routed("test/unrouted"))
	assert.True(t, c.Routed("test/fetch"))
}

func TestPanicSurfacesThroughOnError(t *testing.T) {
	m := &listModule{slice: store.NewSlice("list", listState{})}
	c := startCoordinator(t, m)

	errs := make(chan error, 1)
	c.Dispatch(explode{Callbacks: Callbacks{OnError: func(err error) { errs <- err }}})
	c.Drain()

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "kaboom")
	default:
		t.Fatal("expected OnError to be called")
	}
}

func TestRegisterRejectsDuplicateKinds(t *testing.T) {
	c := NewCoordinator(store.NewTree(), logger.NewNopLogger())
	require.NoError(t, c.Register(&listModule{slice: store.NewSlice("list", listState{})}))

	err := c.Register(&listModule{slice: store.NewSlice("list2", listState{})})
	assert.Error(t, err)
	assert.Len(t, c.Kinds(), 3)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) record(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, level+":"+msg)
}

func (n *recordingNotifier) Success(msg string) { n.record("success", msg) }
func (n *recordingNotifier) Warning(msg string) { n.record("warning", msg) }
func (n *recordingNotifier) Error(msg string)   { n.record("error", msg) }

type recordingSessions struct{ reasons []string }

func (s *recordingSessions) ClearWithReason(_ context.Context, reason string) error {
	s.reasons = append(s.reasons, reason)
	return nil
}

func TestRuntimeFail(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMsg     string
		wantToast   []string
		wantCleared []string
	}{
		{
			name:      "server detail",
			err:       apperror.FromResponse(404, []byte(`{"detail":"Document not found"}`)),
			wantMsg:   "Document not found",
			wantToast: []string{"error:Document not found"},
		},
		{
			name:        "unauthorized clears session",
			err:         apperror.FromResponse(401, nil),
			wantMsg:     apperror.MsgInvalidCredentials,
			wantToast:   []string{"error:" + apperror.MsgInvalidCredentials},
			wantCleared: []string{session.ReasonUnauthorized},
		},
		{
			name:      "duplicate is a warning",
			err:       apperror.FromResponse(apperror.StatusDuplicate, []byte(`{"message":{"message":"Question already exists"}}`)),
			wantMsg:   "Question already exists",
			wantToast: []string{"warning:Question already exists"},
		},
		{
			name:    "validation is silent",
			err:     apperror.Validation(map[string]string{"email": "email is required"}),
			wantMsg: "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			sessions := &recordingSessions{}
			rt := &Runtime{Sessions: sessions, Notifier: notifier, Logger: logger.NewNopLogger()}

			var applied string
			var gotErr error
			cb := Callbacks{OnError: func(err error) { gotErr = err }}

			msg := rt.Fail(context.Background(), LocalJob("test/x"), "Test", cb, tt.err, "Failed", func(m string) { applied = m })

			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantMsg, applied)
			assert.Equal(t, tt.wantToast, notifier.calls)
			assert.Equal(t, tt.wantCleared, sessions.reasons)
			assert.True(t, errors.Is(gotErr, tt.err))
		})
	}
}
