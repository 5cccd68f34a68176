package workflow

import (
	"context"
	"sync/atomic"

	"rfp-console/pkg/store"

	"github.com/google/uuid"
)

// Kind names one trigger intent type, e.g. "documents/fetch".
type Kind string

// Intent is a typed request to perform one named asynchronous operation.
type Intent interface {
	Kind() Kind
}

// Callbacks lets a caller hear about completion directly, beyond global state.
// Embed it in intent structs.
type Callbacks struct {
	OnSuccess func(result any) `json:"-"`
	OnError   func(err error)  `json:"-"`
}

func (c Callbacks) Hooks() Callbacks {
	return c
}

func (c Callbacks) Succeed(result any) {
	if c.OnSuccess != nil {
		c.OnSuccess(result)
	}
}

func (c Callbacks) Fail(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

type hooked interface {
	Hooks() Callbacks
}

// HooksOf returns the callbacks carried by in, if any.
func HooksOf(in Intent) Callbacks {
	if h, ok := in.(hooked); ok {
		return h.Hooks()
	}
	return Callbacks{}
}

// Policy decides how concurrent intents of the same kind interact.
type Policy int

const (
	// Every runs each intent independently.
	Every Policy = iota
	// Latest lets only the most recently dispatched intent of a kind write state.
	Latest
)

func (p Policy) String() string {
	if p == Latest {
		return "latest"
	}
	return "every"
}

// Job is one execution of a handler. It is the store.Guard handlers pass to
// Slice.Update so superseded Latest jobs cannot write.
type Job struct {
	ID     uuid.UUID
	Kind   Kind
	Policy Policy

	gen     uint64
	current *atomic.Uint64
}

var _ store.Guard = (*Job)(nil)

func (j *Job) Live() bool {
	if j == nil || j.current == nil {
		return true
	}
	return j.current.Load() == j.gen
}

// LocalJob returns an always-live job for calling handlers outside a Coordinator.
func LocalJob(kind Kind) *Job {
	return &Job{ID: uuid.New(), Kind: kind}
}

// Handler executes one intent.
type Handler func(ctx context.Context, job *Job, in Intent)

type Route struct {
	Kind   Kind
	Policy Policy
	Handle Handler
}

// On builds a Route for intent type T.
func On[T Intent](policy Policy, fn func(ctx context.Context, job *Job, in T)) Route {
	var zero T
	return Route{
		Kind:   zero.Kind(),
		Policy: policy,
		Handle: func(ctx context.Context, job *Job, in Intent) {
			typed, ok := in.(T)
			if !ok {
				return
			}
			fn(ctx, job, typed)
		},
	}
}

// Dispatcher accepts intents. Handlers use it to trigger dependent re-fetches.
type Dispatcher interface {
	Dispatch(in Intent)
}

// Module is one business capability: a state slice plus its handlers.
type Module interface {
	Name() string
	Node() store.Node
	Routes() []Route
}

// Watcher is implemented by modules that follow an external stream for the
// lifetime of the Coordinator.
type Watcher interface {
	Watch(ctx context.Context) error
}
