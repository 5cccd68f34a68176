package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"rfp-console/internal/pkg/logger"
	"rfp-console/internal/pkg/validation"
	"rfp-console/pkg/store"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const logModule = "Coordinator"

var ErrStopped = errors.New("coordinator stopped")

// Coordinator owns the state tree and the intent routing table.
// It holds no business logic.
type Coordinator struct {
	tree   *store.Tree
	logger logger.ILogger
	tracer trace.Tracer

	mu       sync.RWMutex
	routes   map[Kind]Route
	gens     map[Kind]*atomic.Uint64
	watchers []namedWatcher

	queue    chan Intent
	done     chan struct{}
	stopOnce sync.Once
	inflight sync.WaitGroup
	jobs     sync.WaitGroup
	running  atomic.Bool
}

type namedWatcher struct {
	name string
	w    Watcher
}

func NewCoordinator(tree *store.Tree, log logger.ILogger) *Coordinator {
	return &Coordinator{
		tree:   tree,
		logger: log,
		tracer: otel.Tracer("rfp-console/workflow"),
		routes: make(map[Kind]Route),
		gens:   make(map[Kind]*atomic.Uint64),
		queue:  make(chan Intent, 256),
		done:   make(chan struct{}),
	}
}

func (c *Coordinator) Tree() *store.Tree {
	return c.tree
}

// Register mounts each module's slice and adds its routes.
// A kind may be owned by one module only.
func (c *Coordinator) Register(modules ...Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range modules {
		if err := c.tree.Mount(m.Node()); err != nil {
			return fmt.Errorf("register %s: %w", m.Name(), err)
		}
		for _, r := range m.Routes() {
			if _, exists := c.routes[r.Kind]; exists {
				return fmt.Errorf("register %s: intent %q already routed", m.Name(), r.Kind)
			}
			c.routes[r.Kind] = r
			if r.Policy == Latest {
				c.gens[r.Kind] = &atomic.Uint64{}
			}
		}
		if w, ok := m.(Watcher); ok {
			c.watchers = append(c.watchers, namedWatcher{name: m.Name(), w: w})
		}
	}
	return nil
}

// Kinds lists every routed intent kind.
func (c *Coordinator) Kinds() []Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kinds := make([]Kind, 0, len(c.routes))
	for k := range c.routes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (c *Coordinator) Routed(kind Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.routes[kind]
	return ok
}

// Dispatch enqueues in for routing. It never runs the handler on the
// caller's goroutine. After Run returns, intents are dropped.
func (c *Coordinator) Dispatch(in Intent) {
	if in == nil {
		return
	}
	c.inflight.Add(1)
	select {
	case c.queue <- in:
	case <-c.done:
		c.inflight.Done()
	}
}

// Drain blocks until every dispatched intent, including intents dispatched
// by running handlers, has finished.
func (c *Coordinator) Drain() {
	c.inflight.Wait()
}

// Run routes intents until ctx is cancelled, then waits for running jobs.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("coordinator already running")
	}

	c.mu.RLock()
	watchers := append([]namedWatcher(nil), c.watchers...)
	c.mu.RUnlock()

	for _, nw := range watchers {
		c.jobs.Add(1)
		go func(nw namedWatcher) {
			defer c.jobs.Done()
			if err := nw.w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				c.logger.Error(logModule, "Watcher stopped", map[string]interface{}{"module": nw.name, "error": err.Error()})
			}
		}(nw)
	}

	c.logger.Info(logModule, "Coordinator started", map[string]interface{}{"routes": len(c.Kinds()), "watchers": len(watchers)})

	for {
		select {
		case <-ctx.Done():
			c.stop()
			c.jobs.Wait()
			c.logger.Info(logModule, "Coordinator stopped", nil)
			return nil
		case in := <-c.queue:
			c.route(ctx, in)
		}
	}
}

func (c *Coordinator) stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		// Release intents still sitting in the queue.
		for {
			select {
			case <-c.queue:
				c.inflight.Done()
			default:
				return
			}
		}
	})
}

func (c *Coordinator) route(ctx context.Context, in Intent) {
	c.mu.RLock()
	r, ok := c.routes[in.Kind()]
	gen := c.gens[in.Kind()]
	c.mu.RUnlock()

	if !ok {
		c.logger.Debug(logModule, "Ignoring unrouted intent", map[string]interface{}{"kind": string(in.Kind())})
		c.inflight.Done()
		return
	}

	job := &Job{ID: uuid.New(), Kind: r.Kind, Policy: r.Policy}
	if r.Policy == Latest {
		// An invalid intent runs untracked so the request in flight still
		// settles; its handler reports the validation failure.
		if err := validation.Struct(in); err != nil {
			c.logger.Debug(logModule, "Invalid intent does not supersede", map[string]interface{}{"kind": string(r.Kind)})
		} else {
			job.gen = gen.Add(1)
			job.current = gen
		}
	}

	c.jobs.Add(1)
	go func() {
		defer c.inflight.Done()
		defer c.jobs.Done()
		c.execute(ctx, r, job, in)
	}()
}

func (c *Coordinator) execute(ctx context.Context, r Route, job *Job, in Intent) {
	ctx, span := c.tracer.Start(ctx, string(r.Kind), trace.WithAttributes(
		attribute.String("workflow.job_id", job.ID.String()),
		attribute.String("workflow.policy", r.Policy.String()),
	))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("handler %s panicked: %v", r.Kind, rec)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Error(logModule, "Handler panicked", map[string]interface{}{"kind": string(r.Kind), "error": err.Error()})
			if job.Live() {
				HooksOf(in).Fail(err)
			}
		}
	}()

	r.Handle(ctx, job, in)
}
