package auth

import (
	"context"

	"rfp-console/internal/module"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

const Name = "auth"

type Module struct {
	deps  *module.Deps
	slice *store.Slice[State]
}

func New(deps *module.Deps) *Module {
	return &Module{deps: deps, slice: store.NewSlice(Name, State{})}
}

func (m *Module) Name() string     { return Name }
func (m *Module) Node() store.Node { return m.slice }
func (m *Module) State() State     { return m.slice.Get() }

func (m *Module) Routes() []workflow.Route {
	return []workflow.Route{
		workflow.On(workflow.Latest, m.login),
		workflow.On(workflow.Every, m.logout),
		workflow.On(workflow.Latest, m.restore),
		workflow.On(workflow.Every, m.forgotPassword),
		workflow.On(workflow.Every, m.resetPassword),
	}
}

// Watch mirrors every session change into the slice, whichever module or
// process caused it.
func (m *Module) Watch(ctx context.Context) error {
	changes, err := m.deps.Sessions.Subscribe(ctx)
	if err != nil {
		return err
	}
	for c := range changes {
		s, err := m.deps.Sessions.Get(ctx)
		if err != nil {
			m.deps.Logger.Error(Name, "Failed to reload session", map[string]interface{}{"error": err.Error(), "reason": c.Reason})
			continue
		}
		m.slice.Update(store.Always, sessionReplaced(s.Public()))
	}
	return ctx.Err()
}
