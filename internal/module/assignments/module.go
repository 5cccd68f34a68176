package assignments

import (
	"rfp-console/internal/module"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

const Name = "assignments"

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
		workflow.On(workflow.Latest, m.fetchMine),
		workflow.On(workflow.Latest, m.fetchDetail),
		workflow.On(workflow.Every, m.submit),
	}
}
