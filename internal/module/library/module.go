package library

import (
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

const Name = "library"

type Module struct {
	deps  *module.Deps
	slice *store.Slice[State]
}

func New(deps *module.Deps) *Module {
	return &Module{deps: deps, slice: store.NewSlice(Name, State{Library: mapper.ToLibrary(nil)})}
}

func (m *Module) Name() string     { return Name }
func (m *Module) Node() store.Node { return m.slice }
func (m *Module) State() State     { return m.slice.Get() }

func (m *Module) Routes() []workflow.Route {
	return []workflow.Route{
		workflow.On(workflow.Latest, m.fetch),
		workflow.On(workflow.Every, m.upload),
		workflow.On(workflow.Every, m.remove),
		workflow.On(workflow.Every, m.move),
	}
}
