package documents

import (
	"rfp-console/internal/module"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

const Name = "documents"

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
		workflow.On(workflow.Latest, m.fetchDocuments),
		workflow.On(workflow.Latest, m.fetchDocument),
		workflow.On(workflow.Every, m.selectDocument),
		workflow.On(workflow.Every, m.uploadDocument),
		workflow.On(workflow.Every, m.deleteDocument),
		workflow.On(workflow.Every, m.runAnalysis),
		workflow.On(workflow.Latest, m.loadAnalysis),
		workflow.On(workflow.Every, m.generateDocument),
		workflow.On(workflow.Latest, m.viewDocument),
		workflow.On(workflow.Every, m.closeViewer),
	}
}
