package questions

import (
	"time"

	"rfp-console/internal/module"
	"rfp-console/pkg/store"
	"rfp-console/pkg/workflow"
)

const Name = "questions"

type Module struct {
	deps  *module.Deps
	slice *store.Slice[State]
	now   func() time.Time
}

func New(deps *module.Deps) *Module {
	return &Module{deps: deps, slice: store.NewSlice(Name, State{}), now: time.Now}
}

func (m *Module) Name() string     { return Name }
func (m *Module) Node() store.Node { return m.slice }
func (m *Module) State() State     { return m.slice.Get() }

func (m *Module) Routes() []workflow.Route {
	return []workflow.Route{
		workflow.On(workflow.Latest, m.fetchQuestions),
		workflow.On(workflow.Latest, m.fetchAssigned),
		workflow.On(workflow.Latest, m.fetchFilterData),
		workflow.On(workflow.Latest, m.fetchSubmitted),
		workflow.On(workflow.Latest, m.checkSubmit),
		workflow.On(workflow.Latest, m.fetchFilterQuestions),
		workflow.On(workflow.Every, m.addQuestion),
		workflow.On(workflow.Every, m.deleteQuestion),
		workflow.On(workflow.Every, m.reassignQuestion),
		workflow.On(workflow.Every, m.editAnswer),
		workflow.On(workflow.Every, m.submitAnswer),
		workflow.On(workflow.Every, m.generateAnswer),
	}
}
