package intent

import "rfp-console/pkg/workflow"

const (
	KindLoadTheme workflow.Kind = "preferences/load_theme"
	KindSetTheme  workflow.Kind = "preferences/set_theme"
)

type LoadTheme struct {
	workflow.Callbacks
}

func (LoadTheme) Kind() workflow.Kind { return KindLoadTheme }

type SetTheme struct {
	workflow.Callbacks
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func (SetTheme) Kind() workflow.Kind { return KindSetTheme }
