package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/repository/contract"
	"rfp-console/pkg/workflow"
)

func (m *Module) loadTheme(ctx context.Context, job *workflow.Job, in intent.LoadTheme) {
	m.slice.Update(job, loadStarted)

	raw, found, err := m.deps.KV.Get(ctx, contract.KeyTheme)
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load theme", func(msg string) {
			m.slice.Update(job, loadFailed(msg))
		})
		return
	}

	theme := entity.ThemeLight
	if found {
		var stored entity.Theme
		if err := json.Unmarshal(raw, &stored); err != nil || (stored != entity.ThemeLight && stored != entity.ThemeDark) {
			m.deps.Logger.Warn(Name, "Ignoring unreadable stored theme", map[string]interface{}{"raw": string(raw)})
		} else {
			theme = stored
		}
	}

	m.slice.Update(job, themeLoaded(theme))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", theme)
}

func (m *Module) setTheme(ctx context.Context, job *workflow.Job, in intent.SetTheme) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, saveStarted)

	theme := entity.Theme(in.Theme)
	fail := func(err error) {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to save theme", func(msg string) {
			m.slice.Update(job, saveFailed(msg))
		})
	}

	encoded, err := json.Marshal(theme)
	if err != nil {
		fail(fmt.Errorf("encode theme: %w", err))
		return
	}
	if err := m.deps.KV.Set(ctx, contract.KeyTheme, encoded); err != nil {
		fail(err)
		return
	}

	m.slice.Update(job, themeSaved(theme))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", theme)
}
