package repl

import tea "github.com/charmbracelet/bubbletea"

// stash is a saved input line and cursor.
type stash struct {
	text   string
	cursor int
}

func (m model) stashInput() stash {
	return stash{text: m.input.Value(), cursor: m.input.Position()}
}

// load replaces the input with s.
func (m *model) load(s stash) {
	m.input.SetValue(s.text)
	m.input.SetCursor(s.cursor)
	refreshMatches(m, false)
}

// historyScope selects the history entries visited by [model.step].
type historyScope int

const (
	scopeAll  historyScope = iota // every entry, switching mode to match
	scopeMode                     // entries of the current mode
	scopeCtrl                     // control entries, restoring the origin past either end
)

// step moves dir entries through history within scope.
func (m model) step(dir int, scope historyScope) (model, tea.Cmd) {
	keep := func(HistoryEntry) bool { return true }

	switch scope {
	case scopeMode:
		mode := m.mode
		keep = func(e HistoryEntry) bool { return e.Mode == mode }

	case scopeCtrl:
		if !m.altNavActive {
			m.altNavActive = true
			m.altOriginMode = m.mode
			m.altOrigin = m.stashInput()
			m = m.switchToMode(modeCtrl)
		}

		keep = func(e HistoryEntry) bool { return e.Mode == modeCtrl }

	case scopeAll:
	}

	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		e, err := m.history.Entry(i)
		if err != nil || !keep(e) {
			continue
		}

		if e.Mode != m.mode {
			m = m.switchToMode(e.Mode)
		}

		m.historyIdx = i
		m.load(stash{text: e.Line, cursor: len(e.Line)})

		return m, nil
	}

	switch {
	case scope == scopeCtrl:
		m.altNavActive = false

		if m.altOriginMode != m.mode {
			m = m.switchToMode(m.altOriginMode)
		}

		m.historyIdx = m.history.Len()
		m.load(m.altOrigin)

	case dir > 0 && m.historyIdx < m.history.Len():
		m.historyIdx = m.history.Len()
		m.load(stash{})
	}

	return m, nil
}

func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl), nil
	}

	return m.switchToMode(modeEval), nil
}

// switchToMode saves the draft of the current mode and restores that of mode.
func (m model) switchToMode(mode inputMode) model {
	m.drafts[m.mode] = m.stashInput()
	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.load(m.drafts[mode])

	return m
}
