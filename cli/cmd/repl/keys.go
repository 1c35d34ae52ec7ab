package repl

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"

	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Submit       key.Binding
	Next         key.Binding
	Prev         key.Binding
	Escape       key.Binding
	Older        key.Binding
	Newer        key.Binding
	OlderInMode  key.Binding
	NewerInMode  key.Binding
	OlderCommand key.Binding
	NewerCommand key.Binding
	Interrupt    key.Binding
	EOF          key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate, or accept the selected candidate")),
	Next: key.NewBinding(key.WithKeys("tab"),
		key.WithHelp("tab", "next candidate")),
	Prev: key.NewBinding(key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous candidate")),
	Escape: key.NewBinding(key.WithKeys("esc"),
		key.WithHelp("esc", "cancel completion, or toggle eval/command mode")),
	Older: key.NewBinding(key.WithKeys("up"),
		key.WithHelp("up", "older history entry")),
	Newer: key.NewBinding(key.WithKeys("down"),
		key.WithHelp("down", "newer history entry")),
	OlderInMode: key.NewBinding(key.WithKeys("shift+up"),
		key.WithHelp("shift+up", "older entry of the current mode")),
	NewerInMode: key.NewBinding(key.WithKeys("shift+down"),
		key.WithHelp("shift+down", "newer entry of the current mode")),
	OlderCommand: key.NewBinding(key.WithKeys("alt+up"),
		key.WithHelp("alt+up", "older command")),
	NewerCommand: key.NewBinding(key.WithKeys("alt+down"),
		key.WithHelp("alt+down", "newer command")),
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "clear input, or exit when empty")),
	EOF: key.NewBinding(key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "exit when input is empty")),
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Submit, k.Next, k.Prev, k.Escape,
		k.Older, k.Newer, k.OlderInMode, k.NewerInMode,
		k.OlderCommand, k.NewerCommand, k.Interrupt, k.EOF,
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch {
	case key.Matches(msg, keys.Interrupt):
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.tabActive = false
		m.altNavActive = false
		m.historyIdx = m.history.Len()
		m.load(stash{})

		return m, nil

	case key.Matches(msg, keys.EOF):
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case key.Matches(msg, keys.Submit):
		m.altNavActive = false

		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			refreshMatches(&m, true)

			return m, nil
		}

		return m.executeInput()

	case key.Matches(msg, keys.Next):
		return m.cycle(1)

	case key.Matches(msg, keys.Prev):
		return m.cycle(-1)

	case key.Matches(msg, keys.Older):
		return m.step(-1, scopeAll)

	case key.Matches(msg, keys.Newer):
		return m.step(1, scopeAll)

	case key.Matches(msg, keys.OlderInMode):
		return m.step(-1, scopeMode)

	case key.Matches(msg, keys.NewerInMode):
		return m.step(1, scopeMode)

	case key.Matches(msg, keys.OlderCommand):
		return m.step(-1, scopeCtrl)

	case key.Matches(msg, keys.NewerCommand):
		return m.step(1, scopeCtrl)

	case key.Matches(msg, keys.Escape):
		if m.tabActive {
			m.tabActive = false
			m.load(m.preTab)

			return m, nil
		}

		m.altNavActive = false

		return m.toggleMode()
	}

	// Plain typing keeps a completion cycle alive until a space; editing and
	// cursor keys end it without auto-completing.
	typing := msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
	if !typing || msg.String() == " " {
		m.tabActive = false
	}

	if !typing {
		m.altNavActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, typing)

	return m, cmd
}

// cycle moves the selected candidate by dir and writes it into the input.
// A sole candidate is accepted outright.
func (m model) cycle(dir int) (model, tea.Cmd) {
	n := len(m.matches)

	switch {
	case n == 0:
		return m, nil

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil

	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + n) % n

	default:
		m.tabActive = true
		m.preTab = m.stashInput()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord substitutes replacement for the word under completion
// and moves the cursor past it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes completion candidates for the input. With
// autoConfirm, a word that already equals its sole candidate is accepted.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if sole := m.matches[0].Str; m.input.Value()[m.wordStart:m.wordEnd] == sole {
		replaceCurrentWord(m, sole)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}
