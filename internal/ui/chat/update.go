// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/export"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sendResultMsg:
		return m.handleSendResult(msg)

	case revealTickMsg:
		return m.handleRevealTick(msg)

	case settleMsg:
		return m.handleSettle(msg)

	case components.SpriteTickMsg:
		return m, m.sprite.Update(msg)
	}

	return m.updateFocused(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	// A notice lives until the next keypress.
	m.notice = ""

	// Modal inputs first: while renaming or searching, only that
	// input sees keystrokes.
	switch m.focus {
	case focusTitle:
		return m.handleTitleKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.NewChat):
		m.shelf.Create("")
		m.errText = ""
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.DeleteChat):
		m.shelf.Delete(m.shelf.ActiveID())
		m.errText = ""
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Rename):
		if conv := m.shelf.Active(); conv != nil {
			m.titleEdit.SetValue(conv.DisplayTitle())
			m.titleEdit.CursorEnd()
		}
		return m, m.setFocus(focusTitle)

	case key.Matches(msg, m.keyMap.Search):
		m.search.SetValue("")
		return m, m.setFocus(focusSearch)

	case key.Matches(msg, m.keyMap.Export):
		m.exportActive()
		return m, nil

	case key.Matches(msg, m.keyMap.PrevChat):
		m.stepActive(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.NextChat):
		m.stepActive(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	return m.updateFocused(msg)
}

// handleTitleKey drives the rename editor. Enter commits, Esc abandons.
func (m Model) handleTitleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		m.shelf.Rename(m.shelf.ActiveID(), m.titleEdit.Value())
		m.refreshViewport()
		return m, m.setFocus(focusComposer)

	case key.Matches(msg, m.keyMap.Escape):
		return m, m.setFocus(focusComposer)
	}
	return m.updateFocused(msg)
}

// handleSearchKey drives the bookshelf filter. Enter activates the top
// match, Esc clears the filter.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		if matches := m.shelf.Search(m.search.Value()); len(matches) > 0 {
			m.shelf.SetActive(matches[0].ID)
			m.errText = ""
		}
		m.search.SetValue("")
		m.refreshViewport()
		return m, m.setFocus(focusComposer)

	case key.Matches(msg, m.keyMap.Escape):
		m.search.SetValue("")
		return m, m.setFocus(focusComposer)
	}
	return m.updateFocused(msg)
}

// exportActive writes the active conversation to the export directory
// as Markdown and surfaces the result in the status bar.
func (m *Model) exportActive() {
	if m.exportDir == "" {
		return
	}
	conv := m.shelf.Active()
	if conv == nil || conv.IsEmpty() {
		m.notice = "Nothing to export"
		return
	}
	path, err := export.Markdown(conv.Clone(), m.exportDir)
	if err != nil {
		log.Printf("export failed: %v", err)
		m.notice = "Export failed"
		return
	}
	m.notice = "Exported to " + path
}

// stepActive moves the active conversation up or down the shelf list.
func (m *Model) stepActive(delta int) {
	convos := m.shelf.List()
	if len(convos) == 0 {
		return
	}
	active := m.shelf.ActiveID()
	idx := 0
	for i, c := range convos {
		if c.ID == active {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = len(convos) - 1
	}
	if idx >= len(convos) {
		idx = 0
	}
	m.shelf.SetActive(convos[idx].ID)
	m.errText = ""
	m.refreshViewport()
}

// updateFocused forwards a message to whichever input has focus.
func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusTitle:
		m.titleEdit, cmd = m.titleEdit.Update(msg)
	default:
		m.composer, cmd = m.composer.Update(msg)
	}
	return m, cmd
}
