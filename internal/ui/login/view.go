// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.LoginTitle.Render("emochat"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.LoginLabel.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.username.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.LoginLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())

	box := m.theme.LoginBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// statusLine renders the line under the form: prompt, spinner text,
// error with countdown, or the success confirmation.
func (m Model) statusLine() string {
	switch m.state {
	case StateValidating:
		return m.theme.LoginLabel.Render("Signing in...")
	case StateLockedOut:
		line := m.theme.LoginError.Render(m.errMsg)
		retry := m.theme.LoginCountdown.Render(
			fmt.Sprintf("Try again in %ds", m.countdown))
		return line + "\n" + retry
	case StateSuccess:
		return m.theme.LoginSuccess.Render("Welcome back!")
	default:
		if m.errMsg != "" {
			return m.theme.LoginError.Render(m.errMsg)
		}
		return m.theme.LoginLabel.Render("Press Enter to sign in")
	}
}
