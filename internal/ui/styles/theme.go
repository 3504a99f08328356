// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// BOOKSHELF STYLES
	// ==========================================================================

	ShelfList          lipgloss.Style
	ShelfItem          lipgloss.Style
	ShelfItemActive    lipgloss.Style
	ShelfNewChat       lipgloss.Style
	ShelfSearchPrompt  lipgloss.Style
	ShelfEmptyNotice   lipgloss.Style

	// ==========================================================================
	// META STRIP STYLES
	// ==========================================================================

	MetaBar   lipgloss.Style
	MetaTitle lipgloss.Style
	MetaInfo  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusIdle   lipgloss.Style
	StatusBusy   lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPRITE PANEL STYLES
	// ==========================================================================

	SpriteBox   lipgloss.Style
	SpriteFrame lipgloss.Style
	SpriteLabel lipgloss.Style
	SpriteError lipgloss.Style

	// ==========================================================================
	// LOGIN STYLES
	// ==========================================================================

	LoginBox       lipgloss.Style
	LoginTitle     lipgloss.Style
	LoginLabel     lipgloss.Style
	LoginError     lipgloss.Style
	LoginCountdown lipgloss.Style
	LoginSuccess   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		BorderLeft(true).
		PaddingLeft(2)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Bookshelf
	t.ShelfList = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ShelfItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShelfItemActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)

	t.ShelfNewChat = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true).
		Padding(0, 1)

	t.ShelfSearchPrompt = lipgloss.NewStyle().
		Foreground(Cyan)

	t.ShelfEmptyNotice = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	// Meta strip
	t.MetaBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.MetaTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.MetaInfo = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusIdle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusBusy = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Sprite panel
	t.SpriteBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.SpriteFrame = lipgloss.NewStyle().
		Foreground(Purple)

	t.SpriteLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.SpriteError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Login
	t.LoginBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.LoginTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.LoginLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LoginError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.LoginCountdown = lipgloss.NewStyle().
		Foreground(Amber)

	t.LoginSuccess = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
