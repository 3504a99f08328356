// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/api"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/storage"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/components"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
)

// Timing constants for the send pipeline.
const (
	// submitThrottle absorbs accidental double submits. A second Enter
	// inside this window does nothing.
	submitThrottle = 120 * time.Millisecond

	// settleDelay is how long a failed send shows the error stage
	// before the pipeline returns to idle.
	settleDelay = 2 * time.Second

	// revealInterval is the delay between reveal steps, one rune each.
	revealInterval = 15 * time.Millisecond

	// sendTimeout bounds a single chat request.
	sendTimeout = 90 * time.Second
)

// =============================================================================
// PIPELINE STATE
// =============================================================================

// PipelineState is the send pipeline's current phase.
type PipelineState int

const (
	StateIdle      PipelineState = iota // Ready for a submit
	StateSending                        // Request in flight
	StateRevealing                      // Reply arriving, being revealed
	StateFailed                         // Send failed, settling back to idle
)

// =============================================================================
// FOCUS
// =============================================================================

// focusTarget identifies which input owns the keyboard.
type focusTarget int

const (
	focusComposer focusTarget = iota
	focusSearch
	focusTitle
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Data
	shelf    *storage.Shelf
	client   *api.Client
	username string

	// Pipeline
	state     PipelineState
	limiter   *rate.Limiter
	settleGen int

	// Reveal of the latest reply
	revealEnabled bool
	revealMsgID   string
	revealRunes   int
	revealTotal   int
	revealGen     int

	// Inline error for the active conversation, cleared on the next
	// submit.
	errText string

	// Transient status-bar note, cleared on the next keypress.
	notice string

	// Directory transcripts are exported into.
	exportDir string

	// UI components
	viewport   viewport.Model
	composer   textinput.Model
	search     textinput.Model
	titleEdit  textinput.Model
	sprite     components.BotSprite
	showSprite bool

	focus focusTarget

	// Key bindings
	keyMap KeyMap
}

// Options configures the chat view.
type Options struct {
	ShowSprite    bool
	RevealReplies bool

	// ExportDir is where exported transcripts are written. Empty
	// disables the export binding.
	ExportDir string
}

// New creates the chat model over an opened shelf and a ready client.
func New(theme *styles.Theme, shelf *storage.Shelf, client *api.Client, username string, opts Options) Model {
	composer := textinput.New()
	composer.Placeholder = "Type a message..."
	composer.CharLimit = 4000
	composer.Focus()

	search := textinput.New()
	search.Placeholder = "Search chats..."
	search.CharLimit = 128

	titleEdit := textinput.New()
	titleEdit.Placeholder = "Chat title"
	titleEdit.CharLimit = model.TitleMaxRunes * 2

	vp := viewport.New(80, 20)

	m := Model{
		theme:         theme,
		shelf:         shelf,
		client:        client,
		username:      username,
		state:         StateIdle,
		limiter:       rate.NewLimiter(rate.Every(submitThrottle), 1),
		revealEnabled: opts.RevealReplies,
		exportDir:     opts.ExportDir,
		viewport:      vp,
		composer:      composer,
		search:        search,
		titleEdit:     titleEdit,
		sprite:        components.NewBotSprite(theme),
		showSprite:    opts.ShowSprite,
		focus:         focusComposer,
		keyMap:        DefaultKeyMap(),
	}
	m.refreshViewport()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.sprite.Init())
}

// State returns the pipeline state.
func (m Model) State() PipelineState {
	return m.state
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.viewport.Width = m.transcriptWidth()
	m.viewport.Height = m.transcriptHeight()
	m.composer.Width = width - 8
	m.refreshViewport()
}

// setFocus moves keyboard ownership to one input, blurring the others.
// While the title editor or the search box has focus, keystrokes never
// leak into the composer.
func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	m.composer.Blur()
	m.search.Blur()
	m.titleEdit.Blur()
	switch target {
	case focusSearch:
		return m.search.Focus()
	case focusTitle:
		return m.titleEdit.Focus()
	default:
		return m.composer.Focus()
	}
}
