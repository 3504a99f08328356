// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
)

// =============================================================================
// SPRITE STAGES
// =============================================================================

// SpriteStage identifies one of the bot sprite's animation stages.
type SpriteStage int

const (
	// StageIdle - waiting for the user, slow blink.
	StageIdle SpriteStage = iota
	// StageThinking - a request is in flight.
	StageThinking
	// StageWriting - the reply is being revealed.
	StageWriting
	// StageError - the last send failed.
	StageError
)

// String returns the stage name.
func (s SpriteStage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageThinking:
		return "thinking"
	case StageWriting:
		return "writing"
	case StageError:
		return "error"
	default:
		return "unknown"
	}
}

// Label returns the status text shown under the sprite.
func (s SpriteStage) Label() string {
	switch s {
	case StageIdle:
		return "Ready to chat"
	case StageThinking:
		return "Thinking..."
	case StageWriting:
		return "Writing a reply..."
	case StageError:
		return "Something went wrong"
	default:
		return ""
	}
}

// stageSequences maps each stage to its frame loop. Frame delays
// differ per stage so the sprite reads calm when idle and busy when
// working.
var stageSequences = map[SpriteStage]styles.FrameSequence{
	StageIdle: {
		Frames: []string{
			"(o_o)",
			"(o_o)",
			"(o_o)",
			"(-_-)",
		},
		Delay: 650 * time.Millisecond,
	},
	StageThinking: {
		Frames: []string{
			"(._.)   ",
			"(._.) . ",
			"(._.) ..",
			"(._.) .o",
			"(._.) oO",
		},
		Delay: 260 * time.Millisecond,
	},
	StageWriting: {
		Frames: []string{
			"(^_^)_",
			"(^_^) ",
			"(^o^)_",
			"(^o^) ",
		},
		Delay: 180 * time.Millisecond,
	},
	StageError: {
		Frames: []string{
			"(x_x)",
			"(X_X)",
		},
		Delay: 500 * time.Millisecond,
	},
}

// =============================================================================
// SPRITE MODEL
// =============================================================================

// SpriteTickMsg advances the sprite animation by one frame. Gen ties
// the tick to the stage that scheduled it; ticks from a superseded
// stage carry a stale Gen and are dropped, which is how the old
// stage's timer gets torn down.
type SpriteTickMsg struct {
	Gen int
}

// BotSprite is the animated mascot shown beside the transcript. Each
// stage change resets the frame index and bumps the generation counter
// so at most one tick loop is live at a time.
type BotSprite struct {
	stage SpriteStage
	frame int
	gen   int
	theme *styles.Theme
}

// NewBotSprite creates a sprite in the idle stage.
func NewBotSprite(theme *styles.Theme) BotSprite {
	return BotSprite{
		stage: StageIdle,
		theme: theme,
	}
}

// Stage returns the current animation stage.
func (s *BotSprite) Stage() SpriteStage {
	return s.stage
}

// Init starts the idle animation loop.
func (s *BotSprite) Init() tea.Cmd {
	return s.tick()
}

// SetStage switches the sprite to a new stage and returns the command
// that starts the new stage's tick loop. Setting the current stage
// again is a no-op and returns nil so the running loop continues.
func (s *BotSprite) SetStage(stage SpriteStage) tea.Cmd {
	if stage == s.stage {
		return nil
	}
	s.stage = stage
	s.frame = 0
	s.gen++
	return s.tick()
}

// Update handles sprite tick messages and returns the command for the
// next frame, or nil for messages the sprite doesn't care about.
func (s *BotSprite) Update(msg tea.Msg) tea.Cmd {
	tickMsg, ok := msg.(SpriteTickMsg)
	if !ok {
		return nil
	}
	if tickMsg.Gen != s.gen {
		// Stale timer from a previous stage.
		return nil
	}
	s.frame++
	return s.tick()
}

// tick schedules the next frame advance for the current stage.
func (s *BotSprite) tick() tea.Cmd {
	gen := s.gen
	delay := stageSequences[s.stage].Delay
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SpriteTickMsg{Gen: gen}
	})
}

// View renders the sprite box: the current frame with the stage label
// underneath.
func (s *BotSprite) View() string {
	seq := stageSequences[s.stage]
	frame := seq.FrameAt(s.frame)

	frameStyle := s.theme.SpriteFrame
	labelStyle := s.theme.SpriteLabel
	if s.stage == StageError {
		frameStyle = s.theme.SpriteError
		labelStyle = s.theme.SpriteError
	}

	body := lipgloss.JoinVertical(
		lipgloss.Center,
		frameStyle.Render(frame),
		labelStyle.Render(s.stage.Label()),
	)
	return s.theme.SpriteBox.Render(body)
}
