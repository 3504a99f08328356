// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
)

func TestSpriteStage_Label(t *testing.T) {
	tests := []struct {
		stage SpriteStage
		want  string
	}{
		{StageIdle, "Ready to chat"},
		{StageThinking, "Thinking..."},
		{StageWriting, "Writing a reply..."},
		{StageError, "Something went wrong"},
	}
	for _, tt := range tests {
		if got := tt.stage.Label(); got != tt.want {
			t.Errorf("%v.Label() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestBotSprite_SetStage(t *testing.T) {
	sprite := NewBotSprite(styles.NewTheme())

	if sprite.Stage() != StageIdle {
		t.Fatalf("new sprite should start idle, got %v", sprite.Stage())
	}

	cmd := sprite.SetStage(StageThinking)
	if cmd == nil {
		t.Error("stage change should start a new tick loop")
	}
	if sprite.Stage() != StageThinking {
		t.Errorf("Stage() = %v, want thinking", sprite.Stage())
	}

	// Setting the same stage again must not restart the loop.
	if cmd := sprite.SetStage(StageThinking); cmd != nil {
		t.Error("re-setting the current stage should be a no-op")
	}
}

func TestBotSprite_StaleTicksDropped(t *testing.T) {
	sprite := NewBotSprite(styles.NewTheme())
	sprite.SetStage(StageThinking)

	// Advance a frame in the current generation.
	gen := sprite.gen
	if cmd := sprite.Update(SpriteTickMsg{Gen: gen}); cmd == nil {
		t.Error("live tick should schedule the next frame")
	}
	if sprite.frame != 1 {
		t.Errorf("frame = %d, want 1", sprite.frame)
	}

	// Stage change invalidates outstanding ticks.
	sprite.SetStage(StageWriting)
	if sprite.frame != 0 {
		t.Errorf("stage change should reset frame, got %d", sprite.frame)
	}
	if cmd := sprite.Update(SpriteTickMsg{Gen: gen}); cmd != nil {
		t.Error("stale tick should be dropped")
	}
	if sprite.frame != 0 {
		t.Errorf("stale tick must not advance the frame, got %d", sprite.frame)
	}
}

func TestBotSprite_View(t *testing.T) {
	sprite := NewBotSprite(styles.NewTheme())

	for _, stage := range []SpriteStage{StageIdle, StageThinking, StageWriting, StageError} {
		sprite.SetStage(stage)
		view := sprite.View()
		if !strings.Contains(view, stage.Label()) {
			t.Errorf("stage %v: view should contain label %q", stage, stage.Label())
		}
	}
}

func TestStageSequences_AllStagesDefined(t *testing.T) {
	for _, stage := range []SpriteStage{StageIdle, StageThinking, StageWriting, StageError} {
		seq, ok := stageSequences[stage]
		if !ok {
			t.Fatalf("stage %v has no frame sequence", stage)
		}
		if seq.Len() == 0 {
			t.Errorf("stage %v has no frames", stage)
		}
		if seq.Delay <= 0 {
			t.Errorf("stage %v has no frame delay", stage)
		}
	}
}
