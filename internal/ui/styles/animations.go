// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// FrameSequence describes a looping animation: an ordered frame list
// and the delay between frames.
type FrameSequence struct {
	Frames []string
	Delay  time.Duration
}

// FrameAt returns the frame for the given tick index, wrapping around.
func (s FrameSequence) FrameAt(i int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	return s.Frames[i%len(s.Frames)]
}

// Len returns the number of frames in the sequence.
func (s FrameSequence) Len() int {
	return len(s.Frames)
}

// =============================================================================
// SPINNERS
// =============================================================================

// BrailleSpinner is the default busy spinner.
var BrailleSpinner = FrameSequence{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	Delay:  80 * time.Millisecond,
}

// DotsSpinner is a simpler ASCII-safe spinner.
var DotsSpinner = FrameSequence{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	Delay:  140 * time.Millisecond,
}

// =============================================================================
// TYPING CURSOR
// =============================================================================

// TypingCursor is the blinking cursor shown at the end of a reply
// while it is being revealed.
var TypingCursor = FrameSequence{
	Frames: []string{"_", " "},
	Delay:  530 * time.Millisecond,
}
