// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestFrame(t *testing.T) {
	frames := []string{"a", "b", "c"}
	tests := []struct {
		tick int
		want string
	}{
		{0, "a"}, {1, "b"}, {2, "c"}, {3, "a"}, {-1, "b"},
	}
	for _, tt := range tests {
		if got := Frame(frames, tt.tick); got != tt.want {
			t.Errorf("Frame(%d) = %q, want %q", tt.tick, got, tt.want)
		}
	}
	if got := Frame(nil, 5); got != "" {
		t.Errorf("Frame(nil) = %q", got)
	}
}

func TestNewTheme_ExplicitModes(t *testing.T) {
	dark := NewTheme("dark")
	if !dark.IsDark || dark.GlamourStyle() != "dark" || dark.ChromaStyle() != "catppuccin-mocha" {
		t.Errorf("dark theme = %v %s %s", dark.IsDark, dark.GlamourStyle(), dark.ChromaStyle())
	}
	light := NewTheme("light")
	if light.IsDark || light.GlamourStyle() != "light" || light.ChromaStyle() != "catppuccin-latte" {
		t.Errorf("light theme = %v %s %s", light.IsDark, light.GlamourStyle(), light.ChromaStyle())
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme("dark")
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow}, {79, LayoutNarrow}, {80, LayoutMedium}, {129, LayoutMedium}, {130, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: got %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestRenderHelpers_IncludeIndicators(t *testing.T) {
	if s := RenderSuccess("saved"); !strings.Contains(s, "[OK]") || !strings.Contains(s, "saved") {
		t.Errorf("RenderSuccess = %q", s)
	}
	if s := RenderError("boom"); !strings.Contains(s, "[X]") {
		t.Errorf("RenderError = %q", s)
	}
	if s := RenderWarning("hmm"); !strings.Contains(s, "[!]") {
		t.Errorf("RenderWarning = %q", s)
	}
}
