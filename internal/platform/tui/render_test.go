package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func TestPainterWithoutColorKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 0, '●', core.ColorBrightRed)
	s.SetColor(3, 0, '▲', core.ColorBrightRed)
	s.DrawTextColor(0, 1, "xyz", core.ColorGray)
	s.SetColor(5, 1, '?', core.Color(200)) // unmapped color

	// A renderer on a plain writer has no color profile
	p := NewPainter(lipgloss.NewRenderer(io.Discard))

	if got, want := p.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestNewPainterStyles(t *testing.T) {
	p := NewPainter(nil)
	for c := range colorCodes {
		if _, ok := p.styles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
	if _, ok := p.styles[core.ColorFlash]; !ok {
		t.Error("no style for the flash color")
	}
}
