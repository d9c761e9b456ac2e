package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-ipod/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.SetCell(0, 0, core.Cell{Rune: 'a'})
	s.SetCell(2, 1, core.Cell{Rune: 'b'})

	got := RenderScreen(s)
	expected := "a  \n  b"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawText(0, 0, "ab", core.ColorDefault)
	s.SetCell(2, 0, core.Cell{Rune: 'c', Fg: core.ColorWhite, Bg: core.ColorNavy})
	s.SetCell(3, 0, core.Cell{Rune: 'd', Fg: core.ColorWhite, Bg: core.ColorNavy})

	got := RenderScreen(s)
	if !strings.Contains(got, "ab") || !strings.Contains(got, "cd") {
		t.Errorf("rendered output lost text: %q", got)
	}
	if strings.Count(got, "\n") != 0 {
		t.Errorf("single row rendered with newlines: %q", got)
	}
}

func TestStyleForCached(t *testing.T) {
	a := styleFor(core.ColorWhite, core.ColorOcean)
	b := styleFor(core.ColorWhite, core.ColorOcean)
	if a.GetForeground() != b.GetForeground() || a.GetBackground() != b.GetBackground() {
		t.Error("styleFor returned different styles for the same colors")
	}
}
