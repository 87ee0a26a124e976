package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/style"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	return s
}

func cellAt(t *testing.T, s tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	t.Helper()
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func TestView_DrawText(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	defer s.Fini()

	v := NewView(s, 4)
	v.Draw("test", "ab\ncd\n", nil)

	if r, _ := cellAt(t, s, 0, 0); r != 'a' {
		t.Errorf("cell(0,0) = %q, want 'a'", r)
	}
	if r, _ := cellAt(t, s, 1, 1); r != 'd' {
		t.Errorf("cell(1,1) = %q, want 'd'", r)
	}
}

func TestView_HighlightsDefects(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	defer s.Fini()

	v := NewView(s, 4)
	text := "ab  \n"
	defects := []engine.Defect{{Kind: style.KindTrailing, Start: 2, End: 4}}
	v.Draw("test", text, defects)

	_, plain := cellAt(t, s, 0, 0)
	_, marked := cellAt(t, s, 2, 0)
	if plain == marked {
		t.Error("defect cell should carry a highlight style")
	}
	if marked != KindStyle(style.KindTrailing) {
		t.Error("defect cell should use the kind's style")
	}
}

func TestView_TabExpansion(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	defer s.Fini()

	v := NewView(s, 4)
	v.Draw("test", "\tx\n", nil)

	if r, _ := cellAt(t, s, 4, 0); r != 'x' {
		t.Errorf("cell(4,0) = %q, want 'x' after a 4-column tab", r)
	}
}

func TestView_Scroll(t *testing.T) {
	s := newSimScreen(t, 20, 3)
	defer s.Fini()

	v := NewView(s, 4)
	v.Scroll(-5)
	if v.TopLine() != 0 {
		t.Errorf("TopLine = %d, want 0 (clamped)", v.TopLine())
	}

	v.Scroll(2)
	v.Draw("test", "l0\nl1\nl2\nl3\n", nil)
	if r, _ := cellAt(t, s, 1, 0); r != '2' {
		t.Errorf("cell(1,0) = %q, want '2' after scrolling two lines", r)
	}
}

func TestKindColor_Distinct(t *testing.T) {
	if KindColor(style.KindTrailing) == KindColor(style.KindIndentation) {
		t.Error("kinds at different severities should map to different colors")
	}
	// Variants share their family's color.
	if KindColor(style.KindIndentationTab) != KindColor(style.KindIndentation) {
		t.Error("variant kinds should share the family color")
	}
}
