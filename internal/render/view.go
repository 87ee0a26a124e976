// Package render draws buffer text with defect highlights to a tcell
// screen. It backs the interactive view command; batch output goes
// through the report package instead.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/blankline/internal/engine"
)

// View renders one buffer with its defects. The caller owns the
// screen lifecycle; View only draws.
type View struct {
	screen   tcell.Screen
	tabWidth int

	// topLine is the first visible buffer line (0-indexed).
	topLine int
}

// NewView creates a view on an initialized screen.
func NewView(screen tcell.Screen, tabWidth int) *View {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	return &View{screen: screen, tabWidth: tabWidth}
}

// TopLine returns the first visible line.
func (v *View) TopLine() int { return v.topLine }

// Scroll moves the viewport by delta lines, clamped at the top.
func (v *View) Scroll(delta int) {
	v.topLine += delta
	if v.topLine < 0 {
		v.topLine = 0
	}
}

// Draw renders the visible slice of text with defect spans
// highlighted, plus a status line with the finding count. Tabs expand
// to the next tab stop; wide runes occupy their full cell count.
func (v *View) Draw(name, text string, defects []engine.Defect) {
	v.screen.Clear()
	width, height := v.screen.Size()
	if height < 2 || width == 0 {
		return
	}
	body := height - 1

	line := 0
	col := 0
	y := -v.topLine

	for offset, r := range text {
		if y >= body {
			break
		}
		st := tcell.StyleDefault
		if d, ok := defectAt(defects, offset); ok {
			st = KindStyle(d.Kind)
		}

		switch r {
		case '\n':
			line++
			col = 0
			y = line - v.topLine
			continue
		case '\t':
			next := (col/v.tabWidth + 1) * v.tabWidth
			for ; col < next && col < width; col++ {
				if y >= 0 {
					v.screen.SetContent(col, y, ' ', nil, st)
				}
			}
			continue
		default:
			if y >= 0 && col < width {
				v.screen.SetContent(col, y, r, nil, st)
			}
			col += runewidth.RuneWidth(r)
		}
	}

	v.drawStatus(name, len(defects), width, height-1)
	v.screen.Show()
}

// drawStatus renders the bottom status line.
func (v *View) drawStatus(name string, count int, width, y int) {
	msg := fmt.Sprintf(" %s | %d finding(s) | top %d | q quit, j/k scroll", name, count, v.topLine+1)
	st := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(msg) {
			r = rune(msg[x])
		}
		v.screen.SetContent(x, y, r, nil, st)
	}
}

// defectAt finds the defect covering a byte offset. Defects are
// position-ordered, so the first span not ending before the offset
// decides.
func defectAt(defects []engine.Defect, offset int) (engine.Defect, bool) {
	for _, d := range defects {
		if offset < d.Start {
			return engine.Defect{}, false
		}
		if offset < d.End {
			return d, true
		}
	}
	return engine.Defect{}, false
}
