package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/blankline/internal/style"
)

// severity orders the defect kinds for the highlight ramp. Edge
// regions read as mild, broken indentation as severe.
var severity = map[style.DefectKind]float64{
	style.KindEmptyAtStart:   0.0,
	style.KindEmptyAtEnd:     0.1,
	style.KindTrailing:       0.4,
	style.KindSpaceAfterTab:  0.6,
	style.KindSpaceBeforeTab: 0.8,
	style.KindIndentation:    1.0,
}

var (
	rampLow, _  = colorful.Hex("#5f8700")
	rampHigh, _ = colorful.Hex("#d70000")
)

// KindColor returns the highlight background for a defect kind,
// blended along the severity ramp in Lab space so the midpoints stay
// perceptually even.
func KindColor(k style.DefectKind) tcell.Color {
	s, ok := severity[k.Generic()]
	if !ok {
		s = 0.5
	}
	c := rampLow.BlendLab(rampHigh, s).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// KindStyle returns the full cell style for a highlighted defect.
func KindStyle(k style.DefectKind) tcell.Style {
	return tcell.StyleDefault.
		Background(KindColor(k)).
		Foreground(tcell.ColorBlack)
}
