// Package classify applies the defect patterns of an effective style
// over a buffer range and reports matches.
//
// Classification is stateless and never mutates the buffer. The two
// buffer-edge kinds (empty-at-start/end) are tracked incrementally by
// the boundary package; Classify skips them and the engine merges the
// two result sets.
package classify

import (
	"errors"
	"sort"
	"strings"

	"github.com/dshills/blankline/internal/pattern"
	"github.com/dshills/blankline/internal/style"
)

// ErrOutOfRange indicates a classification range outside buffer bounds.
var ErrOutOfRange = errors.New("range out of buffer bounds")

// Match is a located defect: a kind and a half-open byte span relative
// to the buffer origin.
type Match struct {
	Kind  style.DefectKind
	Start int
	End   int
}

// Classify reports defects of the active kinds within [start, end).
//
// For each variant family exactly one kind is evaluated (generic wins
// over tab, tab over space). The scan region is widened to whole lines
// so line-anchored patterns see their true context; only matches
// intersecting the requested range are reported. Matches are ordered
// by buffer position, not kind precedence. An empty style yields an
// empty result and a nil error.
func Classify(text string, start, end int, st style.EffectiveStyle, reg *pattern.Registry) ([]Match, error) {
	if start < 0 || end > len(text) || start > end {
		return nil, ErrOutOfRange
	}
	if st.IsEmpty() {
		return nil, nil
	}

	scanStart := lineStartBefore(text, start)
	scanEnd := lineEndAfter(text, end)
	region := text[scanStart:scanEnd]

	var matches []Match
	for _, kind := range winners(st) {
		c, ok := reg.Lookup(kind, st.TabsPreferred, st.TabWidth)
		if !ok {
			continue
		}
		for _, loc := range c.Re.FindAllStringSubmatchIndex(region, -1) {
			ms, me := loc[2*c.Group], loc[2*c.Group+1]
			if ms < 0 || ms == me {
				continue
			}
			ms += scanStart
			me += scanStart
			if me <= start || ms >= end {
				continue
			}
			matches = append(matches, Match{Kind: kind, Start: ms, End: me})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		if matches[i].End != matches[j].End {
			return matches[i].End < matches[j].End
		}
		return matches[i].Kind < matches[j].Kind
	})
	return matches, nil
}

// winners lists the kinds to evaluate in style precedence order, with
// each variant family collapsed to its single winning kind and edge
// kinds dropped.
func winners(st style.EffectiveStyle) []style.DefectKind {
	var out []style.DefectKind
	seenFamily := make(map[style.Family]bool, 3)
	for _, k := range st.Kinds() {
		if k.IsEdge() {
			continue
		}
		f := k.Family()
		if f == style.FamilyNone {
			out = append(out, k)
			continue
		}
		if seenFamily[f] {
			continue
		}
		seenFamily[f] = true
		if w, ok := st.FamilyWinner(f); ok {
			out = append(out, w)
		}
	}
	return out
}

// lineStartBefore returns the offset of the line start at or before pos.
func lineStartBefore(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if i := strings.LastIndexByte(text[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// lineEndAfter returns the offset just past the line containing pos,
// including its terminator when present.
func lineEndAfter(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(text)
}
