// Package cleanup rewrites buffer ranges to remove blank defects.
//
// Passes run in a fixed order (indentation, trailing, space-after-tab,
// space-before-tab), each seeing the text as rewritten by the previous
// pass. The result is a net batch of non-overlapping edits in reverse
// buffer order, ready for atomic application. Running the passes on
// already-clean content produces no edits.
//
// Cleanup is explicit, not live highlighting: cursor exclusion never
// applies here.
package cleanup

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dshills/blankline/internal/pattern"
	"github.com/dshills/blankline/internal/style"
)

// ErrOutOfRange indicates a cleanup range outside buffer bounds.
var ErrOutOfRange = errors.New("range out of buffer bounds")

// Edit replaces [Start, End) with NewText. Batches returned by this
// package are non-overlapping and ordered by descending offset.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Clean computes the edits that remove active defects within
// [start, end). The range is widened to whole lines internally. The
// whole-buffer empty-line pass does not run here; use CleanAll.
func Clean(text string, start, end int, st style.EffectiveStyle, reg *pattern.Registry) ([]Edit, error) {
	if start < 0 || end > len(text) || start > end {
		return nil, ErrOutOfRange
	}
	if start == end {
		return nil, nil
	}
	// end is exclusive: a range stopping exactly at a line boundary
	// must not pull in the following line.
	edits := lineEdits(text, lineStartBefore(text, start), lineEndAfter(text, end-1), st, reg)
	reverse(edits)
	return edits, nil
}

// CleanAll computes edits for the entire buffer, including the
// whole-buffer-only pass removing all-blank lines at the very start
// and end.
func CleanAll(text string, st style.EffectiveStyle, reg *pattern.Registry) ([]Edit, error) {
	bodyStart, bodyEnd := 0, len(text)
	var head, tail *Edit

	if st.Has(style.KindEmptyAtStart) {
		if loc := reg.EdgeStart().FindStringIndex(text); loc != nil && loc[0] == 0 {
			head = &Edit{Start: 0, End: loc[1]}
			bodyStart = loc[1]
		}
	}
	if st.Has(style.KindEmptyAtEnd) {
		if loc := reg.EdgeEnd().FindStringIndex(text); loc != nil && loc[1] == len(text) {
			cut := loc[0]
			if cut < bodyStart {
				cut = bodyStart
			}
			if cut < len(text) {
				tail = &Edit{Start: cut, End: len(text)}
				bodyEnd = cut
			}
		}
	}

	edits := lineEdits(text, bodyStart, bodyEnd, st, reg)
	if tail != nil {
		edits = append(edits, *tail)
	}
	if head != nil {
		edits = append([]Edit{*head}, edits...)
	}
	reverse(edits)
	return edits, nil
}

// Apply runs a reverse-ordered edit batch against text. Used by hosts
// without their own buffer and by the idempotence tests.
func Apply(text string, edits []Edit) string {
	for _, e := range edits {
		text = text[:e.Start] + e.NewText + text[e.End:]
	}
	return text
}

// lineEdits runs the ordered line passes over every line in
// [regionStart, regionEnd) and emits one replacement edit per changed
// line, in ascending offset order.
func lineEdits(text string, regionStart, regionEnd int, st style.EffectiveStyle, reg *pattern.Registry) []Edit {
	var edits []Edit
	ls := regionStart
	for ls < regionEnd {
		le := ls
		for le < regionEnd && text[le] != '\n' {
			le++
		}
		// A CR before the terminator belongs to the line ending, not
		// the line content.
		ce := le
		if ce > ls && text[ce-1] == '\r' {
			ce--
		}
		line := text[ls:ce]
		if cleaned := cleanLine(line, st, reg); cleaned != line {
			edits = append(edits, Edit{Start: ls, End: ce, NewText: cleaned})
		}
		ls = le + 1
	}
	return edits
}

// cleanLine applies the fixed pass order to one line (no terminator).
func cleanLine(line string, st style.EffectiveStyle, reg *pattern.Registry) string {
	w := st.TabWidth

	if winner, ok := st.FamilyWinner(style.FamilyIndentation); ok {
		line = cleanIndentation(line, resolveTabs(winner, st), w, st, reg, winner)
	}
	if st.Has(style.KindTrailing) {
		line = strings.TrimRight(line, " \t\u00A0")
	}
	if winner, ok := st.FamilyWinner(style.FamilySpaceAfterTab); ok {
		line = cleanSpaceAfterTab(line, resolveTabs(winner, st), w)
	}
	if winner, ok := st.FamilyWinner(style.FamilySpaceBeforeTab); ok {
		line = cleanSpaceBeforeTab(line, resolveTabs(winner, st), w)
	}
	return line
}

// resolveTabs maps a family winner to its tab/space rendering mode.
func resolveTabs(k style.DefectKind, st style.EffectiveStyle) bool {
	switch k.Variant() {
	case style.VariantTab:
		return true
	case style.VariantSpace:
		return false
	default:
		return st.TabsPreferred
	}
}

// cleanIndentation canonicalizes the leading blank run when the active
// indentation pattern flags the line. Tabs preferred: collapse to the
// minimal tabs+spaces reproducing the visual column. Spaces preferred:
// expand leading tabs to spaces.
func cleanIndentation(line string, useTabs bool, w int, st style.EffectiveStyle, reg *pattern.Registry, winner style.DefectKind) string {
	c, ok := reg.Lookup(winner, st.TabsPreferred, w)
	if !ok || !c.Re.MatchString(line) {
		return line
	}

	runEnd := leadingBlankLen(line)
	endCol := columnAt(line, runEnd, w)
	canon := renderBlank(0, endCol, w, useTabs)
	if canon == line[:runEnd] {
		return line
	}
	return canon + line[runEnd:]
}

// cleanSpaceAfterTab rewrites every width-or-longer space run that
// follows a tab run on the line (tabs preferred) or expands tab runs
// that precede spaces (spaces preferred).
func cleanSpaceAfterTab(line string, useTabs bool, w int) string {
	if useTabs {
		var b strings.Builder
		b.Grow(len(line))
		col := 0
		i := 0
		for i < len(line) {
			if line[i] == '\t' {
				tabEnd := i
				for tabEnd < len(line) && line[tabEnd] == '\t' {
					tabEnd++
				}
				spaceEnd := tabEnd
				for spaceEnd < len(line) && line[spaceEnd] == ' ' {
					spaceEnd++
				}
				b.WriteString(line[i:tabEnd])
				tabCol := advance(col, line[i:tabEnd], w)
				endCol := advance(tabCol, line[tabEnd:spaceEnd], w)
				if spaceEnd-tabEnd >= w {
					b.WriteString(renderBlank(tabCol, endCol, w, true))
				} else {
					b.WriteString(line[tabEnd:spaceEnd])
				}
				col = endCol
				i = spaceEnd
				continue
			}
			_, size := utf8.DecodeRuneInString(line[i:])
			b.WriteString(line[i : i+size])
			col = advance(col, line[i:i+size], w)
			i += size
		}
		return b.String()
	}

	// Spaces preferred: any tab run directly followed by a space is
	// expanded to spaces.
	var b strings.Builder
	b.Grow(len(line))
	col := 0
	i := 0
	for i < len(line) {
		if line[i] == '\t' {
			runEnd := i
			for runEnd < len(line) && line[runEnd] == '\t' {
				runEnd++
			}
			endCol := advance(col, line[i:runEnd], w)
			if runEnd < len(line) && line[runEnd] == ' ' {
				b.WriteString(strings.Repeat(" ", endCol-col))
			} else {
				b.WriteString(line[i:runEnd])
			}
			col = endCol
			i = runEnd
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		b.WriteString(line[i : i+size])
		col = advance(col, line[i:i+size], w)
		i += size
	}
	return b.String()
}

// cleanSpaceBeforeTab rewrites space runs that precede tabs: tabs
// preferred re-renders the whole blank run with tabs; spaces preferred
// expands the run to spaces.
func cleanSpaceBeforeTab(line string, useTabs bool, w int) string {
	var b strings.Builder
	b.Grow(len(line))
	col := 0
	i := 0
	for i < len(line) {
		if line[i] == ' ' {
			spacesEnd := i
			for spacesEnd < len(line) && line[spacesEnd] == ' ' {
				spacesEnd++
			}
			if spacesEnd < len(line) && line[spacesEnd] == '\t' {
				runEnd := spacesEnd
				for runEnd < len(line) && (line[runEnd] == '\t' || line[runEnd] == ' ') {
					runEnd++
				}
				endCol := advance(col, line[i:runEnd], w)
				b.WriteString(renderBlank(col, endCol, w, useTabs))
				col = endCol
				i = runEnd
				continue
			}
			b.WriteString(line[i:spacesEnd])
			col = advance(col, line[i:spacesEnd], w)
			i = spacesEnd
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		b.WriteString(line[i : i+size])
		col = advance(col, line[i:i+size], w)
		i += size
	}
	return b.String()
}

// leadingBlankLen returns the byte length of the leading space/tab run.
func leadingBlankLen(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

func reverse(edits []Edit) {
	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}
}

func lineStartBefore(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if i := strings.LastIndexByte(text[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

func lineEndAfter(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(text)
}
