package cleanup

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// columnAt returns the visual column of byte offset pos within line,
// honoring tab stops every w columns and display widths for wide
// characters.
func columnAt(line string, pos int, w int) int {
	return advance(0, line[:pos], w)
}

// advance returns the visual column after laying out s starting at col.
func advance(col int, s string, w int) int {
	for i := 0; i < len(s); {
		if s[i] == '\t' {
			col = (col/w + 1) * w
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		col += runewidth.RuneWidth(r)
		i += size
	}
	return col
}

// renderBlank produces the canonical whitespace that moves the column
// from startCol to endCol: the minimal tabs+spaces combination when
// tabs are preferred, or plain spaces otherwise.
func renderBlank(startCol, endCol, w int, useTabs bool) string {
	if endCol <= startCol {
		return ""
	}
	if !useTabs {
		return strings.Repeat(" ", endCol-startCol)
	}
	var b strings.Builder
	col := startCol
	for {
		next := (col/w + 1) * w
		if next > endCol {
			break
		}
		b.WriteByte('\t')
		col = next
	}
	b.WriteString(strings.Repeat(" ", endCol-col))
	return b.String()
}
