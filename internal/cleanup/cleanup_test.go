package cleanup

import (
	"testing"

	"github.com/dshills/blankline/internal/pattern"
	"github.com/dshills/blankline/internal/style"
)

func cleanAllText(t *testing.T, text string, st style.EffectiveStyle) string {
	t.Helper()
	reg := pattern.NewRegistry()
	edits, err := CleanAll(text, st, reg)
	if err != nil {
		t.Fatalf("CleanAll: %v", err)
	}
	return Apply(text, edits)
}

func TestClean_Trailing(t *testing.T) {
	st := style.New(true, 8, style.KindTrailing)
	got := cleanAllText(t, "foo   \nbar\t\t\nbaz\n", st)
	want := "foo\nbar\nbaz\n"
	if got != want {
		t.Errorf("cleaned = %q, want %q", got, want)
	}
}

func TestClean_IndentationTabsPreferred(t *testing.T) {
	// Ten leading spaces at width 8 canonicalize to one tab + two spaces.
	st := style.New(true, 8, style.KindIndentation)
	got := cleanAllText(t, "          x\n", st)
	want := "\t  x\n"
	if got != want {
		t.Errorf("cleaned = %q, want %q", got, want)
	}
}

func TestClean_IndentationSpacesPreferred(t *testing.T) {
	// One leading tab at width 8 expands to eight spaces.
	st := style.New(false, 8, style.KindIndentation)
	got := cleanAllText(t, "\tx\n", st)
	want := "        x\n"
	if got != want {
		t.Errorf("cleaned = %q, want %q", got, want)
	}
}

func TestClean_IndentationShortRunUntouched(t *testing.T) {
	// Three spaces at width 8 are not an indentation defect.
	st := style.New(true, 8, style.KindIndentation)
	got := cleanAllText(t, "   x\n", st)
	if got != "   x\n" {
		t.Errorf("cleaned = %q, want unchanged", got)
	}
}

func TestClean_SpaceBeforeTab(t *testing.T) {
	st := style.New(true, 8, style.KindSpaceBeforeTab)
	got := cleanAllText(t, "ab  \tx\n", st)
	want := "ab\tx\n"
	if got != want {
		t.Errorf("tabs preferred: cleaned = %q, want %q", got, want)
	}

	st = style.New(false, 8, style.KindSpaceBeforeTab)
	got = cleanAllText(t, "ab  \tx\n", st)
	want = "ab      x\n"
	if got != want {
		t.Errorf("spaces preferred: cleaned = %q, want %q", got, want)
	}
}

func TestClean_SpaceAfterTab(t *testing.T) {
	// Nine spaces after the tab at width 8: rewritten to one tab plus
	// one space (columns 8 through 17).
	st := style.New(true, 8, style.KindSpaceAfterTab)
	got := cleanAllText(t, "\t         x\n", st)
	want := "\t\t x\n"
	if got != want {
		t.Errorf("tabs preferred: cleaned = %q, want %q", got, want)
	}

	st = style.New(false, 8, style.KindSpaceAfterTab)
	got = cleanAllText(t, "x\t y\n", st)
	want = "x        y\n"
	if got != want {
		t.Errorf("spaces preferred: cleaned = %q, want %q", got, want)
	}
}

func TestClean_SpaceAfterTabEveryRun(t *testing.T) {
	st := style.New(true, 8, style.KindSpaceAfterTab)
	reg := pattern.NewRegistry()

	// A wide space run between two tabs is a defect even though a tab
	// follows it; every run on the line gets rewritten, not just the
	// one after the last tab.
	tests := []struct {
		in, want string
	}{
		{"\t        \tx\n", "\t\t\tx\n"},
		{"\t        \t        end\n", "\t\t\t\tend\n"},
		{"a\t         b\n", "a\t\t b\n"},
	}
	for _, tt := range tests {
		got := cleanAllText(t, tt.in, st)
		if got != tt.want {
			t.Errorf("cleaned %q = %q, want %q", tt.in, got, tt.want)
		}

		again, err := CleanAll(got, st, reg)
		if err != nil {
			t.Fatalf("CleanAll(%q): %v", got, err)
		}
		if len(again) != 0 {
			t.Errorf("second clean of %q produced %v", got, again)
		}
	}
}

func TestCleanAll_EmptyEdges(t *testing.T) {
	st := style.New(true, 8, style.KindEmptyAtStart, style.KindEmptyAtEnd)
	got := cleanAllText(t, "\n\n\nfoo\n\n\n", st)
	want := "foo\n"
	if got != want {
		t.Errorf("cleaned = %q, want %q", got, want)
	}
}

func TestCleanAll_SingleFinalNewlineKept(t *testing.T) {
	st := style.New(true, 8, style.KindEmptyAtStart, style.KindEmptyAtEnd)
	got := cleanAllText(t, "foo\n", st)
	if got != "foo\n" {
		t.Errorf("cleaned = %q, want unchanged", got)
	}
}

func TestCleanAll_CRLF(t *testing.T) {
	st := style.New(true, 8, style.KindTrailing)
	got := cleanAllText(t, "foo  \r\nbar\t\r\n", st)
	want := "foo\r\nbar\r\n"
	if got != want {
		t.Errorf("cleaned = %q, want %q (CR stays with the terminator)", got, want)
	}
}

func TestCleanAll_CRLFEmptyEdges(t *testing.T) {
	st := style.New(true, 8, style.KindEmptyAtStart, style.KindEmptyAtEnd)
	got := cleanAllText(t, "\r\n\r\nfoo\r\n\r\n", st)
	want := "foo\r\n"
	if got != want {
		t.Errorf("cleaned = %q, want %q", got, want)
	}
}

func TestClean_SubRangeSkipsEdgePass(t *testing.T) {
	st := style.New(true, 8, style.KindEmptyAtStart, style.KindEmptyAtEnd, style.KindTrailing)
	text := "\n\nfoo  \n\n"
	reg := pattern.NewRegistry()

	edits, err := Clean(text, 0, len(text), st, reg)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	got := Apply(text, edits)
	want := "\n\nfoo\n\n"
	if got != want {
		t.Errorf("sub-range clean = %q, want %q (edges kept)", got, want)
	}
}

func TestClean_OutOfRange(t *testing.T) {
	st := style.New(true, 8, style.KindTrailing)
	if _, err := Clean("abc", 0, 9, st, pattern.NewRegistry()); err != ErrOutOfRange {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestClean_Idempotence(t *testing.T) {
	st := style.New(true, 8,
		style.KindEmptyAtStart, style.KindEmptyAtEnd, style.KindTrailing,
		style.KindIndentation, style.KindSpaceAfterTab, style.KindSpaceBeforeTab)
	reg := pattern.NewRegistry()

	inputs := []string{
		"\n\n          foo   \n\tbar \t baz\n\n\n",
		"plain\n",
		"",
		"   mixed \t\t  indent\n\t         wide\n",
		"no newline at end   ",
	}

	for _, text := range inputs {
		edits, err := CleanAll(text, st, reg)
		if err != nil {
			t.Fatalf("CleanAll(%q): %v", text, err)
		}
		once := Apply(text, edits)

		again, err := CleanAll(once, st, reg)
		if err != nil {
			t.Fatalf("CleanAll(second, %q): %v", once, err)
		}
		if len(again) != 0 {
			t.Errorf("second clean of %q produced %d edits (%v), want 0; first result %q",
				text, len(again), again, once)
		}
	}
}

func TestClean_SpacesPreferredIdempotence(t *testing.T) {
	st := style.New(false, 4,
		style.KindTrailing, style.KindIndentation,
		style.KindSpaceAfterTab, style.KindSpaceBeforeTab)
	reg := pattern.NewRegistry()

	text := "\tindent\t here  \n  \tmore\n"
	edits, err := CleanAll(text, st, reg)
	if err != nil {
		t.Fatalf("CleanAll: %v", err)
	}
	once := Apply(text, edits)

	again, err := CleanAll(once, st, reg)
	if err != nil {
		t.Fatalf("CleanAll(second): %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second clean produced %v on %q", again, once)
	}
}

func TestClean_EditsReverseOrderedAndDisjoint(t *testing.T) {
	st := style.New(true, 8, style.KindTrailing)
	text := "a \nb \nc \n"

	edits, err := Clean(text, 0, len(text), st, pattern.NewRegistry())
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(edits) != 3 {
		t.Fatalf("len(edits) = %d, want 3", len(edits))
	}
	for i := 1; i < len(edits); i++ {
		if edits[i].End > edits[i-1].Start {
			t.Errorf("edits overlap or are not in reverse order: %v", edits)
		}
	}
}

func TestRenderBlank(t *testing.T) {
	tests := []struct {
		startCol, endCol, w int
		useTabs             bool
		want                string
	}{
		{0, 10, 8, true, "\t  "},
		{0, 8, 8, true, "\t"},
		{2, 8, 8, true, "\t"},
		{0, 10, 8, false, "          "},
		{5, 5, 8, true, ""},
		{0, 7, 8, true, "       "},
	}
	for _, tt := range tests {
		got := renderBlank(tt.startCol, tt.endCol, tt.w, tt.useTabs)
		if got != tt.want {
			t.Errorf("renderBlank(%d,%d,%d,%v) = %q, want %q",
				tt.startCol, tt.endCol, tt.w, tt.useTabs, got, tt.want)
		}
	}
}

func TestColumnAt_WideRunesAndTabs(t *testing.T) {
	// CJK runes occupy two columns; the tab then jumps to the next stop.
	line := "日\tx"
	if got := columnAt(line, len("日"), 4); got != 2 {
		t.Errorf("columnAt after wide rune = %d, want 2", got)
	}
	if got := advance(0, "日\t", 4); got != 4 {
		t.Errorf("advance over wide rune + tab = %d, want 4", got)
	}
}
