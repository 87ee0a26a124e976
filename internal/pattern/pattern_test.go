package pattern

import (
	"testing"

	"github.com/dshills/blankline/internal/style"
)

func TestLookup_Trailing(t *testing.T) {
	r := NewRegistry()

	c, ok := r.Lookup(style.KindTrailing, true, 8)
	if !ok {
		t.Fatal("Lookup(trailing) should succeed")
	}

	loc := c.Re.FindStringSubmatchIndex("foo   \nbar\n")
	if loc == nil {
		t.Fatal("trailing pattern should match 'foo   '")
	}
	start, end := loc[2*c.Group], loc[2*c.Group+1]
	if start != 3 || end != 6 {
		t.Errorf("span = [%d,%d), want [3,6)", start, end)
	}
}

func TestLookup_TrailingMatchesHardSpace(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Lookup(style.KindTrailing, true, 8)

	if c.Re.FindStringIndex("foo \n") == nil {
		t.Error("trailing pattern should match hard space")
	}
}

func TestLookup_TrailingCRLF(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Lookup(style.KindTrailing, true, 8)

	loc := c.Re.FindStringSubmatchIndex("foo  \r\n")
	if loc == nil {
		t.Fatal("trailing pattern should match before a CRLF terminator")
	}
	start, end := loc[2*c.Group], loc[2*c.Group+1]
	if start != 3 || end != 5 {
		t.Errorf("span = [%d,%d), want [3,5) excluding the CR", start, end)
	}
}

func TestLookup_IndentationTabMode(t *testing.T) {
	r := NewRegistry()
	c, ok := r.Lookup(style.KindIndentation, true, 4)
	if !ok {
		t.Fatal("Lookup(indentation) should succeed")
	}

	// Eight spaces = two width-4 groups; the x satisfies the
	// non-blank follower requirement.
	loc := c.Re.FindStringSubmatchIndex("        x\n")
	if loc == nil {
		t.Fatal("indentation pattern should match 8 leading spaces at width 4")
	}
	if got := loc[2*c.Group+1] - loc[2*c.Group]; got != 8 {
		t.Errorf("matched run length = %d, want 8", got)
	}

	// Three spaces do not reach the width threshold.
	if c.Re.FindStringIndex("   x\n") != nil {
		t.Error("indentation pattern should not match 3 spaces at width 4")
	}
}

func TestLookup_IndentationSpaceMode(t *testing.T) {
	r := NewRegistry()
	c, _ := r.Lookup(style.KindIndentation, false, 8)

	loc := c.Re.FindStringSubmatchIndex("  \tx\n")
	if loc == nil {
		t.Fatal("space-mode indentation should match a leading tab")
	}
	start, end := loc[2*c.Group], loc[2*c.Group+1]
	if start != 2 || end != 3 {
		t.Errorf("span = [%d,%d), want [2,3)", start, end)
	}
}

func TestLookup_VariantForcesTemplate(t *testing.T) {
	r := NewRegistry()

	// Space variant under a tabs-preferred style still uses the
	// space template (tabs are the defect).
	c, ok := r.Lookup(style.KindIndentationSpace, true, 8)
	if !ok {
		t.Fatal("Lookup(indentation::space) should succeed")
	}
	if c.Re.FindStringIndex("\tx\n") == nil {
		t.Error("forced space variant should flag leading tabs")
	}
}

func TestLookup_SpaceAfterTab(t *testing.T) {
	r := NewRegistry()

	c, _ := r.Lookup(style.KindSpaceAfterTab, true, 4)
	if c.Re.FindStringIndex("\t    x") == nil {
		t.Error("tab-mode space-after-tab should match 4 spaces after tab")
	}
	if c.Re.FindStringIndex("\t  x") != nil {
		t.Error("tab-mode space-after-tab should not match short runs")
	}

	c, _ = r.Lookup(style.KindSpaceAfterTab, false, 4)
	loc := c.Re.FindStringSubmatchIndex("x\t y")
	if loc == nil {
		t.Fatal("space-mode space-after-tab should match tab followed by space")
	}
	if loc[2*c.Group] != 1 || loc[2*c.Group+1] != 2 {
		t.Errorf("span = [%d,%d), want [1,2)", loc[2*c.Group], loc[2*c.Group+1])
	}
}

func TestLookup_SpaceBeforeTab(t *testing.T) {
	r := NewRegistry()

	c, _ := r.Lookup(style.KindSpaceBeforeTab, true, 8)
	loc := c.Re.FindStringSubmatchIndex("ab  \tx")
	if loc == nil {
		t.Fatal("space-before-tab should match spaces before a tab")
	}
	start, end := loc[2*c.Group], loc[2*c.Group+1]
	if start != 2 || end != 4 {
		t.Errorf("span = [%d,%d), want [2,4)", start, end)
	}
}

func TestLookup_EdgeKindsNotServed(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup(style.KindEmptyAtStart, true, 8); ok {
		t.Error("edge kinds should not resolve to a line pattern")
	}
}

func TestEdgePatterns(t *testing.T) {
	r := NewRegistry()

	if got := r.EdgeStart().FindString("\n \n\nX"); got != "\n \n\n" {
		t.Errorf("EdgeStart matched %q, want the three blank lines", got)
	}
	if r.EdgeStart().FindStringIndex("X\n\n") != nil {
		t.Error("EdgeStart should not match a buffer starting with content")
	}

	loc := r.EdgeEnd().FindStringIndex("foo\n\n\n")
	if loc == nil || loc[0] != 4 || loc[1] != 6 {
		t.Errorf("EdgeEnd span = %v, want [4,6)", loc)
	}
	if r.EdgeEnd().FindStringIndex("foo\n") != nil {
		t.Error("a single final newline is not an empty-at-end defect")
	}
}

func TestEdgePatterns_CRLF(t *testing.T) {
	r := NewRegistry()

	if got := r.EdgeStart().FindString("\r\n \r\nX"); got != "\r\n \r\n" {
		t.Errorf("EdgeStart matched %q, want both CRLF blank lines", got)
	}
	loc := r.EdgeEnd().FindStringIndex("foo\r\n\r\n")
	if loc == nil || loc[0] != 5 || loc[1] != 7 {
		t.Errorf("EdgeEnd span = %v, want [5,7)", loc)
	}
}

func TestLookup_CachesCompiledPatterns(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Lookup(style.KindTrailing, true, 8)
	b, _ := r.Lookup(style.KindTrailing, true, 8)
	if a != b {
		t.Error("repeated lookups should return the cached pattern")
	}
}
