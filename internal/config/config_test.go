package config

import (
	"testing"

	"github.com/dshills/blankline/internal/style"
)

func boolPtr(b bool) *bool { return &b }

func TestDefault_StockStyle(t *testing.T) {
	st := Default().DefaultStyle()

	if !st.TabsPreferred {
		t.Error("stock style should prefer tabs")
	}
	if st.TabWidth != style.DefaultTabWidth {
		t.Errorf("TabWidth = %d, want %d", st.TabWidth, style.DefaultTabWidth)
	}
	for _, k := range []style.DefectKind{
		style.KindIndentation, style.KindTrailing,
		style.KindEmptyAtStart, style.KindEmptyAtEnd,
		style.KindSpaceBeforeTab, style.KindSpaceAfterTab,
	} {
		if !st.Has(k) {
			t.Errorf("stock style missing %v", k)
		}
	}
}

func TestResolveStyle_FileOverMode(t *testing.T) {
	tbl := Default()
	tbl.FileStyles = []style.Entry{
		{Key: `\.go$`, Tokens: []string{"trailing"}},
	}
	tbl.ModeStyles = []style.Entry{
		{Key: "go", Tokens: []string{"indentation"}},
	}

	st := tbl.ResolveStyle("main.go", "go")
	if !st.Has(style.KindTrailing) || st.Has(style.KindIndentation) {
		t.Errorf("file entry should win entirely, got %v", st.Kinds())
	}

	st = tbl.ResolveStyle("README.md", "go")
	if !st.Has(style.KindIndentation) || st.Has(style.KindTrailing) {
		t.Errorf("mode entry should apply when no file entry matches, got %v", st.Kinds())
	}
}

func TestResolveActions(t *testing.T) {
	tbl := Default()
	tbl.DefaultActions = []string{"cleanup-on-save"}
	tbl.ModeActions = []style.ActionEntry{
		{Key: "go", Tokens: []string{"cleanup-on-activate", "bogus-token"}},
	}

	actions := tbl.ResolveActions("main.go", "go")
	if !style.HasAction(actions, style.ActionCleanupOnActivate) {
		t.Errorf("actions = %v, want cleanup-on-activate", actions)
	}
	if len(actions) != 1 {
		t.Errorf("unknown tokens should be dropped, got %v", actions)
	}

	actions = tbl.ResolveActions("x.txt", "text")
	if !style.HasAction(actions, style.ActionCleanupOnSave) {
		t.Errorf("default actions = %v, want cleanup-on-save", actions)
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := Default()
	base.DefaultTabWidth = 8
	base.FileStyles = []style.Entry{{Key: `\.txt$`, Tokens: []string{"trailing"}}}

	overlay := &Tables{
		DefaultTabWidth:      4,
		DefaultTabsPreferred: boolPtr(false),
		FileStyles:           []style.Entry{{Key: `\.txt$`, Tokens: []string{"indentation"}}},
	}
	base.Merge(overlay)

	st := base.ResolveStyle("a.txt", "text")
	if !st.Has(style.KindIndentation) {
		t.Errorf("overlay entry should win first-match, got %v", st.Kinds())
	}
	if st.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", st.TabWidth)
	}
	if st.TabsPreferred {
		t.Error("overlay should flip tab preference")
	}
}

func TestMerge_UnsetFieldsKept(t *testing.T) {
	base := Default()
	base.DefaultTokens = []string{"trailing"}
	base.DefaultTabWidth = 2

	base.Merge(&Tables{})

	st := base.DefaultStyle()
	if st.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2 (empty overlay must not reset)", st.TabWidth)
	}
	if !st.Has(style.KindTrailing) || st.Has(style.KindIndentation) {
		t.Errorf("tokens = %v, want trailing only", st.Kinds())
	}
}

func TestReplace(t *testing.T) {
	tbl := Default()
	tbl.Replace(&Tables{DefaultTokens: []string{"trailing"}})

	st := tbl.DefaultStyle()
	if st.Has(style.KindIndentation) {
		t.Errorf("Replace should drop previous tokens, got %v", st.Kinds())
	}
}
