package style

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestResolve_FirstFileMatchWins(t *testing.T) {
	perFile := []Entry{
		{Key: `\.txt$`, Tokens: []string{"trailing"}},
		{Key: `\.`, Tokens: []string{"indentation"}},
	}
	def := New(true, 8, KindIndentationTab, KindIndentationSpace)

	got := Resolve("a.txt", "text", perFile, nil, def)

	if got.Len() != 1 || !got.Has(KindTrailing) {
		t.Errorf("style = %v, want exactly {trailing}", got.Kinds())
	}
}

func TestResolve_NoMergingAcrossLevels(t *testing.T) {
	perFile := []Entry{{Key: `\.txt$`, Tokens: []string{"trailing"}}}
	perMode := []Entry{{Key: "text", Tokens: []string{"indentation"}}}
	def := New(true, 8, KindSpaceBeforeTab)

	got := Resolve("a.txt", "text", perFile, perMode, def)

	if got.Has(KindIndentation) || got.Has(KindSpaceBeforeTab) {
		t.Errorf("per-file match must win entirely, got %v", got.Kinds())
	}
}

func TestResolve_ModeFallback(t *testing.T) {
	perFile := []Entry{{Key: `\.go$`, Tokens: []string{"trailing"}}}
	perMode := []Entry{
		{Key: "python", Tokens: []string{"indentation::space"}},
		{Key: "text", Tokens: []string{"trailing", "empty"}},
	}
	def := New(true, 8, KindSpaceBeforeTab)

	got := Resolve("notes.txt", "text", perFile, perMode, def)

	if !got.Has(KindTrailing) || !got.Has(KindEmptyAtStart) || !got.Has(KindEmptyAtEnd) {
		t.Errorf("mode entry should apply, got %v", got.Kinds())
	}
}

func TestResolve_DefaultFallback(t *testing.T) {
	def := New(false, 4, KindTrailing)

	got := Resolve("x.bin", "hex", nil, nil, def)

	if !got.Has(KindTrailing) || got.TabsPreferred || got.TabWidth != 4 {
		t.Errorf("default should apply unchanged, got %v tabs=%v width=%d",
			got.Kinds(), got.TabsPreferred, got.TabWidth)
	}
}

func TestResolve_EntryOverridesTabSettings(t *testing.T) {
	perFile := []Entry{{
		Key:           `\.py$`,
		Tokens:        []string{"indentation"},
		TabsPreferred: boolPtr(false),
		TabWidth:      4,
	}}
	def := New(true, 8, KindTrailing)

	got := Resolve("x.py", "python", perFile, nil, def)

	if got.TabsPreferred {
		t.Error("entry should override tabs preference")
	}
	if got.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", got.TabWidth)
	}
}

func TestResolve_InheritsDefaultTabSettings(t *testing.T) {
	perFile := []Entry{{Key: `\.txt$`, Tokens: []string{"trailing"}}}
	def := New(false, 2, KindIndentation)

	got := Resolve("a.txt", "", perFile, nil, def)

	if got.TabsPreferred || got.TabWidth != 2 {
		t.Errorf("unset entry fields should inherit default, got tabs=%v width=%d",
			got.TabsPreferred, got.TabWidth)
	}
}

func TestResolve_SkipsInvalidRegexpKeys(t *testing.T) {
	perFile := []Entry{
		{Key: `([`, Tokens: []string{"indentation"}},
		{Key: `\.txt$`, Tokens: []string{"trailing"}},
	}
	def := New(true, 8)

	got := Resolve("a.txt", "", perFile, nil, def)

	if !got.Has(KindTrailing) {
		t.Errorf("invalid regexp entry should be skipped, got %v", got.Kinds())
	}
}

func TestResolveActions_Precedence(t *testing.T) {
	perFile := []ActionEntry{{Key: `\.txt$`, Tokens: []string{"cleanup-on-save"}}}
	perMode := []ActionEntry{{Key: "text", Tokens: []string{"abort-save-on-bogus"}}}
	def := []Action{ActionWarnOnReadOnly}

	got := ResolveActions("a.txt", "text", perFile, perMode, def)
	if len(got) != 1 || got[0] != ActionCleanupOnSave {
		t.Errorf("actions = %v, want [cleanup-on-save]", got)
	}

	got = ResolveActions("a.go", "text", perFile, perMode, def)
	if len(got) != 1 || got[0] != ActionAbortSaveOnBogus {
		t.Errorf("actions = %v, want [abort-save-on-bogus]", got)
	}

	got = ResolveActions("a.go", "go", perFile, perMode, def)
	if len(got) != 1 || got[0] != ActionWarnOnReadOnly {
		t.Errorf("actions = %v, want [warn-on-readonly]", got)
	}
}

func TestResolveActions_DropsUnknownTokens(t *testing.T) {
	perMode := []ActionEntry{{Key: "go", Tokens: []string{"cleanup-on-save", "frobnicate"}}}

	got := ResolveActions("", "go", nil, perMode, nil)
	if len(got) != 1 || got[0] != ActionCleanupOnSave {
		t.Errorf("actions = %v, want [cleanup-on-save]", got)
	}
}
