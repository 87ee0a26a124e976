package style

import "regexp"

// Entry is one row of a layered style table. For per-file tables Key
// is a regexp matched against the file identifier; for per-mode tables
// it is compared for equality with the mode identifier.
type Entry struct {
	// Key selects the entry (regexp for file tables, literal for mode tables).
	Key string

	// Tokens are defect-kind configuration tokens. Unknown tokens are
	// ignored at resolution time.
	Tokens []string

	// TabsPreferred overrides the default tab preference when non-nil.
	TabsPreferred *bool

	// TabWidth overrides the default tab width when > 0.
	TabWidth int
}

// Resolve produces the effective style for a buffer.
//
// Lookup order: the first perFile entry whose key pattern matches
// fileID wins entirely; otherwise the first perMode entry whose key
// equals modeID; otherwise def. There is no merging across levels.
// Entries with invalid regexp keys are skipped. Resolve never errors.
func Resolve(fileID, modeID string, perFile, perMode []Entry, def EffectiveStyle) EffectiveStyle {
	if e, ok := matchFile(fileID, perFile); ok {
		return entryStyle(e, def)
	}
	for _, e := range perMode {
		if e.Key == modeID {
			return entryStyle(e, def)
		}
	}
	return def
}

// matchFile returns the first entry whose key regexp matches fileID.
func matchFile(fileID string, entries []Entry) (Entry, bool) {
	for _, e := range entries {
		re, err := regexp.Compile(e.Key)
		if err != nil {
			continue
		}
		if re.MatchString(fileID) {
			return e, true
		}
	}
	return Entry{}, false
}

// entryStyle materializes an entry, falling back to the default style
// for the tab preference and width when the entry leaves them unset.
func entryStyle(e Entry, def EffectiveStyle) EffectiveStyle {
	tabs := def.TabsPreferred
	if e.TabsPreferred != nil {
		tabs = *e.TabsPreferred
	}
	width := def.TabWidth
	if e.TabWidth > 0 {
		width = e.TabWidth
	}
	return FromTokens(tabs, width, e.Tokens)
}
