package config

import (
	"sync"

	"github.com/dshills/blankline/internal/style"
)

// Tables is the full configuration surface: the default style, the
// layered per-file and per-mode style tables, and the matching action
// tables. A zero Tables value resolves everything to the stock style.
type Tables struct {
	mu sync.RWMutex

	// DefaultTokens configure the kinds active when no table entry
	// matches a buffer. Nil means the stock kind set.
	DefaultTokens []string

	// DefaultTabsPreferred selects tab-favoring variants by default.
	// Nil means tabs preferred, matching the stock style.
	DefaultTabsPreferred *bool

	// DefaultTabWidth is the column width of a tab stop. Zero means
	// the stock width.
	DefaultTabWidth int

	// FileStyles are matched against the file identifier, first match
	// wins. Keys are regular expressions.
	FileStyles []style.Entry

	// ModeStyles are matched against the mode identifier by equality.
	ModeStyles []style.Entry

	// FileActions and ModeActions mirror the style tables for host
	// action policies.
	FileActions []style.ActionEntry
	ModeActions []style.ActionEntry

	// DefaultActions apply when no action table entry matches.
	DefaultActions []string
}

// stockTokens are the kinds active out of the box: every non-variant
// kind, with the edge pair spelled via the shorthand token.
var stockTokens = []string{
	"indentation", "trailing", "empty",
	"space-before-tab", "space-after-tab",
}

// Default returns tables holding the stock configuration.
func Default() *Tables {
	return &Tables{}
}

// DefaultStyle materializes the default style.
func (t *Tables) DefaultStyle() style.EffectiveStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defaultStyleLocked()
}

func (t *Tables) defaultStyleLocked() style.EffectiveStyle {
	tokens := t.DefaultTokens
	if tokens == nil {
		tokens = stockTokens
	}
	tabs := true
	if t.DefaultTabsPreferred != nil {
		tabs = *t.DefaultTabsPreferred
	}
	width := t.DefaultTabWidth
	if width <= 0 {
		width = style.DefaultTabWidth
	}
	return style.FromTokens(tabs, width, tokens)
}

// ResolveStyle produces the effective style for a buffer identified by
// its file and mode identifiers.
func (t *Tables) ResolveStyle(fileID, modeID string) style.EffectiveStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return style.Resolve(fileID, modeID, t.FileStyles, t.ModeStyles, t.defaultStyleLocked())
}

// ResolveActions produces the effective action set for a buffer.
func (t *Tables) ResolveActions(fileID, modeID string) []style.Action {
	t.mu.RLock()
	defer t.mu.RUnlock()
	def := make([]style.Action, 0, len(t.DefaultActions))
	for _, tok := range t.DefaultActions {
		def = append(def, style.ParseAction(tok))
	}
	return style.ResolveActions(fileID, modeID, t.FileActions, t.ModeActions, def)
}

// Merge overlays other onto t: defaults that other sets replace t's,
// and table entries from other are prepended so they win first-match
// resolution. Used to stack project config over user config.
func (t *Tables) Merge(other *Tables) {
	if other == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if other.DefaultTokens != nil {
		t.DefaultTokens = other.DefaultTokens
	}
	if other.DefaultTabsPreferred != nil {
		t.DefaultTabsPreferred = other.DefaultTabsPreferred
	}
	if other.DefaultTabWidth > 0 {
		t.DefaultTabWidth = other.DefaultTabWidth
	}

	t.FileStyles = append(append([]style.Entry{}, other.FileStyles...), t.FileStyles...)
	t.ModeStyles = append(append([]style.Entry{}, other.ModeStyles...), t.ModeStyles...)
	t.FileActions = append(append([]style.ActionEntry{}, other.FileActions...), t.FileActions...)
	t.ModeActions = append(append([]style.ActionEntry{}, other.ModeActions...), t.ModeActions...)
	if other.DefaultActions != nil {
		t.DefaultActions = other.DefaultActions
	}
}

// Replace swaps the table contents atomically. Used by live reload.
func (t *Tables) Replace(other *Tables) {
	if other == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.DefaultTokens = other.DefaultTokens
	t.DefaultTabsPreferred = other.DefaultTabsPreferred
	t.DefaultTabWidth = other.DefaultTabWidth
	t.FileStyles = other.FileStyles
	t.ModeStyles = other.ModeStyles
	t.FileActions = other.FileActions
	t.ModeActions = other.ModeActions
	t.DefaultActions = other.DefaultActions
}
