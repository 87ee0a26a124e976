package pattern

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/dshills/blankline/internal/style"
)

// Regexp sources. %d slots receive the tab width. Hard spaces
// (U+00A0) count as blank, matching the source defect family. A CR
// before the terminator is part of the line ending, never the run.
const (
	trailingSrc = `(?m)([ \t\x{00A0}]+)\r?$`

	// Leading all-blank lines, anchored to the start of the buffer.
	emptyAtStartSrc = `\A(?:[ \t\x{00A0}]*\r?\n)+`

	// Trailing all-blank lines: a run of blanks/newlines from a line
	// start to the end of the buffer.
	emptyAtEndSrc = `(?m)^[ \t\x{00A0}\r\n]+\z`

	// Tab-preferred indentation defect: a run of width-sized space
	// groups in the leading whitespace. The trailing [^\t\r\n] keeps
	// pure-blank lines out (those belong to the trailing kind).
	indentTabSrc = `(?m)^\t*((?: {%d})+)[^\t\r\n]`

	// Space-preferred indentation defect: any tab in the indentation.
	indentSpaceSrc = `(?m)^ *(\t+)`

	// Tab-preferred space-after-tab defect: width-or-more spaces
	// directly after a tab.
	afterTabTabSrc = `\t+( {%d,})`

	// Space-preferred space-after-tab defect: the tabs themselves.
	afterTabSpaceSrc = `(\t+) +`

	// Tab-preferred space-before-tab defect: the space run.
	beforeTabTabSrc = `( +)\t`

	// Space-preferred space-before-tab defect: the tabs to expand.
	beforeTabSpaceSrc = ` +(\t+)`
)

// Compiled is a ready-to-run defect pattern.
type Compiled struct {
	// Kind is the style kind the pattern was looked up for.
	Kind style.DefectKind

	// Re locates candidate defects.
	Re *regexp.Regexp

	// Group is the capture group index delimiting the span to act on.
	Group int
}

type cacheKey struct {
	kind  style.DefectKind
	tabs  bool
	width int
}

// Registry compiles and caches defect patterns.
type Registry struct {
	mu    sync.Mutex
	cache map[cacheKey]*Compiled

	edgeStart *regexp.Regexp
	edgeEnd   *regexp.Regexp
}

// NewRegistry creates an empty pattern registry.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[cacheKey]*Compiled)}
}

// Lookup returns the compiled pattern for a kind under the given tab
// preference and width. Generic kinds resolve to their tab or space
// template via tabsPreferred; explicit sub-kinds force one template.
// Edge kinds (empty-at-start/end) have no line pattern here; they are
// served by EdgeStart and EdgeEnd. Lookup reports false for them and
// for KindUnknown.
func (r *Registry) Lookup(kind style.DefectKind, tabsPreferred bool, tabWidth int) (*Compiled, bool) {
	if tabWidth < 1 {
		tabWidth = style.DefaultTabWidth
	}
	src, group, ok := source(kind, tabsPreferred, tabWidth)
	if !ok {
		return nil, false
	}

	key := cacheKey{kind: kind, tabs: tabsPreferred, width: tabWidth}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, hit := r.cache[key]; hit {
		return c, true
	}
	c := &Compiled{
		Kind:  kind,
		Re:    regexp.MustCompile(src),
		Group: group,
	}
	r.cache[key] = c
	return c, true
}

// EdgeStart returns the buffer-start empty-region pattern.
func (r *Registry) EdgeStart() *regexp.Regexp {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.edgeStart == nil {
		r.edgeStart = regexp.MustCompile(emptyAtStartSrc)
	}
	return r.edgeStart
}

// EdgeEnd returns the buffer-end empty-region pattern.
func (r *Registry) EdgeEnd() *regexp.Regexp {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.edgeEnd == nil {
		r.edgeEnd = regexp.MustCompile(emptyAtEndSrc)
	}
	return r.edgeEnd
}

// source picks the regexp source and capture group for a kind.
func source(kind style.DefectKind, tabsPreferred bool, width int) (string, int, bool) {
	useTabs := tabsPreferred
	switch kind.Variant() {
	case style.VariantTab:
		useTabs = true
	case style.VariantSpace:
		useTabs = false
	}

	switch kind.Generic() {
	case style.KindTrailing:
		return trailingSrc, 1, true
	case style.KindIndentation:
		if useTabs {
			return fmt.Sprintf(indentTabSrc, width), 1, true
		}
		return indentSpaceSrc, 1, true
	case style.KindSpaceAfterTab:
		if useTabs {
			return fmt.Sprintf(afterTabTabSrc, width), 1, true
		}
		return afterTabSpaceSrc, 1, true
	case style.KindSpaceBeforeTab:
		if useTabs {
			return beforeTabTabSrc, 1, true
		}
		return beforeTabSpaceSrc, 1, true
	default:
		return "", 0, false
	}
}
