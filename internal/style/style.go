package style

import "strings"

// DefaultTabWidth is used when a configuration level does not set one.
const DefaultTabWidth = 8

// EffectiveStyle is the resolved set of active defect kinds for a
// buffer. Insertion order is precedence order for mutually-exclusive
// variant groups. The kind set never contains duplicates.
type EffectiveStyle struct {
	kinds         []DefectKind
	TabsPreferred bool
	TabWidth      int
}

// New builds an EffectiveStyle from kinds, dropping duplicates and
// KindUnknown while preserving first-seen order. TabWidth is clamped
// to a minimum of 1.
func New(tabsPreferred bool, tabWidth int, kinds ...DefectKind) EffectiveStyle {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	s := EffectiveStyle{
		TabsPreferred: tabsPreferred,
		TabWidth:      tabWidth,
	}
	seen := make(map[DefectKind]bool, len(kinds))
	for _, k := range kinds {
		if k == KindUnknown || seen[k] {
			continue
		}
		seen[k] = true
		s.kinds = append(s.kinds, k)
	}
	return s
}

// FromTokens builds an EffectiveStyle from configuration tokens.
// Unrecognized tokens are silently ignored. The "empty" shorthand
// expands to both edge kinds.
func FromTokens(tabsPreferred bool, tabWidth int, tokens []string) EffectiveStyle {
	kinds := make([]DefectKind, 0, len(tokens)+1)
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "empty" {
			kinds = append(kinds, KindEmptyAtStart, KindEmptyAtEnd)
			continue
		}
		kinds = append(kinds, ParseKind(tok))
	}
	return New(tabsPreferred, tabWidth, kinds...)
}

// Kinds returns the active kinds in precedence order.
// The returned slice is a copy.
func (s EffectiveStyle) Kinds() []DefectKind {
	out := make([]DefectKind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Has reports whether the kind is active.
func (s EffectiveStyle) Has(k DefectKind) bool {
	for _, have := range s.kinds {
		if have == k {
			return true
		}
	}
	return false
}

// HasFamily reports whether any variant of the family is active.
func (s EffectiveStyle) HasFamily(f Family) bool {
	for _, have := range s.kinds {
		if have.Family() == f {
			return true
		}
	}
	return false
}

// FamilyWinner selects the single kind of the family that is evaluated
// for this style: the generic kind if present, else the tab variant,
// else the space variant. Returns false when no variant is active.
func (s EffectiveStyle) FamilyWinner(f Family) (DefectKind, bool) {
	var tab, space DefectKind
	for _, have := range s.kinds {
		if have.Family() != f {
			continue
		}
		switch have.Variant() {
		case VariantGeneric:
			return have, true
		case VariantTab:
			tab = have
		case VariantSpace:
			space = have
		}
	}
	if tab != KindUnknown {
		return tab, true
	}
	if space != KindUnknown {
		return space, true
	}
	return KindUnknown, false
}

// IsEmpty reports whether no kinds are active.
func (s EffectiveStyle) IsEmpty() bool {
	return len(s.kinds) == 0
}

// Len returns the number of active kinds.
func (s EffectiveStyle) Len() int {
	return len(s.kinds)
}

// String returns the style as a comma-separated token list.
func (s EffectiveStyle) String() string {
	toks := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		toks[i] = k.String()
	}
	return strings.Join(toks, ",")
}
