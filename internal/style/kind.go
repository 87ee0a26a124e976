package style

// DefectKind identifies a category of blank defect.
type DefectKind uint8

const (
	// KindUnknown is the zero value; unrecognized tokens parse to it
	// and are silently dropped from styles.
	KindUnknown DefectKind = iota

	// KindEmptyAtStart flags all-blank lines at the beginning of the buffer.
	KindEmptyAtStart
	// KindEmptyAtEnd flags all-blank lines at the end of the buffer.
	KindEmptyAtEnd
	// KindTrailing flags space/tab runs before a line terminator.
	KindTrailing

	// KindIndentation flags non-canonical leading whitespace, resolving
	// to tab or space behavior via the tabs-preferred flag.
	KindIndentation
	// KindIndentationTab forces the tab-mode indentation pattern.
	KindIndentationTab
	// KindIndentationSpace forces the space-mode indentation pattern.
	KindIndentationSpace

	// KindSpaceBeforeTab flags space runs immediately preceding a tab.
	KindSpaceBeforeTab
	// KindSpaceBeforeTabTab forces the tab-mode space-before-tab pattern.
	KindSpaceBeforeTabTab
	// KindSpaceBeforeTabSpace forces the space-mode space-before-tab pattern.
	KindSpaceBeforeTabSpace

	// KindSpaceAfterTab flags long space runs immediately following a tab.
	KindSpaceAfterTab
	// KindSpaceAfterTabTab forces the tab-mode space-after-tab pattern.
	KindSpaceAfterTabTab
	// KindSpaceAfterTabSpace forces the space-mode space-after-tab pattern.
	KindSpaceAfterTabSpace
)

// String returns the configuration token for the kind.
func (k DefectKind) String() string {
	switch k {
	case KindEmptyAtStart:
		return "empty-at-start"
	case KindEmptyAtEnd:
		return "empty-at-end"
	case KindTrailing:
		return "trailing"
	case KindIndentation:
		return "indentation"
	case KindIndentationTab:
		return "indentation::tab"
	case KindIndentationSpace:
		return "indentation::space"
	case KindSpaceBeforeTab:
		return "space-before-tab"
	case KindSpaceBeforeTabTab:
		return "space-before-tab::tab"
	case KindSpaceBeforeTabSpace:
		return "space-before-tab::space"
	case KindSpaceAfterTab:
		return "space-after-tab"
	case KindSpaceAfterTabTab:
		return "space-after-tab::tab"
	case KindSpaceAfterTabSpace:
		return "space-after-tab::space"
	default:
		return "unknown"
	}
}

// ParseKind parses a configuration token into a DefectKind.
// Unrecognized tokens return KindUnknown; callers drop them silently.
func ParseKind(s string) DefectKind {
	switch s {
	case "empty-at-start":
		return KindEmptyAtStart
	case "empty-at-end":
		return KindEmptyAtEnd
	case "empty":
		// Shorthand enabling both edge kinds is expanded by NewStyle
		// callers; on its own it maps to the start kind.
		return KindEmptyAtStart
	case "trailing":
		return KindTrailing
	case "indentation":
		return KindIndentation
	case "indentation::tab":
		return KindIndentationTab
	case "indentation::space":
		return KindIndentationSpace
	case "space-before-tab":
		return KindSpaceBeforeTab
	case "space-before-tab::tab":
		return KindSpaceBeforeTabTab
	case "space-before-tab::space":
		return KindSpaceBeforeTabSpace
	case "space-after-tab":
		return KindSpaceAfterTab
	case "space-after-tab::tab":
		return KindSpaceAfterTabTab
	case "space-after-tab::space":
		return KindSpaceAfterTabSpace
	default:
		return KindUnknown
	}
}

// Family groups kinds that are variants of one defect pattern.
type Family uint8

const (
	// FamilyNone marks kinds without tab/space variants.
	FamilyNone Family = iota
	// FamilyIndentation groups the indentation triple.
	FamilyIndentation
	// FamilySpaceBeforeTab groups the space-before-tab triple.
	FamilySpaceBeforeTab
	// FamilySpaceAfterTab groups the space-after-tab triple.
	FamilySpaceAfterTab
)

// Variant identifies the tab/space flavor of a kind within its family.
type Variant uint8

const (
	// VariantGeneric resolves via the tabs-preferred flag.
	VariantGeneric Variant = iota
	// VariantTab forces the tab-mode pattern.
	VariantTab
	// VariantSpace forces the space-mode pattern.
	VariantSpace
)

// Family returns the variant family for the kind, or FamilyNone.
func (k DefectKind) Family() Family {
	switch k {
	case KindIndentation, KindIndentationTab, KindIndentationSpace:
		return FamilyIndentation
	case KindSpaceBeforeTab, KindSpaceBeforeTabTab, KindSpaceBeforeTabSpace:
		return FamilySpaceBeforeTab
	case KindSpaceAfterTab, KindSpaceAfterTabTab, KindSpaceAfterTabSpace:
		return FamilySpaceAfterTab
	default:
		return FamilyNone
	}
}

// Variant returns the tab/space flavor of the kind.
func (k DefectKind) Variant() Variant {
	switch k {
	case KindIndentationTab, KindSpaceBeforeTabTab, KindSpaceAfterTabTab:
		return VariantTab
	case KindIndentationSpace, KindSpaceBeforeTabSpace, KindSpaceAfterTabSpace:
		return VariantSpace
	default:
		return VariantGeneric
	}
}

// Generic returns the generic kind of k's family, or k itself when the
// kind has no variants.
func (k DefectKind) Generic() DefectKind {
	switch k.Family() {
	case FamilyIndentation:
		return KindIndentation
	case FamilySpaceBeforeTab:
		return KindSpaceBeforeTab
	case FamilySpaceAfterTab:
		return KindSpaceAfterTab
	default:
		return k
	}
}

// IsEdge reports whether the kind is one of the buffer-edge kinds
// tracked incrementally by the boundary tracker.
func (k DefectKind) IsEdge() bool {
	return k == KindEmptyAtStart || k == KindEmptyAtEnd
}

// CursorSuppressible reports whether live classification suppresses a
// match of this kind at the cursor position.
func (k DefectKind) CursorSuppressible() bool {
	return k == KindTrailing || k == KindEmptyAtStart || k == KindEmptyAtEnd
}
