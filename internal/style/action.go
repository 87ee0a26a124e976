package style

// Action is a host policy evaluated around engine lifecycle events.
// The engine only reports which actions are in effect; invoking them
// is the host's responsibility.
type Action uint8

const (
	// ActionUnknown is the zero value for unrecognized tokens.
	ActionUnknown Action = iota
	// ActionCleanupOnActivate requests a full cleanup when the engine
	// is activated for a buffer.
	ActionCleanupOnActivate
	// ActionReportOnActivate requests a defect report on activation.
	ActionReportOnActivate
	// ActionCleanupOnSave requests a full cleanup before saving.
	ActionCleanupOnSave
	// ActionAbortSaveOnBogus aborts a save when defects are present.
	ActionAbortSaveOnBogus
	// ActionWarnOnReadOnly warns instead of failing silently when
	// cleanup targets a read-only buffer.
	ActionWarnOnReadOnly
)

// String returns the configuration token for the action.
func (a Action) String() string {
	switch a {
	case ActionCleanupOnActivate:
		return "cleanup-on-activate"
	case ActionReportOnActivate:
		return "report-on-bogus-on-activate"
	case ActionCleanupOnSave:
		return "cleanup-on-save"
	case ActionAbortSaveOnBogus:
		return "abort-save-on-bogus"
	case ActionWarnOnReadOnly:
		return "warn-on-readonly"
	default:
		return "unknown"
	}
}

// ParseAction parses a configuration token into an Action.
// Unrecognized tokens return ActionUnknown; callers drop them silently.
func ParseAction(s string) Action {
	switch s {
	case "cleanup-on-activate":
		return ActionCleanupOnActivate
	case "report-on-bogus-on-activate":
		return ActionReportOnActivate
	case "cleanup-on-save":
		return ActionCleanupOnSave
	case "abort-save-on-bogus":
		return ActionAbortSaveOnBogus
	case "warn-on-readonly":
		return ActionWarnOnReadOnly
	default:
		return ActionUnknown
	}
}

// ActionEntry is one row of a layered action table.
type ActionEntry struct {
	// Key selects the entry (regexp for file tables, literal for mode tables).
	Key string

	// Tokens are action configuration tokens.
	Tokens []string
}

// ResolveActions produces the effective action set for a buffer using
// the same first-match-wins precedence as Resolve. Unknown tokens are
// dropped; duplicates are removed preserving first-seen order.
func ResolveActions(fileID, modeID string, perFile, perMode []ActionEntry, def []Action) []Action {
	if e, ok := matchActionFile(fileID, perFile); ok {
		return parseActions(e.Tokens)
	}
	for _, e := range perMode {
		if e.Key == modeID {
			return parseActions(e.Tokens)
		}
	}
	return dedupeActions(def)
}

func matchActionFile(fileID string, entries []ActionEntry) (ActionEntry, bool) {
	styleEntries := make([]Entry, len(entries))
	for i, e := range entries {
		styleEntries[i] = Entry{Key: e.Key}
	}
	for i, e := range entries {
		if _, ok := matchFile(fileID, styleEntries[i : i+1]); ok {
			return e, true
		}
	}
	return ActionEntry{}, false
}

func parseActions(tokens []string) []Action {
	actions := make([]Action, 0, len(tokens))
	for _, tok := range tokens {
		actions = append(actions, ParseAction(tok))
	}
	return dedupeActions(actions)
}

func dedupeActions(actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	seen := make(map[Action]bool, len(actions))
	for _, a := range actions {
		if a == ActionUnknown || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// HasAction reports whether the action set contains a.
func HasAction(actions []Action, a Action) bool {
	for _, have := range actions {
		if have == a {
			return true
		}
	}
	return false
}
