// Package engine is the host-facing facade. A Registry holds one
// Engine per activated buffer; the Engine resolves the buffer's
// effective style once, then answers classification queries, tracks
// buffer-edge state across edits, and produces cleanup edit batches.
//
// The engine never mutates content. Cleanup returns edits ordered
// highest offset first so the host can apply them directly; the
// reference buffer's ApplyEdits accepts that order as a batch.
package engine

import (
	"sort"
	"sync"

	"github.com/dshills/blankline/internal/boundary"
	"github.com/dshills/blankline/internal/classify"
	"github.com/dshills/blankline/internal/cleanup"
	"github.com/dshills/blankline/internal/config"
	"github.com/dshills/blankline/internal/logging"
	"github.com/dshills/blankline/internal/pattern"
	"github.com/dshills/blankline/internal/style"
)

// Content is the minimal view of a buffer the engine needs. The
// reference implementation is the buffer package; hosts with their own
// storage satisfy this directly.
type Content interface {
	// Text returns the full buffer content.
	Text() string

	// Len returns the content length in bytes.
	Len() int
}

// ReadOnlyReporter is optionally implemented by content that can be
// write-protected. Cleanup refuses read-only content.
type ReadOnlyReporter interface {
	IsReadOnly() bool
}

// Defect is a located whitespace defect in buffer coordinates.
type Defect struct {
	Kind  style.DefectKind
	Start int
	End   int
}

// Engine is the per-buffer facade. Notifications and queries must be
// serialized by the host in buffer order: every edit notification must
// arrive before a later query observes the changed content. Methods
// are safe for concurrent use across buffers, not within one.
type Engine struct {
	mu sync.Mutex

	id      string
	bufID   string
	content Content
	fileID  string
	modeID  string

	st       style.EffectiveStyle
	actions  []style.Action
	patterns *pattern.Registry
	tracker  *boundary.Tracker
	cursor   int

	log *logging.Logger
}

// ID returns the unique activation identifier.
func (e *Engine) ID() string { return e.id }

// BufferID returns the host's buffer identifier.
func (e *Engine) BufferID() string { return e.bufID }

// FileID returns the file identifier recorded at activation.
func (e *Engine) FileID() string { return e.fileID }

// ModeID returns the mode identifier recorded at activation.
func (e *Engine) ModeID() string { return e.modeID }

// Style returns the resolved effective style.
func (e *Engine) Style() style.EffectiveStyle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Actions returns the resolved host action set.
func (e *Engine) Actions() []style.Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]style.Action, len(e.actions))
	copy(out, e.actions)
	return out
}

// HasAction reports whether the given action is in effect.
func (e *Engine) HasAction(a style.Action) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return style.HasAction(e.actions, a)
}

// OnEdit records a content change replacing [start, end) with newLen
// bytes. Call after the content has been mutated.
func (e *Engine) OnEdit(start, end, newLen int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.OnEdit(start, end, newLen)
}

// OnCursorMove records the current cursor offset. The cursor position
// suppresses buffer-edge defects the user is currently typing inside.
func (e *Engine) OnCursorMove(offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = offset
}

// Cursor returns the last recorded cursor offset.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// QueryDefects reports defects of the active kinds within [start, end),
// ordered by buffer position. Buffer-edge kinds come from the
// incremental tracker and honor cursor exclusion; all other kinds come
// from pattern classification.
func (e *Engine) QueryDefects(start, end int) ([]Defect, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queryLocked(start, end, e.cursor)
}

func (e *Engine) queryLocked(start, end, cursor int) ([]Defect, error) {
	text := e.content.Text()

	matches, err := classify.Classify(text, start, end, e.st, e.patterns)
	if err != nil {
		return nil, err
	}

	defects := make([]Defect, 0, len(matches)+2)

	if e.st.Has(style.KindEmptyAtStart) {
		if span, ok := e.tracker.QueryStart(text, start, end, cursor); ok {
			defects = append(defects, Defect{Kind: style.KindEmptyAtStart, Start: span.Start, End: span.End})
		}
	}

	for _, m := range matches {
		// A trailing run the cursor sits in, or immediately after, is
		// being typed right now; hide it until the cursor leaves. The
		// save check passes cursor -1 and sees everything.
		if cursor >= 0 && m.Kind.CursorSuppressible() && m.Start <= cursor && cursor <= m.End {
			continue
		}
		defects = append(defects, Defect{Kind: m.Kind, Start: m.Start, End: m.End})
	}

	if e.st.Has(style.KindEmptyAtEnd) {
		if span, ok := e.tracker.QueryEnd(text, start, end, cursor); ok {
			defects = append(defects, Defect{Kind: style.KindEmptyAtEnd, Start: span.Start, End: span.End})
		}
	}

	// The edge spans can start inside or before line-scoped matches,
	// so re-sort the merged set by position.
	sort.Slice(defects, func(i, j int) bool {
		if defects[i].Start != defects[j].Start {
			return defects[i].Start < defects[j].Start
		}
		if defects[i].End != defects[j].End {
			return defects[i].End < defects[j].End
		}
		return defects[i].Kind < defects[j].Kind
	})
	return defects, nil
}

// Clean produces cleanup edits for [start, end). Line-scoped defects
// only; the edge kinds are whole-buffer and handled by CleanAll.
func (e *Engine) Clean(start, end int) ([]cleanup.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return nil, err
	}
	return cleanup.Clean(e.content.Text(), start, end, e.st, e.patterns)
}

// CleanAll produces cleanup edits for the whole buffer, including the
// buffer-edge empty-line kinds.
func (e *Engine) CleanAll() ([]cleanup.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritable(); err != nil {
		return nil, err
	}
	return cleanup.CleanAll(e.content.Text(), e.st, e.patterns)
}

// OnSave evaluates the save-time actions. With abort-save-on-bogus in
// effect and defects present it returns ErrDefectsPresent; with
// cleanup-on-save it returns the edits to apply before writing.
// Cursor exclusion does not apply to the save check.
func (e *Engine) OnSave() ([]cleanup.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if style.HasAction(e.actions, style.ActionAbortSaveOnBogus) {
		defects, err := e.queryLocked(0, e.content.Len(), -1)
		if err != nil {
			return nil, err
		}
		if len(defects) > 0 {
			return nil, ErrDefectsPresent
		}
	}

	if style.HasAction(e.actions, style.ActionCleanupOnSave) {
		if err := e.checkWritable(); err != nil {
			return nil, err
		}
		return cleanup.CleanAll(e.content.Text(), e.st, e.patterns)
	}
	return nil, nil
}

// checkWritable enforces the read-only policy. Caller holds the lock.
func (e *Engine) checkWritable() error {
	ro, ok := e.content.(ReadOnlyReporter)
	if !ok || !ro.IsReadOnly() {
		return nil
	}
	if style.HasAction(e.actions, style.ActionWarnOnReadOnly) {
		e.log.Warn("cleanup skipped: buffer %s is read-only", e.bufID)
	}
	return ErrReadOnly
}

// resolve recomputes the style and actions from the tables. Caller
// holds the lock. The boundary tracker survives so markers stay warm
// across a config reload.
func (e *Engine) resolve(tables *config.Tables) {
	e.st = tables.ResolveStyle(e.fileID, e.modeID)
	e.actions = tables.ResolveActions(e.fileID, e.modeID)
}
