// Package boundary incrementally tracks the extent of all-blank
// regions at the start and end of a buffer.
//
// Detecting empty lines at the buffer edges by scanning on every query
// is wasteful and flickers while the user types at the edge. The
// tracker keeps one marker per edge recording the known extent of the
// empty region, updates it on classification queries and edit
// notifications, and suppresses matches covering the cursor position.
//
// Both edges share one direction-parameterized implementation; the
// observable contract (match spans, cursor exclusion, marker
// invariants) is symmetric.
package boundary

import (
	"fmt"
	"strings"
)

// markerState is the per-edge tracking state.
type markerState uint8

const (
	// stateUnknown forces a rescan from the true buffer edge on the
	// next query. Recoverable, never an error.
	stateUnknown markerState = iota

	// stateBounded means the empty region, if any, extends at most to
	// the recorded position.
	stateBounded
)

func (s markerState) String() string {
	switch s {
	case stateUnknown:
		return "unknown"
	case stateBounded:
		return "bounded"
	default:
		return "invalid"
	}
}

// marker records the known extent of one edge's empty region. For the
// start edge pos is a byte offset from the buffer start; for the end
// edge it is a distance from the buffer end, so edits elsewhere in the
// buffer do not move it.
type marker struct {
	state markerState
	pos   int
}

// Span is a half-open byte range in the buffer.
type Span struct {
	Start int
	End   int
}

// Tracker owns the two edge markers for one buffer. It is exclusively
// owned by the engine instance activated for that buffer and must be
// driven synchronously: every edit notification must arrive before any
// later query observes the changed content.
type Tracker struct {
	bufLen int
	start  marker
	end    marker
}

// NewTracker creates a tracker for a buffer of the given length.
// Both markers begin Unknown.
func NewTracker(bufLen int) *Tracker {
	if bufLen < 0 {
		bufLen = 0
	}
	return &Tracker{bufLen: bufLen}
}

// Len returns the tracked buffer length.
func (t *Tracker) Len() int { return t.bufLen }

// OnEdit records a buffer change replacing [start, end) with newLen
// bytes. A marker whose watched span intersects the edit resets to
// Unknown; otherwise it is untouched (the end marker is stored as a
// tail distance, so it rides out edits before it for free).
func (t *Tracker) OnEdit(start, end, newLen int) {
	if start < 0 {
		start = 0
	}
	if end > t.bufLen {
		end = t.bufLen
	}
	if end < start {
		end = start
	}

	oldLen := t.bufLen
	t.bufLen += newLen - (end - start)

	// Start edge watches [0, marker]. Inserting exactly at the marker
	// can extend the region, so the closed interval is intentional.
	if t.start.state == stateBounded && start <= t.start.pos {
		t.start.state = stateUnknown
	}

	// End edge watches [len-dist, len].
	if t.end.state == stateBounded && end >= oldLen-t.end.pos {
		t.end.state = stateUnknown
	}
}

// QueryStart resolves the empty-at-start defect for a classification
// query over [qStart, qEnd). cursor is the current cursor offset. The
// returned span covers the whole empty region when one is detected and
// intersects the query.
func (t *Tracker) QueryStart(text string, qStart, qEnd, cursor int) (Span, bool) {
	t.bufLen = len(text)

	// Cheap reject: a bounded marker with the query strictly beyond
	// the watched region cannot produce a match.
	if t.start.state == stateBounded && qStart > t.start.pos {
		return Span{}, false
	}

	matchEnd := blankPrefixEnd(text)
	if matchEnd == 0 {
		// No empty region at this edge any more.
		t.start = marker{state: stateBounded, pos: 0}
		return Span{}, false
	}

	// Cursor exclusion: suppress while the cursor sits at the edge or
	// inside the detected span, pinning the marker at the cursor so a
	// later query away from the edge re-detects immediately.
	if cursor == 0 || (cursor > 0 && cursor < matchEnd) {
		t.start = marker{state: stateBounded, pos: clamp(cursor, 0, t.bufLen)}
		return Span{}, false
	}

	t.start = marker{state: stateBounded, pos: matchEnd}
	if qEnd <= 0 || qStart >= matchEnd {
		return Span{}, false
	}
	return Span{Start: 0, End: matchEnd}, true
}

// QueryEnd resolves the empty-at-end defect for a classification query
// over [qStart, qEnd).
func (t *Tracker) QueryEnd(text string, qStart, qEnd, cursor int) (Span, bool) {
	t.bufLen = len(text)

	if t.end.state == stateBounded && qEnd < t.bufLen-t.end.pos {
		return Span{}, false
	}

	matchStart := blankSuffixStart(text)
	if matchStart >= len(text) {
		t.end = marker{state: stateBounded, pos: 0}
		return Span{}, false
	}

	if cursor == t.bufLen || (cursor >= matchStart && cursor < t.bufLen) {
		t.end = marker{state: stateBounded, pos: t.bufLen - clamp(cursor, 0, t.bufLen)}
		return Span{}, false
	}

	t.end = marker{state: stateBounded, pos: t.bufLen - matchStart}
	if qStart >= t.bufLen || qEnd <= matchStart {
		return Span{}, false
	}
	return Span{Start: matchStart, End: t.bufLen}, true
}

// StartMarker returns the start-edge marker position and whether it is
// in the Bounded state. The position invariant is 0 <= pos <= Len.
func (t *Tracker) StartMarker() (int, bool) {
	return t.start.pos, t.start.state == stateBounded
}

// EndMarker returns the end-edge marker as an absolute position.
func (t *Tracker) EndMarker() (int, bool) {
	return t.bufLen - t.end.pos, t.end.state == stateBounded
}

// String describes the tracker state for debugging.
func (t *Tracker) String() string {
	return fmt.Sprintf("boundary{len=%d start=%s@%d end=%s@%d}",
		t.bufLen, t.start.state, t.start.pos, t.end.state, t.end.pos)
}

// blankByteAt reports whether a blank character (space, tab, CR, LF,
// or U+00A0) ends at offset i, and its byte length. U+00A0 is the only
// multi-byte blank, so a two-byte look-back suffices.
func blankByteAt(text string, i int) (int, bool) {
	switch text[i-1] {
	case ' ', '\t', '\n', '\r':
		return 1, true
	case 0xA0:
		if i >= 2 && text[i-2] == 0xC2 {
			return 2, true
		}
	}
	return 0, false
}

// blankPrefixEnd returns the end offset of the run of all-blank lines
// at the buffer start, or 0 when the first line has content. Cost is
// proportional to the empty region, not the buffer.
func blankPrefixEnd(text string) int {
	end := 0
	i := 0
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			i++
			end = i
		case 0xC2:
			if i+1 >= len(text) || text[i+1] != 0xA0 {
				return end
			}
			i += 2
		default:
			return end
		}
	}
	return end
}

// blankSuffixStart returns the start offset of the trailing run of
// all-blank lines, or len(text) when there is none. The run must begin
// at a line start, so a single newline closing a content line is clean.
// Scans backward from the tail; cost is proportional to the empty
// region, not the buffer.
func blankSuffixStart(text string) int {
	j := len(text)
	for j > 0 {
		n, ok := blankByteAt(text, j)
		if !ok {
			break
		}
		j -= n
	}
	if j == len(text) {
		return len(text)
	}
	if j == 0 {
		// The whole buffer is blank.
		return 0
	}
	// text[j-1] is content, so the first line start inside the blank
	// suffix sits after its first newline. Trailing blanks on the last
	// content line alone are not an edge region.
	k := strings.IndexByte(text[j:], '\n')
	if k < 0 {
		return len(text)
	}
	return j + k + 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
