// Package buffer provides the reference host's text storage: a flat
// byte slice with a line index and the edit-batch contract the engine
// emits against. Hosts with their own storage only need to satisfy the
// engine's narrow content interface.
package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset outside the valid buffer range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrEditsOverlap indicates edits overlap or are not in reverse order.
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")

	// ErrReadOnly indicates a write to a read-only buffer.
	ErrReadOnly = errors.New("buffer is read-only")
)

// Buffer is a line-indexed text buffer. All methods are thread-safe.
type Buffer struct {
	mu       sync.RWMutex
	data     []byte
	lines    []int // byte offset of each line start; always begins with 0
	revision uint64
	readOnly bool
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{lines: []int{0}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.data = []byte(s)
	b.reindex()
	return b
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b := New(opts...)
	b.data = data
	b.reindex()
	return b, nil
}

// reindex rebuilds the line-start index. Caller holds the write lock
// (or the buffer is not yet shared).
func (b *Buffer) reindex() {
	b.lines = b.lines[:0]
	b.lines = append(b.lines, 0)
	for i, c := range b.data {
		if c == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.data)
}

// TextRange returns text in [start, end). Out-of-range offsets are
// clamped to the buffer bounds.
func (b *Buffer) TextRange(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start = clamp(start, 0, len(b.data))
	end = clamp(end, start, len(b.data))
	return string(b.data[start:end])
}

// Len returns the total byte length.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of line (0-indexed), without terminator.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	start := b.lines[line]
	end := b.lineEndLocked(line)
	return string(b.data[start:end])
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.data)
	}
	return b.lines[line]
}

// LineEndOffset returns the byte offset of the end of a line, before
// its terminator.
func (b *Buffer) LineEndOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return 0
	}
	if line >= len(b.lines) {
		return len(b.data)
	}
	return b.lineEndLocked(line)
}

func (b *Buffer) lineEndLocked(line int) int {
	if line+1 < len(b.lines) {
		return b.lines[line+1] - 1
	}
	return len(b.data)
}

// OffsetToPoint converts a byte offset to a line/column position.
// Column is a byte offset within the line.
func (b *Buffer) OffsetToPoint(offset int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = clamp(offset, 0, len(b.data))
	line := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i] > offset
	}) - 1
	return Point{Line: line, Column: offset - b.lines[line]}
}

// PointToOffset converts a line/column position to a byte offset.
func (b *Buffer) PointToOffset(p Point) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lines) {
		return len(b.data)
	}
	return clamp(b.lines[p.Line]+p.Column, b.lines[p.Line], len(b.data))
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data) == 0
}

// Revision returns the current revision counter. Every successful
// write increments it.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// IsReadOnly reports whether the buffer rejects writes.
func (b *Buffer) IsReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly toggles the read-only flag.
func (b *Buffer) SetReadOnly(ro bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = ro
}

// Write Operations

// Insert inserts text at offset and returns the end of the insertion.
func (b *Buffer) Insert(offset int, text string) (int, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes [start, end).
func (b *Buffer) Delete(start, end int) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces [start, end) with text and returns the end of the
// replacement.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return 0, ErrReadOnly
	}
	if start < 0 || start > end || end > len(b.data) {
		return 0, ErrRangeInvalid
	}

	b.splice(start, end, text)
	b.revision++
	return start + len(text), nil
}

// ApplyEdits applies a batch atomically. Edits must be non-overlapping
// and in reverse order (highest offset first) so earlier offsets stay
// valid while applying.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}
	for _, e := range edits {
		if e.Range.Start < 0 || e.Range.Start > e.Range.End || e.Range.End > len(b.data) {
			return ErrRangeInvalid
		}
	}

	for _, e := range edits {
		b.splice(e.Range.Start, e.Range.End, e.NewText)
	}
	b.revision++
	return nil
}

// splice performs the raw replacement and refreshes the line index.
// Caller holds the write lock and has validated the range.
func (b *Buffer) splice(start, end int, text string) {
	var sb strings.Builder
	sb.Grow(len(b.data) - (end - start) + len(text))
	sb.Write(b.data[:start])
	sb.WriteString(text)
	sb.Write(b.data[end:])
	b.data = []byte(sb.String())
	b.reindex()
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
