package buffer

import "strings"

// LineEnding identifies the dominant line terminator of a buffer.
type LineEnding string

const (
	// EndingLF is Unix-style "\n".
	EndingLF LineEnding = "\n"

	// EndingCRLF is Windows-style "\r\n".
	EndingCRLF LineEnding = "\r\n"
)

// DetectLineEnding inspects text and returns its dominant terminator.
// A buffer with no newlines, or with mostly bare "\n", reports LF.
func DetectLineEnding(text string) LineEnding {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	if crlf > lf {
		return EndingCRLF
	}
	return EndingLF
}

// LineEnding returns the dominant terminator of the buffer content.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return DetectLineEnding(string(b.data))
}
