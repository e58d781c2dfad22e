package parser

import (
	"strings"

	"github.com/kitten/whatwg-url-minimum/internal/runes"
)

// eof is the virtual sentinel code point past the end of input (spec
// §4.3's "EOF code point").
const eof rune = -1

// inputCursor walks a pre-decoded code-point vector with a rewindable
// pointer, as spec §9 requires: the parser must address code points, not
// UTF-8 bytes, so that a rewind re-examines the same scalar value under
// the next mode.
type inputCursor struct {
	points  []rune
	pointer int
}

func newInputCursor(s string) *inputCursor {
	return &inputCursor{points: []rune(s)}
}

// current returns the code point at the pointer, or eof past the end.
func (c *inputCursor) current() rune {
	if c.pointer < 0 || c.pointer >= len(c.points) {
		return eof
	}
	return c.points[c.pointer]
}

func (c *inputCursor) atEOF() bool { return c.pointer >= len(c.points) }

// advance moves the pointer forward one code point.
func (c *inputCursor) advance() { c.pointer++ }

// rewind decrements the pointer by n code points (spec's "pointer rewind").
func (c *inputCursor) rewind(n int) { c.pointer -= n }

// rewindOne is the common single-code-point rewind used by almost every
// state.
func (c *inputCursor) rewindOne() { c.pointer-- }

// remainingStartsWith reports whether the code points from the pointer
// onward begin with s. Every caller invokes this right after advance() has
// already moved past the code point just examined, so "from the pointer"
// means "the code points following the one the state just matched on".
func (c *inputCursor) remainingStartsWith(s string) bool {
	rest := c.points[min(c.pointer, len(c.points)):]
	return runes.HasPrefix(rest, []rune(s))
}

// remainingFromPointer returns the substring starting at the code point the
// state just read (one before the pointer, since advance() has already run),
// used by the Windows-drive-letter lookahead.
func (c *inputCursor) remainingFromPointer() string {
	start := c.pointer - 1
	if start < 0 {
		start = 0
	}
	if start >= len(c.points) {
		return ""
	}
	var b strings.Builder
	for _, r := range c.points[start:] {
		b.WriteRune(r)
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
