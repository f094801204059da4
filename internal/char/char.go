// Package char models the logical character unit ted's buffer is built
// from: either a newline marker or a UTF-8 codepoint. It is the Go
// equivalent of the teacher's terminal.TerminalCharacter, trimmed to the
// editor's needs (no styling, no display-side width table — width here is
// always resolved against a target column via layout.NextCol).
package char

import "unicode/utf8"

// Kind distinguishes the two tags a Char can carry.
type Kind uint8

const (
	// Newline is a line-break marker. It occupies no column of its own;
	// the layout package treats it as a hard wrap to column 0.
	Newline Kind = iota
	// Rune is a UTF-8 codepoint, 1 to 4 bytes.
	Rune
)

// Char is a single logical character in the buffer.
type Char struct {
	kind  Kind
	bytes [4]byte
	n     uint8 // number of valid bytes in bytes; 0 for Newline
}

// NewNewline returns the newline marker character.
func NewNewline() Char {
	return Char{kind: Newline}
}

// NewFromRune encodes r as a UTF-8 Char. r must not be '\n'; callers use
// NewNewline for line breaks.
func NewFromRune(r rune) Char {
	var c Char
	c.kind = Rune
	c.n = uint8(utf8.EncodeRune(c.bytes[:], r))
	return c
}

// NewFromBytes wraps a pre-decoded UTF-8 byte run (1..4 bytes) as a Char,
// without re-validating it. Used by the file loader, which has already
// classified the run's length from its leading byte per spec §6.
func NewFromBytes(b []byte) Char {
	var c Char
	c.kind = Rune
	c.n = uint8(copy(c.bytes[:], b))
	return c
}

// IsNewline reports whether c is the newline marker.
func (c Char) IsNewline() bool { return c.kind == Newline }

// IsTab reports whether c is the horizontal tab character.
func (c Char) IsTab() bool { return c.kind == Rune && c.n == 1 && c.bytes[0] == '\t' }

// Bytes returns the character's UTF-8 encoding. For Newline it returns a
// single '\n' byte, matching the on-disk unix representation.
func (c Char) Bytes() []byte {
	if c.kind == Newline {
		return []byte{'\n'}
	}
	return append([]byte(nil), c.bytes[:c.n]...)
}

// Rune decodes the character back to a rune. Returns '\n' for Newline.
func (c Char) Rune() rune {
	if c.kind == Newline {
		return '\n'
	}
	r, _ := utf8.DecodeRune(c.bytes[:c.n])
	return r
}

// Equal compares tag and exact byte sequence, per spec §3.
func (c Char) Equal(other Char) bool {
	if c.kind != other.kind {
		return false
	}
	if c.kind == Newline {
		return true
	}
	if c.n != other.n {
		return false
	}
	for i := uint8(0); i < c.n; i++ {
		if c.bytes[i] != other.bytes[i] {
			return false
		}
	}
	return true
}

// BaseWidth is the column width of c outside of the tab/wrap rules that
// layout.NextCol applies: 0 for newline, 1 for everything else (tab
// included — its true width depends on the current column, so layout
// resolves it separately).
func (c Char) BaseWidth() int {
	if c.kind == Newline {
		return 0
	}
	return 1
}
