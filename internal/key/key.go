// Package key models a single decoded terminal key chord: modifiers plus
// either literal text or a symbolic key. Two producers build Keys — Decode,
// which turns a freshly-read terminal byte run into one (spec §4.1), and
// ParseLiteral, which turns a keymap literal string like "C-S-<left>" into
// the same structure (spec §4.1, "key-literal parser").
package key

import "fmt"

// Special enumerates the symbolic (non-text) keys the decoder recognizes.
type Special int

const (
	None Special = iota
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Delete
	Backspace
	Tab
	Return
	Escape
	Bell
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

var specialNames = map[Special]string{
	Up: "up", Down: "down", Left: "left", Right: "right",
	Home: "home", End: "end", PageUp: "prior", PageDown: "next",
	Delete: "delete", Backspace: "backspace", Tab: "tab", Return: "return",
	Escape: "esc", Bell: "bel",
	F1: "f1", F2: "f2", F3: "f3", F4: "f4", F5: "f5", F6: "f6",
	F7: "f7", F8: "f8", F9: "f9", F10: "f10", F11: "f11", F12: "f12",
}

// Key is a decoded key chord.
type Key struct {
	Ctrl, Meta, Shift, Super bool
	Special                  Special
	Rune                     rune // valid when HasRune is true
	HasRune                  bool
}

// Equal compares two keys for dispatch purposes: same modifiers and same
// payload (either special key or rune).
func (k Key) Equal(o Key) bool {
	if k.Ctrl != o.Ctrl || k.Meta != o.Meta || k.Shift != o.Shift || k.Super != o.Super {
		return false
	}
	if k.Special != o.Special {
		return false
	}
	if k.HasRune != o.HasRune {
		return false
	}
	return !k.HasRune || k.Rune == o.Rune
}

// IsText reports whether k carries printable text suitable for
// insert_char — i.e. not a chord, not a bare control key.
func (k Key) IsText() bool {
	return k.HasRune && !k.Ctrl && !k.Meta && !k.Super && k.Special == None
}

// IsDigit reports whether k is an unmodified ASCII digit, used by the
// command loop's numeric-prefix reader (spec §4.10).
func (k Key) IsDigit() bool {
	return k.IsText() && k.Rune >= '0' && k.Rune <= '9'
}

// Digit returns the numeric value of an IsDigit key.
func (k Key) Digit() int { return int(k.Rune - '0') }

// String renders k the way the echo area displays a chord prefix, e.g.
// "C-x" or "C-S-<left>".
func (k Key) String() string {
	s := ""
	if k.Ctrl {
		s += "C-"
	}
	if k.Meta {
		s += "M-"
	}
	if k.Shift {
		s += "S-"
	}
	if k.Super {
		s += "s-"
	}
	if k.Special != None {
		if name, ok := specialNames[k.Special]; ok {
			return s + "<" + name + ">"
		}
		return s + fmt.Sprintf("<special(%d)>", k.Special)
	}
	if k.HasRune {
		return s + string(k.Rune)
	}
	return s + "<?>"
}
