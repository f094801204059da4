package key

import (
	"fmt"
	"strings"
)

var namedSpecials = map[string]Special{
	"up": Up, "down": Down, "left": Left, "right": Right,
	"home": Home, "end": End, "prior": PageUp, "next": PageDown,
	"delete": Delete, "backspace": Backspace, "tab": Tab,
	"return": Return, "cr": Return, "esc": Escape, "bel": Bell,
	"f1": F1, "f2": F2, "f3": F3, "f4": F4, "f5": F5, "f6": F6,
	"f7": F7, "f8": F8, "f9": F9, "f10": F10, "f11": F11, "f12": F12,
}

// ParseLiteral decodes a keymap literal such as "C-x", "M-%", or
// "C-S-<left>" into a Key, the way the keymap stores bindings and decodes
// them lazily at dispatch (spec §4.1, §4.10). Modifier prefixes "C-",
// "M-", "S-", "s-" may repeat in any order; what follows is either a
// single literal byte or a "<name>" token.
func ParseLiteral(s string) (Key, error) {
	var k Key
	for {
		switch {
		case strings.HasPrefix(s, "C-"):
			k.Ctrl = true
			s = s[2:]
		case strings.HasPrefix(s, "M-"):
			k.Meta = true
			s = s[2:]
		case strings.HasPrefix(s, "S-"):
			k.Shift = true
			s = s[2:]
		case strings.HasPrefix(s, "s-"):
			k.Super = true
			s = s[2:]
		default:
			goto payload
		}
	}
payload:
	if s == "" {
		return Key{}, fmt.Errorf("key literal: empty payload")
	}

	if strings.HasPrefix(s, "<") {
		name, ok := strings.CutSuffix(s[1:], ">")
		if !ok {
			return Key{}, fmt.Errorf("key literal: unterminated <%s", s[1:])
		}
		if name == "space" {
			k.Rune = ' '
			k.HasRune = true
			return k, nil
		}
		sp, ok := namedSpecials[name]
		if !ok {
			return Key{}, fmt.Errorf("key literal: unknown special %q", name)
		}
		k.Special = sp
		return k, nil
	}

	r := []rune(s)
	if len(r) != 1 {
		return Key{}, fmt.Errorf("key literal: payload %q is not a single character", s)
	}
	k.Rune = r[0]
	k.HasRune = true
	return k, nil
}

// MustParseLiteral is ParseLiteral for keymap table construction, where a
// bad literal is a programming error, not a runtime condition.
func MustParseLiteral(s string) Key {
	k, err := ParseLiteral(s)
	if err != nil {
		panic(err)
	}
	return k
}
