package editor

import (
	"github.com/cliofy/ted/internal/key"
	"github.com/cliofy/ted/internal/render"
)

// UI is everything the command loop needs from the terminal: reading
// key bytes, drawing a composed frame, and writing to the echo line.
// Satisfied by *term.Terminal; kept as an interface so the loop can be
// driven by a fake terminal in tests.
type UI interface {
	Reader
	Renderer
	Echo
	EchoClear() error
	ScreenAnchor() render.Anchor
}

type Reader interface {
	ReadByteRun(buf []byte) ([]byte, error)
}

type Renderer interface {
	DrawFrame(frame []byte, cursor render.Anchor) error
}

// Run is the main command loop, mirroring main_loop(): redraw, clear any
// transient echo message unless the last command asked to preserve it,
// read one key, accumulate a C-u numeric prefix, walk the keymap (falling
// back to InsertChar for a bare text key, or an "undefined key" error for
// anything else), and repeat until a command sets e.Quit.
func (e *Editor) Run(ui UI) error {
	for !e.Quit {
		frame, cursor := render.Frame(e.Buf, &e.View, &e.Mark, ui.ScreenAnchor())
		if err := ui.DrawFrame(frame, cursor); err != nil {
			return err
		}
		if !e.PreserveEcho {
			if err := ui.EchoClear(); err != nil {
				return err
			}
		}
		e.PreserveEcho = false

		k, err := e.readKey(ui)
		if err != nil {
			return err
		}
		if k.Equal(key.MustParseLiteral("C-g")) {
			Cancel(e, ui)
			continue
		}

		e.dispatch(k, ui)
	}
	return nil
}

// readKey reads one key, first draining any run of C-u numeric-prefix
// digits into e.PrefixArg/e.IsPrefix and echoing the accumulated chord,
// per the original's prefix-argument reader.
func (e *Editor) readKey(ui UI) (key.Key, error) {
	k, err := e.readOneKey(ui)
	if err != nil {
		return key.Key{}, err
	}

	if !k.Equal(key.MustParseLiteral("C-u")) {
		return k, nil
	}

	e.IsPrefix = true
	e.PrefixArg = 4
	ui.EchoInfo("C-u-")

	first := true
	for {
		k, err = e.readOneKey(ui)
		if err != nil {
			return key.Key{}, err
		}
		if !k.IsDigit() {
			return k, nil
		}
		if first {
			e.PrefixArg = k.Digit()
			first = false
		} else {
			e.PrefixArg = e.PrefixArg*10 + k.Digit()
		}
		ui.EchoInfo("C-u-" + k.String())
	}
}

func (e *Editor) readOneKey(ui UI) (key.Key, error) {
	var buf [64]byte
	b, err := ui.ReadByteRun(buf[:])
	if err != nil {
		return key.Key{}, err
	}
	k := key.Decode(b)
	e.LastKey = k
	return k, nil
}

// dispatch walks the keymap starting at globalKeymap, descending through
// nested tables for prefix chords (echoing each chord as it's consumed,
// per the original's echo-as-you-type prefix feedback) until it reaches a
// bound command, a dead end (undefined key), or the user backs out with
// C-g mid-chord.
func (e *Editor) dispatch(k key.Key, ui UI) {
	m := globalKeymap
	prefix := ""
	atTop := true
	for {
		node, ok := m.lookup(k)
		if !ok {
			if atTop && k.IsText() {
				InsertChar(e, ui)
				return
			}
			ui.EchoError(prefix + k.String() + " is undefined.")
			e.IsPrefix = false
			return
		}
		if node.cmd != nil {
			e.logCommand(prefix + k.String())
			node.cmd(e, ui)
			return
		}

		prefix += k.String() + " "
		ui.EchoInfo(prefix)
		m = node.nested
		atTop = false

		var err error
		k, err = e.readOneKey(ui)
		if err != nil {
			return
		}
		if k.Equal(key.MustParseLiteral("C-g")) {
			Cancel(e, ui)
			return
		}
	}
}
