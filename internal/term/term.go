// Package term owns the controlling terminal: raw-mode enter/restore,
// the low-level writes the renderer and echo area need, and the startup
// handshake (reserve_screen) that finds out where the screen and echo
// line live by asking the terminal to report the cursor position.
// Grounded on the original's terminal_setup/terminal_reset/reserve_screen/
// cpr (_examples/original_source/src/ted.c lines 657-731, 787-802,
// 963-987), translated from raw termios calls to golang.org/x/term.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/cliofy/ted/internal/render"
)

const (
	infoPre  = "\x1b[33m"
	errorPre = "\x1b[31m\x1b[1m"
	reset    = "\x1b[m"
)

// Terminal wraps a raw-mode controlling tty plus the screen/echo-line
// anchors discovered at startup.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
	fd     int
	oldState *term.State

	NLines, NCols int

	ScreenBegin render.Anchor
	EchoBegin   render.Anchor
}

// IsTerminal reports whether f is a terminal, used at startup to refuse
// to run against a redirected stdin.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// New wraps the given tty file descriptors for raw-mode use.
func New(in *os.File, out io.Writer, nlines, ncols int) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
		fd:     int(in.Fd()),
		NLines: nlines,
		NCols:  ncols,
	}
}

// Setup puts the tty into raw mode, remembering the prior state for
// Restore. Mirrors terminal_setup's cfmakeraw + atexit(terminal_reset).
func (t *Terminal) Setup() error {
	st, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("term: setup: %w", err)
	}
	t.oldState = st
	return nil
}

// Restore returns the tty to its state from before Setup.
func (t *Terminal) Restore() error {
	if t.oldState == nil {
		return nil
	}
	return term.Restore(t.fd, t.oldState)
}

// ReadByteRun reads whatever is immediately available from the tty (a
// single keystroke's worth of bytes, per key.Decode's batch-decode
// contract) into buf, returning the slice read.
func (t *Terminal) ReadByteRun(buf []byte) ([]byte, error) {
	n, err := t.reader.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (t *Terminal) write(b []byte) error {
	_, err := t.out.Write(b)
	return err
}

// cursorPositionReport asks the terminal where the cursor is (CSI 6n) and
// parses the "ESC [ row ; col R" reply, exactly as cpr() does.
func (t *Terminal) cursorPositionReport() (render.Anchor, error) {
	if err := t.write([]byte("\x1b[6n")); err != nil {
		return render.Anchor{}, err
	}
	buf := make([]byte, 32)
	n, err := t.reader.Read(buf)
	if err != nil {
		return render.Anchor{}, fmt.Errorf("term: cpr: %w", err)
	}
	return parseCursorPositionReport(buf[:n])
}

// parseCursorPositionReport scans a "\x1b[row;colR" reply. The reply is
// the one fixed shape cpr() ever receives, so a Sscanf match is simpler
// and more honest than routing it through a general CSI parser.
func parseCursorPositionReport(b []byte) (render.Anchor, error) {
	var row, col int
	if n, err := fmt.Sscanf(string(b), "\x1b[%d;%dR", &row, &col); err != nil || n != 2 {
		return render.Anchor{}, fmt.Errorf("term: cpr: unexpected reply %q", b)
	}
	return render.Anchor{Row: row, Col: col}, nil
}

// ReserveScreen prints NLines blank rows to make room on the screen, then
// asks the terminal to report the cursor position twice (before and after
// moving down NLines) to learn ScreenBegin and EchoBegin — reserve_screen's
// exact dance.
func (t *Terminal) ReserveScreen() error {
	for i := 0; i < t.NLines; i++ {
		if err := t.write([]byte("\r\x1b[K\n")); err != nil {
			return err
		}
	}
	if err := t.write([]byte("\x1b[K")); err != nil {
		return err
	}
	if err := t.write([]byte(fmt.Sprintf("\x1b[%dA", t.NLines))); err != nil {
		return err
	}

	begin, err := t.cursorPositionReport()
	if err != nil {
		return err
	}
	t.ScreenBegin = begin

	if err := t.write([]byte(fmt.Sprintf("\x1b[%dB", t.NLines))); err != nil {
		return err
	}
	echo, err := t.cursorPositionReport()
	if err != nil {
		return err
	}
	t.EchoBegin = echo

	return t.write(render.GotoSequence(t.ScreenBegin))
}

// DrawFrame writes a composed frame at ScreenBegin, then returns the
// cursor to its logical screen position, bracketed by save/restore so any
// concurrent echo-area write isn't disturbed (screenbuf_draw).
func (t *Terminal) DrawFrame(frame []byte, cursor render.Anchor) error {
	if err := t.write(render.SaveCursorSequence()); err != nil {
		return err
	}
	if err := t.write(render.GotoSequence(t.ScreenBegin)); err != nil {
		return err
	}
	if err := t.write(frame); err != nil {
		return err
	}
	if err := t.write(render.RestoreCursorSequence()); err != nil {
		return err
	}
	return t.write(render.GotoSequence(cursor))
}

// ScreenAnchor returns the screen position the buffer's top-left is
// drawn at, for callers composing a frame via render.Frame.
func (t *Terminal) ScreenAnchor() render.Anchor { return t.ScreenBegin }

// EchoInfo writes a transient yellow message to the echo line.
func (t *Terminal) EchoInfo(msg string) error {
	return t.echo(infoPre + msg + reset + "\x1b[K")
}

// EchoError writes a red/bold error message to the echo line.
func (t *Terminal) EchoError(msg string) error {
	return t.echo(errorPre + msg + reset + "\x1b[K")
}

// EchoClear blanks the echo line.
func (t *Terminal) EchoClear() error {
	return t.echo("\x1b[K")
}

func (t *Terminal) echo(s string) error {
	if err := t.write(render.SaveCursorSequence()); err != nil {
		return err
	}
	if err := t.write(render.GotoSequence(t.EchoBegin)); err != nil {
		return err
	}
	if err := t.write([]byte(s)); err != nil {
		return err
	}
	return t.write(render.RestoreCursorSequence())
}

// ClearScreen homes the cursor to ScreenBegin and clears from there down,
// used on quit.
func (t *Terminal) ClearScreen() error {
	if err := t.write(render.GotoSequence(t.ScreenBegin)); err != nil {
		return err
	}
	return t.write([]byte("\x1b[J"))
}
