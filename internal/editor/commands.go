package editor

import (
	"fmt"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/key"
)

// Echo is satisfied by whatever owns the terminal's echo line; commands
// call it instead of writing escapes directly so they stay terminal-
// agnostic and testable without a tty.
type Echo interface {
	EchoInfo(msg string) error
	EchoError(msg string) error
}

// Command is a bound, zero-argument editor action, matching the
// original's "void (*cmd)()" keymap entries.
type Command func(e *Editor, echo Echo)

// --- Motion commands (spec §4.5) -----------------------------------------

func ForwardChar(e *Editor, _ Echo) { e.View.ForwardChar(e.Buf, e.repeat()) }

func BackwardChar(e *Editor, _ Echo) { e.View.BackwardChar(e.Buf, e.repeat()) }

func isWhitespace(c char.Char) bool {
	return c.IsNewline() || c.IsTab() || (c.Rune() == ' ')
}

func ForwardWord(e *Editor, _ Echo) {
	repeat := e.repeat()
	if e.Buf.IsEmpty() {
		return
	}
	for ; repeat > 0; repeat-- {
		if e.Buf.Point() >= e.Buf.Len() {
			return
		}
		for {
			c, ok := e.Buf.CharAt(e.Buf.Point())
			if !ok || !isWhitespace(c) {
				break
			}
			e.View.ForwardChar(e.Buf, 1)
		}
		for {
			c, ok := e.Buf.CharAt(e.Buf.Point())
			if !ok || isWhitespace(c) {
				break
			}
			e.View.ForwardChar(e.Buf, 1)
		}
	}
}

func isAtBeginningOfWord(e *Editor) bool {
	if e.Buf.IsEmpty() || e.Buf.Point() >= e.Buf.Len() {
		return false
	}
	p, _ := e.Buf.CharAt(e.Buf.Point())
	if e.Buf.Point() == 0 {
		return !isWhitespace(p)
	}
	q, _ := e.Buf.CharAt(e.Buf.Point() - 1)
	return !isWhitespace(p) && isWhitespace(q)
}

func BackwardWord(e *Editor, _ Echo) {
	repeat := e.repeat()
	if e.Buf.IsEmpty() {
		return
	}
	for ; repeat > 0; repeat-- {
		if isAtBeginningOfWord(e) || e.Buf.Point() >= e.Buf.Len() {
			e.View.BackwardChar(e.Buf, 1)
		}
		for {
			c, ok := e.Buf.CharAt(e.Buf.Point())
			if !ok || !isWhitespace(c) {
				break
			}
			e.View.BackwardChar(e.Buf, 1)
			if e.Buf.Point() == 0 {
				return
			}
		}
		for {
			c, ok := e.Buf.CharAt(e.Buf.Point())
			if !ok || isWhitespace(c) {
				break
			}
			e.View.BackwardChar(e.Buf, 1)
			if e.Buf.Point() == 0 {
				return
			}
		}
		e.View.ForwardChar(e.Buf, 1)
	}
}

func ForwardParagraph(e *Editor, _ Echo) {
	repeat := e.repeat()
	if e.Buf.IsEmpty() {
		return
	}
	for ; repeat > 0; repeat-- {
		if e.Buf.Point() >= e.Buf.Len() {
			return
		}
		for {
			c, ok := e.Buf.CharAt(e.Buf.Point())
			if !ok || !isWhitespace(c) {
				break
			}
			e.View.ForwardChar(e.Buf, 1)
		}
		newlineRun := 0
		for e.Buf.Point() < e.Buf.Len() {
			c, _ := e.Buf.CharAt(e.Buf.Point())
			if c.IsNewline() {
				newlineRun++
				if newlineRun == 2 {
					break
				}
			} else {
				newlineRun = 0
			}
			e.View.ForwardChar(e.Buf, 1)
		}
	}
}

func BackwardParagraph(e *Editor, _ Echo) {
	repeat := e.repeat()
	if e.Buf.IsEmpty() {
		return
	}
	for ; repeat > 0; repeat-- {
		if e.Buf.Point() == 0 {
			return
		}
		e.View.BackwardChar(e.Buf, 1)
		for e.Buf.Point() != 0 {
			c, _ := e.Buf.CharAt(e.Buf.Point())
			if !isWhitespace(c) {
				break
			}
			e.View.BackwardChar(e.Buf, 1)
		}
		newlineRun := 0
		for e.Buf.Point() != 0 {
			c, _ := e.Buf.CharAt(e.Buf.Point())
			if c.IsNewline() {
				newlineRun++
				if newlineRun == 2 {
					for e.Buf.Point() < e.Buf.Len() {
						c, _ := e.Buf.CharAt(e.Buf.Point())
						if !isWhitespace(c) {
							break
						}
						e.View.ForwardChar(e.Buf, 1)
					}
					break
				}
			} else {
				newlineRun = 0
			}
			e.View.BackwardChar(e.Buf, 1)
		}
	}
}

func NextRow(e *Editor, _ Echo) { e.View.NextRow(e.Buf, e.repeat()) }

func PreviousRow(e *Editor, _ Echo) { e.View.PreviousRow(e.Buf, e.repeat()) }

func BeginningOfRow(e *Editor, _ Echo) { e.View.BeginningOfRow(e.Buf) }

func EndOfRow(e *Editor, _ Echo) { e.View.EndOfRow(e.Buf) }

func BeginningOfLine(e *Editor, _ Echo) { e.View.BeginningOfLine(e.Buf) }

func EndOfLine(e *Editor, _ Echo) { e.View.EndOfLine(e.Buf) }

func BeginningOfBuffer(e *Editor, _ Echo) { e.View.BeginningOfBuffer(e.Buf) }

func EndOfBuffer(e *Editor, _ Echo) { e.View.EndOfBuffer(e.Buf) }

func GotoLine(e *Editor, _ Echo) {
	n := 1
	if e.IsPrefix && e.PrefixArg >= 1 {
		n = e.PrefixArg
	}
	e.IsPrefix = false
	e.View.GotoLine(e.Buf, n)
}

func GotoPercent(e *Editor, _ Echo) {
	p := 0
	if e.IsPrefix && e.PrefixArg >= 0 {
		p = e.PrefixArg
	}
	e.IsPrefix = false
	e.View.GotoPercent(e.Buf, p)
}

func PageDown(e *Editor, _ Echo) { e.View.PageDown(e.Buf, e.repeat()) }

func PageUp(e *Editor, _ Echo) { e.View.PageUp(e.Buf, e.repeat()) }

func ScrollUp(e *Editor, _ Echo) { e.View.ScrollUp(e.Buf, e.repeat()) }

func ScrollDown(e *Editor, _ Echo) { e.View.ScrollDown(e.Buf, e.repeat()) }

func SetGoalColumn(e *Editor, _ Echo) { e.View.SetGoalColumn() }

// --- Editing commands (spec §4.6) ----------------------------------------

func (e *Editor) doInsertChar(c char.Char) {
	e.IsDirty = true
	if e.View.CursorRow == 0 && e.View.CursorCol == 0 && e.Buf.Point() == 0 {
		e.View.Top = e.Buf.Point()
		e.View.HasTop = true
	}
	e.Buf.Insert(c)

	// Insert already advanced the point; recompute the cursor's row/column
	// the same way forward_char's side effects would, without moving the
	// point again.
	col := nextColAfterInsert(e, c)
	if col == 0 {
		if e.View.CursorRow == e.View.NLines-1 {
			e.View.ScrollUp(e.Buf, 1)
		}
		e.View.CursorRow++
	}
	e.View.CursorCol = col
	if !e.View.ForceGoalCol {
		e.View.GoalCol = col
	}
}

func nextColAfterInsert(e *Editor, c char.Char) int {
	if c.IsNewline() {
		return 0
	}
	if c.IsTab() {
		col := e.View.CursorCol + (e.Tabstop - e.View.CursorCol%e.Tabstop)
		if col >= e.NCols {
			return 0
		}
		return col
	}
	col := e.View.CursorCol + 1
	if col >= e.NCols {
		return 0
	}
	return col
}

func InsertChar(e *Editor, _ Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}

	var t char.Char
	switch e.LastKey.Special {
	case key.Return:
		t = char.NewNewline()
	case key.Tab:
		t = char.NewFromRune('\t')
	default:
		t = char.NewFromRune(e.LastKey.Rune)
	}

	if e.Mark.IsActive() {
		DeleteRegion(e, nil)
		e.Mark.Clear()
	}

	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		e.doInsertChar(t)
	}
}

func OpenLine(e *Editor, _ Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}
	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		e.doInsertChar(char.NewNewline())
		e.View.BackwardChar(e.Buf, 1)
	}
}

func OpenNextLine(e *Editor, _ Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}
	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		e.View.EndOfLine(e.Buf)
		e.doInsertChar(char.NewNewline())
	}
}

func OpenPreviousLine(e *Editor, _ Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}
	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		e.View.BeginningOfLine(e.Buf)
		e.doInsertChar(char.NewNewline())
		e.View.BackwardChar(e.Buf, 1)
	}
}

func DeleteChar(e *Editor, _ Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}
	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		if e.Buf.IsEmpty() || e.Buf.Point() >= e.Buf.Len() {
			return
		}
		e.IsDirty = true
		c, _ := e.Buf.CharAt(e.Buf.Point())
		if e.View.CursorRow == e.View.NLines-1 {
			col := nextColAfterInsert(e, c)
			if col == 0 {
				e.View.ScrollUp(e.Buf, 1)
			}
		}
		e.Buf.DeleteForward()
	}
}

func DeleteRegion(e *Editor, _ Echo) {
	if e.IsReadOnly {
		return
	}
	low, high, ok := e.Mark.Bounds(e.Buf.Point())
	if !ok {
		return
	}
	e.IsDirty = true
	e.View.MoveTo(e.Buf, low)
	e.Buf.DeleteRange(low, high)
}

func DeleteBackwardChar(e *Editor, echo Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}
	if e.Mark.IsActive() {
		DeleteRegion(e, echo)
		e.Mark.Clear()
		return
	}
	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		if e.Buf.IsEmpty() || e.Buf.Point() == 0 {
			return
		}
		e.View.BackwardChar(e.Buf, 1)
		DeleteChar(e, echo)
	}
}

func DeleteForwardChar(e *Editor, echo Echo) {
	if e.IsReadOnly {
		return
	}
	if e.Mark.IsActive() {
		DeleteRegion(e, echo)
		e.Mark.Clear()
		return
	}
	DeleteChar(e, echo)
}

// --- Mark ring (spec §4.7) ------------------------------------------------

func ExchangePointAndMark(e *Editor, _ Echo) {
	if e.Buf.IsEmpty() || e.Mark.Len() == 0 {
		return
	}
	old, _ := e.Mark.SetCurrent(e.Buf.Point())
	e.View.MoveTo(e.Buf, old)
}

func SetMark(e *Editor, _ Echo) {
	if e.IsPrefix {
		e.IsPrefix = false
		if e.Mark.Len() == 0 {
			return
		}
		ExchangePointAndMark(e, nil)
		if e.Mark.Len() > 1 {
			e.Mark.RotateBackward()
		}
		return
	}
	e.Mark.Push(e.Buf.Point())
	e.Mark.SetActive(true)
}

func SetMarkForwardWord(e *Editor, echo Echo)      { SetMark(e, echo); ForwardWord(e, echo) }
func SetMarkBackwardWord(e *Editor, echo Echo)     { SetMark(e, echo); BackwardWord(e, echo) }
func SetMarkForwardParagraph(e *Editor, echo Echo) { SetMark(e, echo); ForwardParagraph(e, echo) }
func SetMarkBackwardParagraph(e *Editor, echo Echo) {
	SetMark(e, echo)
	BackwardParagraph(e, echo)
}
func SetMarkNextRow(e *Editor, echo Echo)     { SetMark(e, echo); NextRow(e, echo) }
func SetMarkPreviousRow(e *Editor, echo Echo) { SetMark(e, echo); PreviousRow(e, echo) }
func SetMarkForwardChar(e *Editor, echo Echo) { SetMark(e, echo); ForwardChar(e, echo) }
func SetMarkBackwardChar(e *Editor, echo Echo) { SetMark(e, echo); BackwardChar(e, echo) }

func KillRegionSave(e *Editor, _ Echo) {
	if e.IsReadOnly || !e.Mark.IsActive() {
		return
	}
	low, high, ok := e.Mark.Bounds(e.Buf.Point())
	if !ok {
		e.Mark.Clear()
		return
	}
	e.KillBuffer = e.Buf.Slice(low, high)
	e.Mark.Clear()
}

func KillRegion(e *Editor, echo Echo) {
	if e.IsReadOnly || !e.Mark.IsActive() {
		return
	}
	low, high, ok := e.Mark.Bounds(e.Buf.Point())
	KillRegionSave(e, echo)
	if !ok {
		return
	}
	e.View.MoveTo(e.Buf, low)
	e.Buf.DeleteRange(low, high)
	e.IsDirty = true
	e.Mark.Clear()
}

func Yank(e *Editor, _ Echo) {
	if e.IsReadOnly {
		e.IsPrefix = false
		return
	}
	repeat := e.repeat()
	for ; repeat > 0; repeat-- {
		for _, c := range e.KillBuffer {
			e.doInsertChar(c)
		}
	}
}

func ShowLineColumn(e *Editor, echo Echo) {
	line, col := 1, 1
	for i := 0; i < e.Buf.Point(); i++ {
		c, _ := e.Buf.CharAt(i)
		if c.IsNewline() {
			line++
			col = 1
		} else {
			col++
		}
	}
	e.PreserveEcho = true
	if echo != nil {
		echo.EchoInfo(fmt.Sprintf("L%dC%d", line, col))
	}
}

func ToggleReadOnlyMode(e *Editor, echo Echo) {
	e.IsReadOnly = !e.IsReadOnly
	e.PreserveEcho = true
	state := "disabled"
	if e.IsReadOnly {
		state = "enabled"
	}
	if echo != nil {
		echo.EchoInfo(fmt.Sprintf("Read-Only mode %s.", state))
	}
}

func Cancel(e *Editor, echo Echo) {
	e.Mark.Clear()
	if echo != nil {
		echo.EchoInfo("")
	}
}
