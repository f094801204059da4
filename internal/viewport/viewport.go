// Package viewport tracks the visible window onto a gap buffer: the anchor
// character at row 0 column 0, the cursor's row/column within that window,
// and the goal column vertical motions try to regain (spec §3 "Viewport
// state", §4.5). Every method keeps the invariant that walking CursorRow
// visual-line breaks then CursorCol columns from Top lands back on the
// point.
package viewport

import (
	"github.com/cliofy/ted/internal/gapbuf"
	"github.com/cliofy/ted/internal/layout"
)

// State is the viewport's mutable position state. The zero value is usable
// for an empty buffer; call Reset before use to set the screen geometry.
type State struct {
	Top    int
	HasTop bool

	CursorRow, CursorCol int
	GoalCol              int
	ForceGoalCol         bool

	NLines, NCols, Tabstop int
}

// Reset configures screen geometry and re-anchors to the buffer's current
// point, as happens once at load time.
func (v *State) Reset(nlines, ncols, tabstop int, b *gapbuf.Buffer) {
	v.NLines, v.NCols, v.Tabstop = nlines, ncols, tabstop
	v.CursorRow, v.CursorCol, v.GoalCol = 0, 0, 0
	v.ForceGoalCol = false
	if b.IsEmpty() {
		v.HasTop = false
		v.Top = 0
		return
	}
	v.Top = b.Point()
	v.HasTop = true
}

// SetGoalColumn toggles ForceGoalCol, latching the current column as the
// goal when turned on (bound to C-x C-n in the keymap).
func (v *State) SetGoalColumn() {
	if v.ForceGoalCol {
		v.ForceGoalCol = false
		return
	}
	v.ForceGoalCol = true
	v.GoalCol = v.CursorCol
}

// ForwardChar steps the point forward by repeat characters.
func (v *State) ForwardChar(b *gapbuf.Buffer, repeat int) {
	for ; repeat > 0; repeat-- {
		if !v.forwardCharOnce(b) {
			return
		}
	}
}

// BackwardChar steps the point backward by repeat characters.
func (v *State) BackwardChar(b *gapbuf.Buffer, repeat int) {
	for ; repeat > 0; repeat-- {
		if !v.backwardCharOnce(b) {
			return
		}
	}
}

func (v *State) forwardCharOnce(b *gapbuf.Buffer) bool {
	if b.IsEmpty() || b.Point() >= b.Len() {
		return false
	}
	p := b.Point()
	newCol := layout.NextCol(b, p, v.CursorCol, v.NCols, v.Tabstop)
	if v.CursorRow == v.NLines-1 && newCol == 0 {
		v.scrollUpOnce(b)
	}
	if v.CursorRow == 0 && v.CursorCol == 0 {
		v.Top = p
		v.HasTop = true
	}
	b.MovePoint(p + 1)
	if newCol == 0 {
		v.CursorRow++
	}
	v.CursorCol = newCol
	if !v.ForceGoalCol {
		v.GoalCol = v.CursorCol
	}
	return true
}

func (v *State) backwardCharOnce(b *gapbuf.Buffer) bool {
	if b.IsEmpty() || b.Point() == 0 {
		return false
	}
	if v.CursorRow == 0 && v.CursorCol == 0 {
		v.scrollDownOnce(b)
	}
	b.MovePoint(b.Point() - 1)
	c, _ := b.CharAt(b.Point())
	if c.IsNewline() || v.CursorCol == 0 {
		v.CursorRow--
	}
	v.CursorCol = layout.ColOf(b, b.Point(), v.NCols, v.Tabstop)
	if v.CursorRow == 0 && v.CursorCol == 0 {
		v.Top = b.Point()
		v.HasTop = true
	}
	if !v.ForceGoalCol {
		v.GoalCol = v.CursorCol
	}
	return true
}

// ScrollUp advances the anchor by one visual line per repeat, hopping the
// cursor down a row first if it would otherwise leave the viewport.
func (v *State) ScrollUp(b *gapbuf.Buffer, repeat int) {
	for ; repeat > 0; repeat-- {
		v.scrollUpOnce(b)
	}
}

// ScrollDown retreats the anchor by one visual line per repeat.
func (v *State) ScrollDown(b *gapbuf.Buffer, repeat int) {
	for ; repeat > 0; repeat-- {
		v.scrollDownOnce(b)
	}
}

func (v *State) scrollUpOnce(b *gapbuf.Buffer) {
	if b.IsEmpty() || !v.HasTop {
		return
	}
	if v.CursorRow == 0 {
		v.nextRowOnce(b)
	}
	p := v.Top
	n := 0
	for {
		n = layout.NextCol(b, p, n, v.NCols, v.Tabstop)
		p++
		if p >= b.Len() {
			return
		}
		if n == 0 {
			break
		}
	}
	v.Top = p
	v.CursorRow--
}

func (v *State) scrollDownOnce(b *gapbuf.Buffer) {
	if b.IsEmpty() {
		return
	}
	if v.CursorRow == v.NLines-1 {
		v.previousRowOnce(b)
	}
	if !v.HasTop || v.Top == 0 {
		return
	}
	q := v.Top - 1
	v.Top = layout.FirstOfVisualLine(b, q, v.NCols, v.Tabstop)
	v.CursorRow++
}

// NextRow moves the cursor down one visual line per repeat, keeping the
// goal column.
func (v *State) NextRow(b *gapbuf.Buffer, repeat int) {
	for ; repeat > 0; repeat-- {
		v.nextRowOnce(b)
	}
}

// PreviousRow moves the cursor up one visual line per repeat.
func (v *State) PreviousRow(b *gapbuf.Buffer, repeat int) {
	for ; repeat > 0; repeat-- {
		v.previousRowOnce(b)
	}
}

func (v *State) nextRowOnce(b *gapbuf.Buffer) {
	if v.CursorRow == v.NLines-1 {
		v.scrollUpOnce(b)
	}
	saveGoal := v.GoalCol
	v.EndOfRow(b)
	v.forwardCharOnce(b)
	v.BeginningOfRow(b)
	for {
		c, ok := b.CharAt(b.Point())
		if v.CursorCol >= saveGoal || !ok || c.IsNewline() {
			v.GoalCol = saveGoal
			return
		}
		v.forwardCharOnce(b)
	}
}

func (v *State) previousRowOnce(b *gapbuf.Buffer) {
	if v.CursorRow == 0 {
		v.scrollDownOnce(b)
	}
	saveGoal := v.GoalCol
	v.BeginningOfRow(b)
	v.backwardCharOnce(b)
	v.BeginningOfRow(b)
	for {
		c, ok := b.CharAt(b.Point())
		if v.CursorCol >= saveGoal || !ok || c.IsNewline() {
			v.GoalCol = saveGoal
			return
		}
		v.forwardCharOnce(b)
	}
}

// BeginningOfRow moves to the start of the current visual line (wrap-aware).
func (v *State) BeginningOfRow(b *gapbuf.Buffer) {
	for v.CursorCol > 0 {
		v.backwardCharOnce(b)
	}
	if !v.ForceGoalCol {
		v.GoalCol = 0
	}
}

// EndOfRow moves to the end of the current visual line (wrap-aware).
func (v *State) EndOfRow(b *gapbuf.Buffer) {
	for {
		if _, ok := b.CharAt(b.Point()); !ok {
			return
		}
		if layout.NextCol(b, b.Point(), v.CursorCol, v.NCols, v.Tabstop) == 0 {
			return
		}
		v.forwardCharOnce(b)
	}
}

// BeginningOfLine moves to the start of the current logical line.
func (v *State) BeginningOfLine(b *gapbuf.Buffer) {
	if b.IsEmpty() {
		return
	}
	if c, ok := b.CharAt(b.Point()); ok && c.IsNewline() {
		v.backwardCharOnce(b)
	}
	for {
		if b.Point() == 0 {
			return
		}
		if c, ok := b.CharAt(b.Point()); ok && c.IsNewline() {
			v.forwardCharOnce(b)
			return
		}
		v.backwardCharOnce(b)
	}
}

// EndOfLine moves to the end of the current logical line.
func (v *State) EndOfLine(b *gapbuf.Buffer) {
	for {
		c, ok := b.CharAt(b.Point())
		if !ok || c.IsNewline() {
			return
		}
		v.forwardCharOnce(b)
	}
}

// BeginningOfBuffer moves the point to index 0.
func (v *State) BeginningOfBuffer(b *gapbuf.Buffer) {
	for b.Point() > 0 {
		v.backwardCharOnce(b)
	}
}

// EndOfBuffer moves the point to the buffer's length.
func (v *State) EndOfBuffer(b *gapbuf.Buffer) {
	for {
		if _, ok := b.CharAt(b.Point()); !ok {
			return
		}
		v.forwardCharOnce(b)
	}
}

// MoveTo moves the point to logical index n from the buffer start.
func (v *State) MoveTo(b *gapbuf.Buffer, n int) {
	v.BeginningOfBuffer(b)
	for ; n > 0; n-- {
		if !v.forwardCharOnce(b) {
			return
		}
	}
}

// GotoLine moves to the start of the n-th line (1-based); n<1 behaves as 1.
func (v *State) GotoLine(b *gapbuf.Buffer, n int) {
	if n < 1 {
		n = 1
	}
	v.BeginningOfBuffer(b)
	for n--; n > 0; n-- {
		v.EndOfLine(b)
		v.forwardCharOnce(b)
	}
}

// GotoPercent moves to (length * clamp(percent,0,100)) / 100.
func (v *State) GotoPercent(b *gapbuf.Buffer, percent int) {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}
	v.MoveTo(b, (b.Len()*percent)/100)
}

// PageDown scrolls and moves the cursor down by half the viewport height,
// repeat times.
func (v *State) PageDown(b *gapbuf.Buffer, repeat int) {
	step := (v.NLines + 2) / 2
	for ; repeat > 0; repeat-- {
		for i := 0; i < step; i++ {
			v.scrollUpOnce(b)
			v.nextRowOnce(b)
		}
	}
}

// PageUp scrolls and moves the cursor up by half the viewport height,
// repeat times.
func (v *State) PageUp(b *gapbuf.Buffer, repeat int) {
	step := (v.NLines + 2) / 2
	for ; repeat > 0; repeat-- {
		for i := 0; i < step; i++ {
			v.scrollDownOnce(b)
			v.previousRowOnce(b)
		}
	}
}
