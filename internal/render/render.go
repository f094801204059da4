// Package render composes one screen frame from buffer, viewport, and
// mark state into a byte scratch buffer, then flushes it with the cursor
// repositioning sequence the original's refresh()/screenbuf_draw do
// (_examples/original_source/src/ted.c lines 1365-1483, 875-883). Escape
// sequence naming follows the teacher's C0/C1 constant naming in ansi.go
// (ESC, CSI) even though that package parses terminal *output* rather than
// emitting it.
package render

import (
	"bytes"
	"fmt"

	"github.com/cliofy/ted/internal/gapbuf"
	"github.com/cliofy/ted/internal/layout"
	"github.com/cliofy/ted/internal/mark"
	"github.com/cliofy/ted/internal/viewport"
)

const (
	esc = "\x1b"

	hideCursor    = esc + "[?25l"
	showCursor    = esc + "[?25h"
	saveCursor    = esc + "[s"
	restoreCursor = esc + "[u"
	eraseLine     = esc + "[K"
	clearScreen   = esc + "[2J" + esc + "[H"
	highlightOn   = esc + "[7m"
	highlightOff  = esc + "[m"

	continuationLineStr = esc + "[31m\\" + esc + "[m"
	emptyLineStr        = esc + "[34m~" + esc + "[m"
)

// Anchor is the screen position (1-based, as CSI expects) the viewport's
// top-left row/col is drawn at.
type Anchor struct {
	Row, Col int
}

// Frame composes the visible region of a buffer, honoring an active
// mark-ring selection as an inline highlight, and returns the bytes ready
// to write to the terminal along with the cursor's final screen position.
func Frame(b *gapbuf.Buffer, v *viewport.State, m *mark.Ring, anchor Anchor) ([]byte, Anchor) {
	var buf bytes.Buffer
	buf.WriteString(hideCursor)

	low, high, haveRegion := m.Bounds(b.Point())

	highlightActive := false
	current := 0
	if v.HasTop {
		current = v.Top
	} else {
		current = b.Len() // nothing to draw
	}

	for row := 0; row < v.NLines; row++ {
		col := 0
		lineDrawn := false
		newline := false

		for {
			c, ok := b.CharAt(current)
			if !ok {
				break
			}

			if haveRegion && !highlightActive && current >= low && current < high {
				buf.WriteString(highlightOn)
				highlightActive = true
			}
			if haveRegion && highlightActive && current == high {
				buf.WriteString(highlightOff)
				highlightActive = false
			}

			lineDrawn = true

			if col == v.NCols {
				if highlightActive {
					buf.WriteString(highlightOff)
				}
				buf.WriteString(continuationLineStr)
				buf.WriteString(eraseLine + "\r\n")
				if highlightActive {
					buf.WriteString(highlightOn)
				}
				break
			}

			if c.IsNewline() {
				newline = true
				buf.WriteString(" " + eraseLine + "\r\n")
				current++
				break
			}

			if c.IsTab() {
				newCol := layout.NextCol(b, current, col, v.NCols, v.Tabstop)
				current++
				if newCol == 0 {
					for col < v.NCols {
						buf.WriteString(" ")
						col++
					}
					buf.WriteString(continuationLineStr)
					buf.WriteString(eraseLine + "\r\n")
					break
				}
				for col < newCol {
					buf.WriteString(" ")
					col++
				}
				continue
			}

			buf.Write(c.Bytes())
			newCol := layout.NextCol(b, current, col, v.NCols, v.Tabstop)
			current++
			if newCol == 0 {
				if highlightActive {
					buf.WriteString(highlightOff)
				}
				buf.WriteString(continuationLineStr)
				buf.WriteString(eraseLine + "\r\n")
				if highlightActive {
					buf.WriteString(highlightOn)
				}
				break
			}
			col = newCol
		}

		if !lineDrawn {
			if highlightActive {
				buf.WriteString(highlightOff)
			}
			buf.WriteString(emptyLineStr)
			buf.WriteString(eraseLine + "\r\n")
			if highlightActive {
				buf.WriteString(highlightOn)
			}
		} else if !newline && current >= b.Len() {
			buf.WriteString(eraseLine + "\r\n")
		}
	}

	buf.WriteString(showCursor)

	cursorAt := Anchor{Row: anchor.Row + v.CursorRow, Col: anchor.Col + v.CursorCol}
	return buf.Bytes(), cursorAt
}

// GotoSequence returns the CSI cursor-position sequence for a.
func GotoSequence(a Anchor) []byte {
	return []byte(fmt.Sprintf("%s[%d;%dH", esc, a.Row, a.Col))
}

// ClearScreenSequence returns the CSI sequence that clears the whole
// screen and homes the cursor.
func ClearScreenSequence() []byte {
	return []byte(clearScreen)
}

// SaveCursorSequence / RestoreCursorSequence bracket a raw write to the
// screen scratch region so the real cursor returns to where it was.
func SaveCursorSequence() []byte    { return []byte(saveCursor) }
func RestoreCursorSequence() []byte { return []byte(restoreCursor) }
