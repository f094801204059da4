// Package layout maps the gap buffer's logical character sequence onto a
// bounded viewport: column advancement with tab expansion and hard
// wrapping (spec §4.3), and the column/visual-line-start recovery walks
// that the renderer and motion commands both need.
package layout

import "github.com/cliofy/ted/internal/gapbuf"

// NextCol returns the column after placing the character at logical index
// i, given the buffer it lives in, the current column, the viewport width,
// and the tab stop. It returns 0 to signal a line break: an explicit
// newline, a hard wrap at ncols, or a tab whose expansion would cross
// ncols.
func NextCol(b *gapbuf.Buffer, i, col, ncols, tabstop int) int {
	c, ok := b.CharAt(i)
	if !ok {
		return 0
	}
	switch {
	case c.IsNewline():
		return 0
	case c.IsTab():
		newCol := col + tabstop - col%tabstop
		if newCol >= ncols {
			return 0
		}
		return newCol
	default:
		if col+1 >= ncols {
			return 0
		}
		return col + 1
	}
}

// ColOf recovers the visual column of logical index p: walk back to the
// nearest newline (or buffer start), then forward applying NextCol to p.
func ColOf(b *gapbuf.Buffer, p, ncols, tabstop int) int {
	start := lineStart(b, p)

	col := 0
	for i := start; i < p; i++ {
		col = NextCol(b, i, col, ncols, tabstop)
	}
	return col
}

// lineStart walks backward from p to the index just after the nearest
// preceding newline, or 0 if none exists — the start of p's logical line.
func lineStart(b *gapbuf.Buffer, p int) int {
	i := p - 1
	for i >= 0 {
		c, _ := b.CharAt(i)
		if c.IsNewline() {
			return i + 1
		}
		i--
	}
	return 0
}

// FirstOfVisualLine walks back to the nearest logical line start, then
// forward, tracking the index following each zero-column (wrap or
// newline) transition, to find the start of p's visual (wrapped) line.
func FirstOfVisualLine(b *gapbuf.Buffer, p, ncols, tabstop int) int {
	start := lineStart(b, p)

	col := 0
	visualStart := start
	for i := start; i < p; i++ {
		col = NextCol(b, i, col, ncols, tabstop)
		if col == 0 {
			visualStart = i + 1
		}
	}
	return visualStart
}
