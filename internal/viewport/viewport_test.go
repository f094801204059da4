package viewport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/gapbuf"
	"github.com/cliofy/ted/internal/viewport"
)

func buildBuffer(s string) *gapbuf.Buffer {
	b := gapbuf.New(len(s) + 1)
	for _, r := range s {
		if r == '\n' {
			b.Insert(char.NewNewline())
		} else {
			b.Insert(char.NewFromRune(r))
		}
	}
	b.MovePoint(0)
	return b
}

func TestForwardBackwardCharRoundTrips(t *testing.T) {
	b := buildBuffer("abc\ndef")
	var v viewport.State
	v.Reset(3, 10, 8, b)

	v.ForwardChar(b, 3)
	assert.Equal(t, 3, b.Point())
	assert.Equal(t, 0, v.CursorRow)
	assert.Equal(t, 3, v.CursorCol)

	v.ForwardChar(b, 1) // step over the newline
	assert.Equal(t, 4, b.Point())
	assert.Equal(t, 1, v.CursorRow)
	assert.Equal(t, 0, v.CursorCol)

	v.BackwardChar(b, 4)
	assert.Equal(t, 0, b.Point())
	assert.Equal(t, 0, v.CursorRow)
	assert.Equal(t, 0, v.CursorCol)
}

func TestForwardCharStopsAtEnd(t *testing.T) {
	b := buildBuffer("ab")
	var v viewport.State
	v.Reset(3, 10, 8, b)
	v.ForwardChar(b, 100)
	assert.Equal(t, 2, b.Point())
}

func TestBackwardCharStopsAtStart(t *testing.T) {
	b := buildBuffer("ab")
	var v viewport.State
	v.Reset(3, 10, 8, b)
	v.BackwardChar(b, 100)
	assert.Equal(t, 0, b.Point())
}

func TestGoalColumnStickyAcrossRows(t *testing.T) {
	b := buildBuffer("abcdef\nxy\nuvwxyz")
	var v viewport.State
	v.Reset(5, 20, 8, b)

	v.ForwardChar(b, 4) // point at index 4, col 4, row 0
	require.Equal(t, 4, v.CursorCol)

	v.NextRow(b, 1) // row "xy" only has 2 cols, should clamp
	assert.Equal(t, 1, v.CursorRow)
	assert.LessOrEqual(t, v.CursorCol, 2)

	v.NextRow(b, 1) // back to a long row, goal column regained
	assert.Equal(t, 2, v.CursorRow)
	assert.Equal(t, 4, v.CursorCol)
}

func TestBeginningAndEndOfLogicalLine(t *testing.T) {
	b := buildBuffer("abc\ndef")
	var v viewport.State
	v.Reset(3, 10, 8, b)

	v.MoveTo(b, 5) // inside "def"
	v.BeginningOfLine(b)
	assert.Equal(t, 4, b.Point())

	v.EndOfLine(b)
	assert.Equal(t, 7, b.Point())
}

func TestBeginningAndEndOfBuffer(t *testing.T) {
	b := buildBuffer("hello")
	var v viewport.State
	v.Reset(3, 10, 8, b)

	v.MoveTo(b, 2)
	v.BeginningOfBuffer(b)
	assert.Equal(t, 0, b.Point())

	v.EndOfBuffer(b)
	assert.Equal(t, 5, b.Point())
}

func TestGotoLineAndGotoPercent(t *testing.T) {
	b := buildBuffer("one\ntwo\nthree")
	var v viewport.State
	v.Reset(5, 10, 8, b)

	v.GotoLine(b, 2)
	assert.Equal(t, 4, b.Point())

	v.GotoPercent(b, 0)
	assert.Equal(t, 0, b.Point())

	v.GotoPercent(b, 100)
	assert.Equal(t, b.Len(), b.Point())
}

func TestSetGoalColumnLatchesAndReleases(t *testing.T) {
	var v viewport.State
	v.CursorCol = 5
	v.SetGoalColumn()
	assert.True(t, v.ForceGoalCol)
	assert.Equal(t, 5, v.GoalCol)

	v.SetGoalColumn()
	assert.False(t, v.ForceGoalCol)
}

func TestScrollUpDownMovesAnchor(t *testing.T) {
	b := buildBuffer("one\ntwo\nthree\nfour\nfive")
	var v viewport.State
	v.Reset(2, 10, 8, b)
	require.True(t, v.HasTop)

	topBefore := v.Top
	v.ScrollUp(b, 1)
	assert.Greater(t, v.Top, topBefore)

	v.ScrollDown(b, 1)
	assert.Equal(t, topBefore, v.Top)
}

func TestPageDownAndPageUp(t *testing.T) {
	lines := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10"
	b := buildBuffer(lines)
	var v viewport.State
	v.Reset(4, 10, 8, b)

	v.PageDown(b, 1)
	afterDown := v.Top

	v.PageUp(b, 1)
	assert.LessOrEqual(t, v.Top, afterDown)
}
