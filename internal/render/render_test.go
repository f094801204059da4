package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/gapbuf"
	"github.com/cliofy/ted/internal/mark"
	"github.com/cliofy/ted/internal/render"
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

func TestFrameDrawsPlainText(t *testing.T) {
	b := buildBuffer("hi\nthere")
	var v viewport.State
	v.Reset(3, 10, 8, b)
	var m mark.Ring

	out, cursor := render.Frame(b, &v, &m, render.Anchor{Row: 1, Col: 1})
	s := string(out)

	assert.Contains(t, s, "hi")
	assert.Contains(t, s, "there")
	assert.Equal(t, render.Anchor{Row: 1, Col: 1}, cursor)
}

func TestFrameShowsEmptyLineGutter(t *testing.T) {
	b := buildBuffer("")
	var v viewport.State
	v.Reset(3, 10, 8, b)
	var m mark.Ring

	out, _ := render.Frame(b, &v, &m, render.Anchor{Row: 1, Col: 1})
	assert.Equal(t, 3, strings.Count(string(out), "~"))
}

func TestFrameHighlightsActiveRegion(t *testing.T) {
	b := buildBuffer("abcdef")
	b.MovePoint(4)
	var v viewport.State
	v.Reset(3, 10, 8, b)
	var m mark.Ring
	m.Push(1)
	m.SetActive(true)

	out, _ := render.Frame(b, &v, &m, render.Anchor{Row: 1, Col: 1})
	s := string(out)
	assert.Contains(t, s, "\x1b[7m")
	assert.Contains(t, s, "\x1b[m")
}

func TestFrameWrapsAtColumnBound(t *testing.T) {
	b := buildBuffer("abcdefgh")
	var v viewport.State
	v.Reset(3, 4, 8, b)
	var m mark.Ring

	out, _ := render.Frame(b, &v, &m, render.Anchor{Row: 1, Col: 1})
	s := string(out)
	assert.Contains(t, s, "\x1b[31m\\\x1b[m", "continuation marker rendered on hard wrap")
}

func TestCursorSequenceHelpers(t *testing.T) {
	seq := render.GotoSequence(render.Anchor{Row: 2, Col: 5})
	assert.Equal(t, "\x1b[2;5H", string(seq))

	require.NotEmpty(t, render.ClearScreenSequence())
	require.NotEmpty(t, render.SaveCursorSequence())
	require.NotEmpty(t, render.RestoreCursorSequence())
}
