package gapbuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/gapbuf"
)

func asString(b *gapbuf.Buffer) string {
	var out []byte
	for i := 0; i < b.Len(); i++ {
		c, _ := b.CharAt(i)
		out = append(out, c.Bytes()...)
	}
	return string(out)
}

func fill(b *gapbuf.Buffer, s string) {
	for _, r := range s {
		if r == '\n' {
			b.Insert(char.NewNewline())
		} else {
			b.Insert(char.NewFromRune(r))
		}
	}
}

func TestInsertAndRead(t *testing.T) {
	b := gapbuf.New(8)
	fill(b, "abc\ndef\n")

	require.Equal(t, 8, b.Len())
	assert.Equal(t, "abc\ndef\n", asString(b))
	assert.Equal(t, 8, b.Point(), "point sits after the last inserted char")
}

func TestMovePointPreservesContent(t *testing.T) {
	b := gapbuf.New(8)
	fill(b, "abcdef")

	before := asString(b)
	b.MovePoint(3)
	assert.Equal(t, 3, b.Point())
	assert.Equal(t, before, asString(b), "moving the point never changes live content")

	b.MovePoint(0)
	assert.Equal(t, before, asString(b))

	b.MovePoint(b.Len())
	assert.Equal(t, before, asString(b))
}

func TestDeleteForwardAndBackward(t *testing.T) {
	b := gapbuf.New(8)
	fill(b, "abc")
	b.MovePoint(1)

	ok := b.DeleteForward()
	assert.True(t, ok)
	assert.Equal(t, "ac", asString(b))

	ok = b.DeleteBackward()
	assert.True(t, ok)
	assert.Equal(t, "c", asString(b))
	assert.Equal(t, 0, b.Point())

	assert.False(t, b.DeleteBackward(), "backward at start is a no-op")
}

func TestDeleteForwardAtEndIsNoop(t *testing.T) {
	b := gapbuf.New(8)
	fill(b, "abc")
	assert.False(t, b.DeleteForward())
}

func TestGrowsBeyondInitialCapacity(t *testing.T) {
	b := gapbuf.New(4)
	s := ""
	// New clamps the requested capacity up to its 4096 minimum, so the
	// fill has to exceed that to force a grow.
	for i := 0; i < 5000; i++ {
		s += "x"
	}
	fill(b, s)
	assert.Equal(t, 5000, b.Len())
	assert.Equal(t, s, asString(b))
}

func TestSliceAndDeleteRange(t *testing.T) {
	b := gapbuf.New(8)
	fill(b, "abcdef")

	cs := b.Slice(1, 4)
	require.Len(t, cs, 3)
	assert.Equal(t, "bcd", func() string {
		var s []byte
		for _, c := range cs {
			s = append(s, c.Bytes()...)
		}
		return string(s)
	}())

	b.DeleteRange(1, 4)
	assert.Equal(t, "aef", asString(b))
	assert.Equal(t, 1, b.Point())
}

func TestInsertAtInsertsAtGivenIndex(t *testing.T) {
	b := gapbuf.New(8)
	fill(b, "ac")
	b.InsertAt(1, []char.Char{char.NewFromRune('b')})
	assert.Equal(t, "abc", asString(b))
	assert.Equal(t, 2, b.Point())
}
