package char_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cliofy/ted/internal/char"
)

func TestEqual(t *testing.T) {
	t.Run("newlines are equal regardless of bytes", func(t *testing.T) {
		assert.True(t, char.NewNewline().Equal(char.NewNewline()))
	})

	t.Run("same rune is equal", func(t *testing.T) {
		assert.True(t, char.NewFromRune('a').Equal(char.NewFromRune('a')))
	})

	t.Run("different runes are not equal", func(t *testing.T) {
		assert.False(t, char.NewFromRune('a').Equal(char.NewFromRune('b')))
	})

	t.Run("newline and rune are never equal", func(t *testing.T) {
		assert.False(t, char.NewNewline().Equal(char.NewFromRune('\n')))
	})

	t.Run("multibyte rune round-trips", func(t *testing.T) {
		c := char.NewFromRune('é')
		assert.Equal(t, 'é', c.Rune())
		assert.True(t, c.Equal(char.NewFromRune('é')))
	})
}

func TestWidthAndTab(t *testing.T) {
	tests := []struct {
		name  string
		c     char.Char
		width int
		isTab bool
	}{
		{"newline", char.NewNewline(), 0, false},
		{"space", char.NewFromRune(' '), 1, false},
		{"tab", char.NewFromRune('\t'), 1, true},
		{"ascii", char.NewFromRune('x'), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, tt.c.BaseWidth())
			assert.Equal(t, tt.isTab, tt.c.IsTab())
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	c := char.NewFromBytes([]byte("é")) // 2-byte UTF-8 run
	assert.Equal(t, []byte("é"), c.Bytes())
	assert.Equal(t, 'é', c.Rune())
}
