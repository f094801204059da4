// Package gapbuf implements the gap-buffer character store described in
// spec §3 and §4.2: a contiguous array of char.Char with a movable empty
// window (the gap) at the point, giving O(1) amortized insert/delete and an
// O(|shift|) move_point. Indices are logical, not raw slice offsets — all
// of insert, delete, and lookup address the live sequence [0, Len()).
package gapbuf

import "github.com/cliofy/ted/internal/char"

// minCapacity is the smallest capacity a freshly grown buffer takes on.
// Mirrors the C implementation's fixed BUFSIZE, but here it's just the
// starting point for a capacity that grows on demand (spec §3: "fixed
// capacity array ... implementations may grow").
const minCapacity = 4096

// Buffer is a gap buffer of char.Char.
type Buffer struct {
	data              []char.Char
	gapStart, gapEnd int
}

// New returns an empty buffer with room for at least capacity characters.
func New(capacity int) *Buffer {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &Buffer{
		data:     make([]char.Char, capacity),
		gapStart: 0,
		gapEnd:   capacity,
	}
}

// Len returns the logical length of the live sequence.
func (b *Buffer) Len() int {
	return b.gapStart + (len(b.data) - b.gapEnd)
}

// IsEmpty reports whether the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Point returns the current insertion index, which always equals gapStart.
func (b *Buffer) Point() int {
	return b.gapStart
}

// rawIndex maps a logical index in [0, Len()) to its slot in data.
func (b *Buffer) rawIndex(i int) int {
	if i < b.gapStart {
		return i
	}
	return i + (b.gapEnd - b.gapStart)
}

// CharAt returns the character at logical index i, or false if i is out of
// range.
func (b *Buffer) CharAt(i int) (char.Char, bool) {
	if i < 0 || i >= b.Len() {
		return char.Char{}, false
	}
	return b.data[b.rawIndex(i)], true
}

// MovePoint shifts the gap so that gapStart == i, via a memmove of the
// characters between the old and new point. i is clamped to [0, Len()].
// Invariant 2 of spec §8: the live sequence at every other index is
// unchanged by this call.
func (b *Buffer) MovePoint(i int) {
	if i < 0 {
		i = 0
	}
	if n := b.Len(); i > n {
		i = n
	}
	switch {
	case i < b.gapStart:
		shift := b.gapStart - i
		copy(b.data[b.gapEnd-shift:b.gapEnd], b.data[i:b.gapStart])
		b.gapStart -= shift
		b.gapEnd -= shift
	case i > b.gapStart:
		shift := i - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+shift], b.data[b.gapEnd:b.gapEnd+shift])
		b.gapStart += shift
		b.gapEnd += shift
	}
}

// ensureGap grows the backing array if the gap is exhausted, so Insert is
// always O(1) amortized.
func (b *Buffer) ensureGap() {
	if b.gapStart < b.gapEnd {
		return
	}
	grown := make([]char.Char, len(b.data)*2)
	copy(grown[:b.gapStart], b.data[:b.gapStart])
	tailLen := len(b.data) - b.gapEnd
	newGapEnd := len(grown) - tailLen
	copy(grown[newGapEnd:], b.data[b.gapEnd:])
	b.data = grown
	b.gapEnd = newGapEnd
}

// Insert places c at the point and advances the point past it.
func (b *Buffer) Insert(c char.Char) {
	b.ensureGap()
	b.data[b.gapStart] = c
	b.gapStart++
}

// DeleteForward removes the character at the point, if any. Reports
// whether a character was removed.
func (b *Buffer) DeleteForward() bool {
	if b.gapEnd >= len(b.data) {
		return false
	}
	b.gapEnd++
	return true
}

// DeleteBackward removes the character immediately before the point, if
// any, moving the point back by one. Reports whether a character was
// removed.
func (b *Buffer) DeleteBackward() bool {
	if b.gapStart == 0 {
		return false
	}
	b.gapStart--
	return true
}

// Slice copies the live characters in [lo, hi) into a fresh slice. Used by
// kill/yank, save, and search, none of which may hold a reference into the
// gap buffer's backing array across a mutation.
func (b *Buffer) Slice(lo, hi int) []char.Char {
	if lo < 0 {
		lo = 0
	}
	if n := b.Len(); hi > n {
		hi = n
	}
	if lo >= hi {
		return nil
	}
	out := make([]char.Char, 0, hi-lo)
	for i := lo; i < hi; i++ {
		c, _ := b.CharAt(i)
		out = append(out, c)
	}
	return out
}

// InsertAt moves the point to i and inserts cs there, leaving the point
// just past the inserted run.
func (b *Buffer) InsertAt(i int, cs []char.Char) {
	b.MovePoint(i)
	for _, c := range cs {
		b.Insert(c)
	}
}

// DeleteRange removes the live characters in [lo, hi), leaving the point at
// lo.
func (b *Buffer) DeleteRange(lo, hi int) {
	if lo >= hi {
		return
	}
	b.MovePoint(hi)
	for i := hi; i > lo; i-- {
		b.DeleteBackward()
	}
}
