// Package mark implements the mark ring described in spec §3/§4.7: a
// circular buffer of up to 16 logical buffer indices, used both as the
// region boundary for selection and as a stack of earlier positions to
// walk back through.
package mark

// Size is the mark ring's fixed capacity (spec §3, §8: "Mark ring size >
// 16: oldest is evicted").
const Size = 16

// Ring is the mark ring. Indices into the ring (first, last, current) are
// logical slots modulo Size, not raw array positions — pushing past
// capacity wraps and overwrites the oldest entry.
type Ring struct {
	m        [Size]int
	first    int
	last     int
	len      int
	current  int
	isActive bool
}

// Push appends idx as the newest mark, overwriting the oldest entry once
// the ring is full, and sets current to the slot just pushed.
func (r *Ring) Push(idx int) {
	r.m[r.last] = idx
	r.current = r.last
	r.last = (r.last + 1) % Size
	if r.len < Size {
		r.len++
	} else {
		r.first = (r.first + 1) % Size
	}
}

// Len returns the number of marks held.
func (r *Ring) Len() int { return r.len }

// Current returns the mark at the current slot and whether one exists.
func (r *Ring) Current() (int, bool) {
	if r.len == 0 {
		return 0, false
	}
	return r.m[r.current], true
}

// SetCurrent overwrites the mark at the current slot, returning the value
// it held. Used by exchange-point-and-mark (spec §6 recovered feature).
func (r *Ring) SetCurrent(idx int) (old int, ok bool) {
	if r.len == 0 {
		return 0, false
	}
	old = r.m[r.current]
	r.m[r.current] = idx
	return old, true
}

// RotateBackward moves current one slot toward the oldest mark, wrapping
// within the live range — the "walk earlier marks" behavior bound to
// set_mark with a prefix argument (spec §4.7).
func (r *Ring) RotateBackward() {
	if r.len == 0 {
		return
	}
	if r.current == r.first {
		r.current = (r.first + r.len - 1) % Size
		return
	}
	r.current = (r.current - 1 + Size) % Size
}

// IsActive reports whether the region between point and the current mark
// is selected.
func (r *Ring) IsActive() bool { return r.isActive }

// SetActive toggles region selection.
func (r *Ring) SetActive(active bool) { r.isActive = active }

// Clear deactivates the region without discarding the ring's history.
func (r *Ring) Clear() { r.isActive = false }

// Bounds returns [low, high) for the region between point and the current
// mark, or ok=false when there is no active region (invariant 4, spec §8).
func (r *Ring) Bounds(point int) (low, high int, ok bool) {
	m, has := r.Current()
	if !r.isActive || !has || m == point {
		return 0, 0, false
	}
	if point < m {
		return point, m, true
	}
	return m, point, true
}
