// Package scheme finds the roots of a character: it locates every root
// inside the character's glyph, enumerates the partitions of its strokes
// into those roots and ranks the partitions by structural criteria.
package scheme

import (
	"math/bits"
	"strconv"
)

// MaxStrokes is the largest glyph a Bitmask can describe.
const MaxStrokes = 64

// Bitmask is a set of stroke positions of one glyph. For a glyph of n
// strokes, stroke i is bit n-1-i, so the first stroke is the highest bit and
// bitmasks compare in stroke order.
type Bitmask uint64

// Full returns the bitmask of all n strokes.
func Full(n int) Bitmask {
	if n >= MaxStrokes {
		return ^Bitmask(0)
	}
	return Bitmask(1)<<n - 1
}

// StrokeBit returns the bit of stroke i in a glyph of n strokes.
func StrokeBit(i, n int) Bitmask {
	return Bitmask(1) << (n - 1 - i)
}

// FromIndices builds the bitmask of the given strokes.
func FromIndices(indices []int, n int) Bitmask {
	var b Bitmask
	for _, i := range indices {
		b |= StrokeBit(i, n)
	}
	return b
}

// Indices lists the strokes in b in drawing order.
func (b Bitmask) Indices(n int) []int {
	out := make([]int, 0, b.Count())
	for i := 0; i < n; i++ {
		if b&StrokeBit(i, n) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Count is the number of strokes in b.
func (b Bitmask) Count() int { return bits.OnesCount64(uint64(b)) }

// Highest returns the highest set bit of b, which is its earliest stroke.
func (b Bitmask) Highest() Bitmask {
	if b == 0 {
		return 0
	}
	return Bitmask(1) << (63 - bits.LeadingZeros64(uint64(b)))
}

// First returns the index of the earliest stroke of b in a glyph of n strokes.
func (b Bitmask) First(n int) int {
	return n - 64 + bits.LeadingZeros64(uint64(b))
}

// Last returns the index of the latest stroke of b in a glyph of n strokes.
func (b Bitmask) Last(n int) int {
	return n - 1 - bits.TrailingZeros64(uint64(b))
}

// Contiguous reports whether the strokes of b form one unbroken run.
func (b Bitmask) Contiguous() bool {
	if b == 0 {
		return false
	}
	run := uint64(b) >> bits.TrailingZeros64(uint64(b))
	return run&(run+1) == 0
}

// SubsetOf reports whether every stroke of b is in o.
func (b Bitmask) SubsetOf(o Bitmask) bool { return b&^o == 0 }

func (b Bitmask) String() string { return strconv.FormatUint(uint64(b), 2) }
