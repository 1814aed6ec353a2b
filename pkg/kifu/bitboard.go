package kifu

import "math/bits"

// Bitboard is a set of board squares. Squares 0-63 live in lo,
// squares 64-80 in hi; bits above square 80 are always zero.
type Bitboard struct {
	lo, hi uint64
}

const hiMask = (uint64(1) << (NumSquares - 64)) - 1

// SingleBB returns a bitboard containing only sq.
func SingleBB(sq Square) Bitboard {
	var b Bitboard
	b.Set(sq)
	return b
}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool {
	if sq < 64 {
		return b.lo&(1<<sq) != 0
	}
	return b.hi&(1<<(sq-64)) != 0
}

// Set adds sq to the set.
func (b *Bitboard) Set(sq Square) {
	if sq < 64 {
		b.lo |= 1 << sq
	} else {
		b.hi |= 1 << (sq - 64)
	}
}

// Clear removes sq from the set.
func (b *Bitboard) Clear(sq Square) {
	if sq < 64 {
		b.lo &^= 1 << sq
	} else {
		b.hi &^= 1 << (sq - 64)
	}
}

// Or returns the union of b and other.
func (b Bitboard) Or(other Bitboard) Bitboard {
	return Bitboard{b.lo | other.lo, b.hi | other.hi}
}

// And returns the intersection of b and other.
func (b Bitboard) And(other Bitboard) Bitboard {
	return Bitboard{b.lo & other.lo, b.hi & other.hi}
}

// Diff returns the squares of b not in other.
func (b Bitboard) Diff(other Bitboard) Bitboard {
	return Bitboard{b.lo &^ other.lo, b.hi &^ other.hi}
}

// Not returns the complement of b within the valid square range.
func (b Bitboard) Not() Bitboard {
	return Bitboard{^b.lo, ^b.hi & hiMask}
}

// IsEmpty reports whether the set has no squares.
func (b Bitboard) IsEmpty() bool {
	return b.lo == 0 && b.hi == 0
}

// Count returns the number of squares in the set.
func (b Bitboard) Count() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// Pop removes and returns the lowest-indexed square in the set.
// Iterate a copy to keep the original intact:
//
//	for it := b; ; {
//		sq, ok := it.Pop()
//		if !ok {
//			break
//		}
//		...
//	}
func (b *Bitboard) Pop() (Square, bool) {
	if b.lo != 0 {
		i := bits.TrailingZeros64(b.lo)
		b.lo &= b.lo - 1
		return Square(i), true
	}
	if b.hi != 0 {
		i := bits.TrailingZeros64(b.hi)
		b.hi &= b.hi - 1
		return Square(64 + i), true
	}
	return 0, false
}

// Squares returns the members of the set in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for it := b; ; {
		sq, ok := it.Pop()
		if !ok {
			return out
		}
		out = append(out, sq)
	}
}
