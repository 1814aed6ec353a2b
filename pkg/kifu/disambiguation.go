package kifu

import "fmt"

// Qualifier glyphs. Vertical qualifiers classify the move along the
// mover's forward axis; horizontal qualifiers pick the piece by file.
const (
	qualUp       = '上'
	qualDown     = '引'
	qualSideways = '寄'
	qualLeft     = '左'
	qualRight    = '右'
	qualStraight = '直'
)

// disambiguate chooses the qualifier for a board move when candidates
// (like pieces attacking the destination, origin included) holds more
// than one square. The shortest sufficient form wins: no qualifier,
// then a vertical glyph, then a horizontal glyph, then both, with the
// horizontal glyph written first (e.g. 左上).
func disambiguate(piece Piece, from, to Square, candidates Bitboard, side Color) (string, error) {
	vertical, verticalChar := narrowByDirection(from, to, candidates, side)
	if vertical.Count() == 1 {
		return string(verticalChar), nil
	}
	horizontal, horizontalChar, err := narrowByFile(piece, from, to, candidates, side)
	if err != nil {
		return "", err
	}
	if horizontal.Count() == 1 {
		return string(horizontalChar), nil
	}
	if vertical.And(horizontal).Count() == 1 {
		return string(horizontalChar) + string(verticalChar), nil
	}
	return "", fmt.Errorf("%w: %s to %s", ErrAmbiguous, from, to)
}

// narrowByDirection keeps the candidates sharing the move's vertical
// direction (advancing, retreating or sideways) and names that
// direction.
func narrowByDirection(from, to Square, candidates Bitboard, side Color) (Bitboard, rune) {
	delta := sign(from.RelativeRank(side) - to.RelativeRank(side))
	var subset Bitboard
	for it := candidates; ; {
		c, ok := it.Pop()
		if !ok {
			break
		}
		if sign(c.RelativeRank(side)-to.RelativeRank(side)) == delta {
			subset.Set(c)
		}
	}
	switch {
	case delta > 0:
		return subset, qualUp
	case delta < 0:
		return subset, qualDown
	default:
		return subset, qualSideways
	}
}

// narrowByFile keeps the candidates sharing the move's file offset and
// names the moving piece's side of the destination. Gold-like movers
// get 直 for the straight forward step; other kinds come in pairs at
// most, so left/right is decided between the two.
func narrowByFile(piece Piece, from, to Square, candidates Bitboard, side Color) (Bitboard, rune, error) {
	if piece.Kind().goldLike() {
		fileDiff := from.File() - to.File()
		if fileDiff == 0 && from.RelativeRank(side) > to.RelativeRank(side) {
			return SingleBB(from), qualStraight, nil
		}
		relative := fileDiff
		if side == White {
			relative = -relative
		}
		var char rune
		switch {
		case relative < 0:
			char = qualRight
		case relative > 0:
			char = qualLeft
		default:
			return Bitboard{}, 0, fmt.Errorf("%w: %s to %s", ErrAmbiguous, from, to)
		}
		var subset Bitboard
		for it := candidates; ; {
			c, ok := it.Pop()
			if !ok {
				return subset, char, nil
			}
			if c.File()-to.File() == fileDiff {
				subset.Set(c)
			}
		}
	}
	// Sliders and their promotions never have more than two like pieces
	// on the board, so the pair is ordered by file from the mover's view.
	if candidates.Count() != 2 {
		return Bitboard{}, 0, fmt.Errorf("%w: %d candidates", ErrAmbiguous, candidates.Count())
	}
	it := candidates
	first, _ := it.Pop()
	second, _ := it.Pop()
	if first.File() == second.File() {
		return Bitboard{}, 0, fmt.Errorf("%w: candidates share file %d", ErrAmbiguous, first.File())
	}
	rightmost, leftmost := first, second
	if first.RelativeFile(side) > second.RelativeFile(side) {
		rightmost, leftmost = second, first
	}
	switch from {
	case rightmost:
		return SingleBB(from), qualRight, nil
	case leftmost:
		return SingleBB(from), qualLeft, nil
	}
	return Bitboard{}, 0, fmt.Errorf("%w: origin %s not among candidates", ErrAmbiguous, from)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
