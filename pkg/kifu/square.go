package kifu

import "fmt"

// Square is a board square, indexed 0-80 in file-major order:
// index = 9*(file-1) + (rank-1). Files count 1-9 from Black's right,
// ranks count 1-9 from White's back rank, matching SFEN orientation.
type Square uint8

// NumSquares is the number of squares on the board.
const NumSquares = 81

// NewSquare builds a Square from 1-based file and rank coordinates.
// Returns false if either coordinate is out of range.
func NewSquare(file, rank int) (Square, bool) {
	if file < 1 || file > 9 || rank < 1 || rank > 9 {
		return 0, false
	}
	return Square(9*(file-1) + rank - 1), true
}

// newRelativeSquare is NewSquare in coordinates relative to color's
// point of view. For White the board is rotated 180 degrees.
func newRelativeSquare(file, rank int, color Color) (Square, bool) {
	if color == White {
		file = 10 - file
		rank = 10 - rank
	}
	return NewSquare(file, rank)
}

// File returns the 1-based file of the square.
func (s Square) File() int {
	return int(s)/9 + 1
}

// Rank returns the 1-based rank of the square.
func (s Square) Rank() int {
	return int(s)%9 + 1
}

// RelativeFile returns the file as seen from color's side.
func (s Square) RelativeFile(color Color) int {
	if color == White {
		return 10 - s.File()
	}
	return s.File()
}

// RelativeRank returns the rank as seen from color's side. Rank 1 is the
// farthest rank from the player; the promotion zone is relative ranks 1-3.
func (s Square) RelativeRank(color Color) int {
	if color == White {
		return 10 - s.Rank()
	}
	return s.Rank()
}

// Shift moves the square by the given file and rank deltas.
// Returns false when the result would leave the board.
func (s Square) Shift(fileDelta, rankDelta int) (Square, bool) {
	return NewSquare(s.File()+fileDelta, s.Rank()+rankDelta)
}

// Flip rotates the square 180 degrees.
func (s Square) Flip() Square {
	return Square(80 - s)
}

// USI renders the square in USI coordinates, e.g. "7g".
func (s Square) USI() string {
	return fmt.Sprintf("%d%c", s.File(), byte('a'+s.Rank()-1))
}

func (s Square) String() string {
	return s.USI()
}

func parseUSISquare(text string) (Square, error) {
	if len(text) != 2 {
		return 0, fmt.Errorf("invalid square: %s", text)
	}
	file := int(text[0] - '0')
	if file < 1 || file > 9 {
		return 0, fmt.Errorf("invalid file: %s", text)
	}
	rank := int(text[1]-'a') + 1
	if rank < 1 || rank > 9 {
		return 0, fmt.Errorf("invalid rank: %s", text)
	}
	sq, _ := NewSquare(file, rank)
	return sq, nil
}
