package kifu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoMove is returned when the reserved all-zero CompactMove is decoded.
	ErrNoMove = errors.New("no move")
	// ErrInvalidMove is returned when a move or its encoding is out of range.
	ErrInvalidMove = errors.New("invalid move")
)

// Move is a decoded move: either a board move (From, To, Promote) or a
// drop from hand (Kind, To). Values are constructed once and never mutated.
type Move struct {
	From    Square
	To      Square
	Kind    PieceKind
	Promote bool
	IsDrop  bool
}

// NormalMove builds a board move.
func NormalMove(from, to Square, promote bool) Move {
	return Move{From: from, To: to, Promote: promote}
}

// DropMove builds a drop of kind onto to.
func DropMove(kind PieceKind, to Square) Move {
	return Move{Kind: kind, To: to, IsDrop: true}
}

// USI renders the move in USI notation, e.g. "7g7f", "2b3a+", "P*5e".
func (m Move) USI() string {
	if m.IsDrop {
		letter, _ := m.Kind.usiLetter()
		return fmt.Sprintf("%c*%s", letter, m.To.USI())
	}
	if m.Promote {
		return m.From.USI() + m.To.USI() + "+"
	}
	return m.From.USI() + m.To.USI()
}

// ParseUSIMove parses a USI move string into a Move.
func ParseUSIMove(text string) (Move, error) {
	if strings.Contains(text, "*") {
		parts := strings.SplitN(text, "*", 2)
		if len(parts) != 2 || len(parts[0]) != 1 {
			return Move{}, fmt.Errorf("invalid drop move: %s", text)
		}
		kind, ok := kindFromUSILetter(parts[0][0])
		if !ok || kind == King {
			return Move{}, fmt.Errorf("invalid drop piece: %s", text)
		}
		to, err := parseUSISquare(parts[1])
		if err != nil {
			return Move{}, err
		}
		return DropMove(kind, to), nil
	}
	if len(text) < 4 {
		return Move{}, fmt.Errorf("invalid move: %s", text)
	}
	from, err := parseUSISquare(text[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := parseUSISquare(text[2:4])
	if err != nil {
		return Move{}, err
	}
	promote := false
	if len(text) > 4 {
		if text[4:] != "+" {
			return Move{}, fmt.Errorf("invalid promotion marker: %s", text)
		}
		promote = true
	}
	return NormalMove(from, to, promote), nil
}

// CompactMove is the 16-bit interchange encoding of a Move.
//
// Board move: bit 15 promotion, bits 8-14 origin square (0-80),
// bits 0-7 destination square (0-80).
// Drop: bits 8-15 piece-kind discriminant, bit 7 always set,
// bits 0-6 destination square (0-80).
//
// Since a board destination never exceeds 80, bit 7 of the low byte
// separates the two layouts. The all-zero value never encodes a valid
// move and serves as the "absent move" sentinel.
type CompactMove uint16

// NoCompactMove is the reserved absent-move sentinel.
const NoCompactMove CompactMove = 0

const dropMarkerBit = 0x0080

// Encode packs a Move into its CompactMove form. Moves with out-of-range
// squares or kinds, and board moves whose origin equals their destination,
// are rejected.
func (m Move) Encode() (CompactMove, error) {
	if m.To >= NumSquares {
		return 0, fmt.Errorf("%w: destination %d", ErrInvalidMove, m.To)
	}
	if m.IsDrop {
		if m.Kind < Pawn || m.Kind > ProRook {
			return 0, fmt.Errorf("%w: piece kind %d", ErrInvalidMove, m.Kind)
		}
		return CompactMove(m.Kind)<<8 | dropMarkerBit | CompactMove(m.To), nil
	}
	if m.From >= NumSquares {
		return 0, fmt.Errorf("%w: origin %d", ErrInvalidMove, m.From)
	}
	if m.From == m.To {
		return 0, fmt.Errorf("%w: origin equals destination %s", ErrInvalidMove, m.To)
	}
	v := CompactMove(m.From)<<8 | CompactMove(m.To)
	if m.Promote {
		v |= 1 << 15
	}
	return v, nil
}

// Decode unpacks a CompactMove. The zero sentinel is rejected with
// ErrNoMove; use IsNone to test for it instead.
func (c CompactMove) Decode() (Move, error) {
	if c == NoCompactMove {
		return Move{}, ErrNoMove
	}
	if c&dropMarkerBit != 0 {
		kind := PieceKind(c >> 8)
		if kind < Pawn || kind > ProRook {
			return Move{}, fmt.Errorf("%w: piece kind %d", ErrInvalidMove, kind)
		}
		to := Square(c & 0x7f)
		if to >= NumSquares {
			return Move{}, fmt.Errorf("%w: destination %d", ErrInvalidMove, to)
		}
		return DropMove(kind, to), nil
	}
	to := Square(c & 0xff)
	from := Square(c >> 8 & 0x7f)
	if to >= NumSquares || from >= NumSquares {
		return Move{}, fmt.Errorf("%w: squares %d-%d", ErrInvalidMove, from, to)
	}
	return NormalMove(from, to, c>>15 != 0), nil
}

// IsNone reports whether c is the absent-move sentinel.
func (c CompactMove) IsNone() bool {
	return c == NoCompactMove
}
