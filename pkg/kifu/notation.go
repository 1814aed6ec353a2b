package kifu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPieceAtOrigin is returned when a board move's origin square
	// is empty in the given position.
	ErrNoPieceAtOrigin = errors.New("no piece at origin square")
	// ErrEmptyHand is returned when a drop's piece kind is not held by
	// the side to move.
	ErrEmptyHand = errors.New("piece not in hand")
	// ErrAmbiguous is returned when no qualifier combination can
	// distinguish the move, which indicates an inconsistent position.
	ErrAmbiguous = errors.New("move cannot be disambiguated")
)

const (
	blackMark     = '▲'
	whiteMark     = '△'
	sameSquare    = '同'
	promoteMark   = "成"
	noPromoteMark = "不成"
	dropMark      = "打"
)

// RenderMove decodes cm and renders it as one official kifu entry in the
// default numeral style. See RenderMoveStyled.
func RenderMove(pos *Position, cm CompactMove) (string, error) {
	return RenderMoveStyled(pos, cm, StyleWestern)
}

// RenderMoveStyled decodes cm against pos and renders the official kifu
// notation: side marker, destination (同 when it repeats the previous
// destination), piece name, promotion or declined-promotion marker, drop
// marker, and a disambiguating qualifier when another like piece could
// reach the same square. The position is not modified. Nothing is
// produced when the move and position are inconsistent; the worst-case
// result is under sixteen runes.
func RenderMoveStyled(pos *Position, cm CompactMove, style NumeralStyle) (string, error) {
	m, err := cm.Decode()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := WriteMove(pos, m, style, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteMove renders an already-decoded move into b. The checks run
// before any write, so a failed call leaves b untouched.
func WriteMove(pos *Position, m Move, style NumeralStyle, b *strings.Builder) error {
	if m.To >= NumSquares || (!m.IsDrop && m.From >= NumSquares) {
		return fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	side := pos.SideToMove()

	var piece Piece
	var candidates Bitboard
	if m.IsDrop {
		if m.Kind < Pawn || m.Kind > Rook {
			return fmt.Errorf("%w: cannot drop %s", ErrInvalidMove, m.Kind.Kanji())
		}
		if pos.HandCount(side, m.Kind) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyHand, m.Kind.Kanji())
		}
	} else {
		piece = pos.PieceAt(m.From)
		if piece.IsEmpty() {
			return fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, m.From)
		}
		candidates = originCandidates(pos, piece, m.To)
		if !candidates.Has(m.From) {
			// The qualifier table is undefined for a piece that cannot
			// reach its own destination.
			return fmt.Errorf("%w: %s cannot reach %s", ErrAmbiguous, m.From, m.To)
		}
	}

	qualifier := ""
	if !m.IsDrop && candidates.Count() > 1 {
		q, err := disambiguate(piece, m.From, m.To, candidates, side)
		if err != nil {
			return err
		}
		qualifier = q
	}

	if side == Black {
		b.WriteRune(blackMark)
	} else {
		b.WriteRune(whiteMark)
	}
	if last, ok := pos.LastMove(); ok && last.To == m.To {
		b.WriteRune(sameSquare)
	} else {
		b.WriteRune(style.fileRune(m.To.File()))
		b.WriteRune(style.rankRune(m.To.Rank()))
	}
	if m.IsDrop {
		b.WriteString(m.Kind.Kanji())
		b.WriteString(dropMark)
		return nil
	}
	b.WriteString(piece.Kind().Kanji())
	if m.Promote {
		b.WriteString(promoteMark)
	} else if couldPromote(piece, m.From, m.To) {
		b.WriteString(noPromoteMark)
	}
	b.WriteString(qualifier)
	return nil
}

// originCandidates is the set of squares holding pieces identical to
// piece that attack to, the moving piece's own origin included.
func originCandidates(pos *Position, piece Piece, to Square) Bitboard {
	kind, color := piece.Parts()
	var result Bitboard
	for it := pos.PieceBitboard(color, kind); ; {
		from, ok := it.Pop()
		if !ok {
			return result
		}
		if Attacking(pos, piece, from).Has(to) {
			result.Set(from)
		}
	}
}

func couldPromote(piece Piece, from, to Square) bool {
	kind, color := piece.Parts()
	if _, ok := kind.Promote(); !ok {
		return false
	}
	return from.RelativeRank(color) <= 3 || to.RelativeRank(color) <= 3
}
