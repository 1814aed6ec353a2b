package kifu

import (
	"errors"
	"fmt"
)

// Position is a full board state: piece placement, hands, occupancy
// bitboards, side to move, ply, the last move played and cached king
// squares. The notation renderer only reads positions; MakeMove exists
// for pipelines and fixtures that build positions move by move.
//
// The board array is authoritative; the bitboards and king caches are
// kept consistent with it by every mutator in this package. Positions
// assembled by hand through SetPiece keep the same guarantee.
type Position struct {
	side     Color
	ply      int
	hands    [2]Hand
	board    [81]Piece
	colorBB  [2]Bitboard
	pieceBB  [2][numPieceKinds + 1]Bitboard
	lastMove Move
	hasLast  bool
	kings    [2]Square
	hasKing  [2]bool
}

// NewPosition returns an empty board with Black to move at ply 1.
func NewPosition() *Position {
	return &Position{ply: 1}
}

// StartPosition returns the standard initial position.
func StartPosition() *Position {
	pos, err := PositionFromSFEN(startSFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// SideToMove returns the player to move.
func (p *Position) SideToMove() Color {
	return p.side
}

// SetSideToMove sets the player to move.
func (p *Position) SetSideToMove(c Color) {
	p.side = c
}

// Ply returns the 1-based move number of the move about to be played.
func (p *Position) Ply() int {
	return p.ply
}

// PieceAt returns the occupant of sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	return p.board[sq]
}

// Hand returns color's hand.
func (p *Position) Hand(c Color) Hand {
	return p.hands[c]
}

// HandCount returns how many pieces of kind color holds in hand.
func (p *Position) HandCount(c Color, kind PieceKind) int {
	return p.hands[c].Count(kind)
}

// SetHandCount sets the hand count of a droppable kind, for fixtures.
func (p *Position) SetHandCount(c Color, kind PieceKind, n int) {
	i, ok := handIndex(kind)
	if !ok {
		return
	}
	p.hands[c].counts[i] = uint8(n)
}

// PieceBitboard returns the squares occupied by exactly (color, kind).
func (p *Position) PieceBitboard(c Color, kind PieceKind) Bitboard {
	if kind < Pawn || kind > ProRook {
		return Bitboard{}
	}
	return p.pieceBB[c][kind]
}

// ColorBitboard returns the squares occupied by color's pieces.
func (p *Position) ColorBitboard(c Color) Bitboard {
	return p.colorBB[c]
}

// OccupiedBitboard returns the squares occupied by either player.
func (p *Position) OccupiedBitboard() Bitboard {
	return p.colorBB[Black].Or(p.colorBB[White])
}

// VacantBitboard returns the empty squares.
func (p *Position) VacantBitboard() Bitboard {
	return p.OccupiedBitboard().Not()
}

// LastMove returns the most recently played move, if any.
func (p *Position) LastMove() (Move, bool) {
	return p.lastMove, p.hasLast
}

// SetLastMove records the most recently played move, for fixtures.
func (p *Position) SetLastMove(m Move) {
	p.lastMove = m
	p.hasLast = true
}

// KingSquare returns the cached square of color's king, if present.
func (p *Position) KingSquare(c Color) (Square, bool) {
	return p.kings[c], p.hasKing[c]
}

// SetPiece places piece on sq (NoPiece clears it), maintaining the
// bitboards and king caches.
func (p *Position) SetPiece(sq Square, piece Piece) {
	if old := p.board[sq]; !old.IsEmpty() {
		kind, color := old.Parts()
		p.colorBB[color].Clear(sq)
		p.pieceBB[color][kind].Clear(sq)
		if kind == King {
			p.hasKing[color] = false
		}
	}
	p.board[sq] = piece
	if piece.IsEmpty() {
		return
	}
	kind, color := piece.Parts()
	p.colorBB[color].Set(sq)
	p.pieceBB[color][kind].Set(sq)
	if kind == King {
		p.kings[color] = sq
		p.hasKing[color] = true
	}
}

// MakeMove applies m to the position: it moves or drops the piece,
// transfers a captured piece to the mover's hand, flips the side to
// move, advances the ply and records m as the last move. Only cheap
// structural checks are made; rule-level legality is the caller's
// concern.
func (p *Position) MakeMove(m Move) error {
	if m.IsDrop {
		return p.makeDrop(m)
	}
	return p.makeNormal(m)
}

func (p *Position) makeDrop(m Move) error {
	if m.To >= NumSquares {
		return fmt.Errorf("%w: destination %d", ErrInvalidMove, m.To)
	}
	if !p.board[m.To].IsEmpty() {
		return errors.New("drop destination occupied")
	}
	if !p.hands[p.side].Remove(m.Kind) {
		return fmt.Errorf("no %s in hand", m.Kind.Kanji())
	}
	p.SetPiece(m.To, NewPiece(m.Kind, p.side))
	p.finishMove(m)
	return nil
}

func (p *Position) makeNormal(m Move) error {
	if m.From >= NumSquares || m.To >= NumSquares {
		return fmt.Errorf("%w: squares %d-%d", ErrInvalidMove, m.From, m.To)
	}
	piece := p.board[m.From]
	if piece.IsEmpty() {
		return fmt.Errorf("no piece at %s", m.From)
	}
	if piece.Color() != p.side {
		return errors.New("moving opponent piece")
	}
	if captured := p.board[m.To]; !captured.IsEmpty() {
		if captured.Color() == p.side {
			return errors.New("capturing own piece")
		}
		if !p.hands[p.side].Add(captured.Kind()) {
			return fmt.Errorf("cannot capture %s", captured)
		}
	}
	moved := piece
	if m.Promote {
		promoted, ok := piece.Kind().Promote()
		if !ok {
			return fmt.Errorf("cannot promote %s", piece.Kind().Kanji())
		}
		moved = NewPiece(promoted, piece.Color())
	}
	p.SetPiece(m.From, NoPiece)
	p.SetPiece(m.To, moved)
	p.finishMove(m)
	return nil
}

func (p *Position) finishMove(m Move) {
	p.lastMove = m
	p.hasLast = true
	p.side = p.side.Flip()
	p.ply++
}

// Clone returns a deep copy of the position.
func (p *Position) Clone() *Position {
	clone := *p
	return &clone
}
