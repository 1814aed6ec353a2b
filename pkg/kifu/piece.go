package kifu

import "fmt"

// PieceKind is the kind of a piece, promoted kinds included.
// Discriminants 1-14 are part of the interchange format; 0 is reserved
// for "no piece".
type PieceKind uint8

const (
	Pawn PieceKind = iota + 1
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	ProBishop
	ProRook
)

const numPieceKinds = 14

// AllPieceKinds returns every kind in ascending discriminant order.
func AllPieceKinds() [numPieceKinds]PieceKind {
	return [numPieceKinds]PieceKind{
		Pawn, Lance, Knight, Silver, Gold, Bishop, Rook,
		King, ProPawn, ProLance, ProKnight, ProSilver, ProBishop, ProRook,
	}
}

// Promote returns the promoted counterpart of the kind.
// Returns false for kinds that cannot promote.
func (k PieceKind) Promote() (PieceKind, bool) {
	switch k {
	case Pawn:
		return ProPawn, true
	case Lance:
		return ProLance, true
	case Knight:
		return ProKnight, true
	case Silver:
		return ProSilver, true
	case Bishop:
		return ProBishop, true
	case Rook:
		return ProRook, true
	default:
		return 0, false
	}
}

// Unpromote returns the base kind of a promoted kind.
// Returns false when the kind is not promoted.
func (k PieceKind) Unpromote() (PieceKind, bool) {
	switch k {
	case ProPawn:
		return Pawn, true
	case ProLance:
		return Lance, true
	case ProKnight:
		return Knight, true
	case ProSilver:
		return Silver, true
	case ProBishop:
		return Bishop, true
	case ProRook:
		return Rook, true
	default:
		return 0, false
	}
}

// Kanji returns the standard kifu abbreviation for the kind.
func (k PieceKind) Kanji() string {
	switch k {
	case Pawn:
		return "歩"
	case Lance:
		return "香"
	case Knight:
		return "桂"
	case Silver:
		return "銀"
	case Gold:
		return "金"
	case Bishop:
		return "角"
	case Rook:
		return "飛"
	case King:
		return "玉"
	case ProPawn:
		return "と"
	case ProLance:
		return "成香"
	case ProKnight:
		return "成桂"
	case ProSilver:
		return "成銀"
	case ProBishop:
		return "馬"
	case ProRook:
		return "竜"
	default:
		return "?"
	}
}

// usiLetter is the USI letter of an unpromoted kind.
func (k PieceKind) usiLetter() (byte, bool) {
	switch k {
	case Pawn:
		return 'P', true
	case Lance:
		return 'L', true
	case Knight:
		return 'N', true
	case Silver:
		return 'S', true
	case Gold:
		return 'G', true
	case Bishop:
		return 'B', true
	case Rook:
		return 'R', true
	case King:
		return 'K', true
	default:
		return 0, false
	}
}

func kindFromUSILetter(b byte) (PieceKind, bool) {
	switch b {
	case 'P':
		return Pawn, true
	case 'L':
		return Lance, true
	case 'N':
		return Knight, true
	case 'S':
		return Silver, true
	case 'G':
		return Gold, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'K':
		return King, true
	default:
		return 0, false
	}
}

// goldLike reports whether the kind moves exactly like a gold general.
// Silver is included here deliberately: the 直 qualifier applies to the
// same family in the official notation rules.
func (k PieceKind) goldLike() bool {
	switch k {
	case Gold, Silver, ProPawn, ProLance, ProKnight, ProSilver:
		return true
	default:
		return false
	}
}

// whiteOffset separates the two color ranges in the packed Piece byte.
const whiteOffset = 16

// Piece is a piece together with its owner, packed into one byte:
// 0 means no piece, 1-14 are Black's kinds, 17-30 are White's.
type Piece uint8

// NoPiece is the empty-square value.
const NoPiece Piece = 0

// NewPiece packs a kind and a color into a Piece.
func NewPiece(kind PieceKind, color Color) Piece {
	v := Piece(kind)
	if color == White {
		v += whiteOffset
	}
	return v
}

// IsEmpty reports whether the value denotes no piece.
func (p Piece) IsEmpty() bool {
	return p == NoPiece
}

// Kind returns the kind of the piece. Calling Kind on NoPiece returns 0.
func (p Piece) Kind() PieceKind {
	return PieceKind(p & 15)
}

// Color returns the owner of the piece.
func (p Piece) Color() Color {
	if p >= whiteOffset {
		return White
	}
	return Black
}

// Parts splits the piece into its kind and color.
func (p Piece) Parts() (PieceKind, Color) {
	return p.Kind(), p.Color()
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%s %s", p.Color(), p.Kind().Kanji())
}
