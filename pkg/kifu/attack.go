package kifu

// Attacking returns the squares piece could move to from sq in a single
// move of its movement pattern, considering blockers and excluding
// squares occupied by the mover's own pieces. piece must be the occupant
// of sq; the result is what the notation renderer needs to resolve
// ambiguity, not a full legality verdict.
func Attacking(pos *Position, piece Piece, from Square) Bitboard {
	kind, color := piece.Parts()
	switch kind {
	case Lance, Bishop, Rook, ProBishop, ProRook:
		occupied := pos.OccupiedBitboard()
		var rng Bitboard
		switch kind {
		case Lance:
			rng = lanceRange(color, from, occupied)
		case Bishop:
			rng = bishopRange(from, occupied)
		case Rook:
			rng = rookRange(from, occupied)
		case ProBishop:
			rng = bishopRange(from, occupied).Or(kingSteps(from))
		case ProRook:
			rng = rookRange(from, occupied).Or(kingSteps(from))
		}
		return rng.Diff(pos.ColorBitboard(color))
	}
	return shortRange(kind, color, from).Diff(pos.ColorBitboard(color))
}

// CanReach reports whether piece on from attacks to, with the structural
// move restrictions applied: a piece may not end a move on a rank it
// could never leave without promoting unless the move promotes, and a
// promotion requires touching the promotion zone.
func CanReach(pos *Position, piece Piece, from, to Square, promote bool) bool {
	kind, color := piece.Parts()
	if promote {
		if _, ok := kind.Promote(); !ok {
			return false
		}
		if from.RelativeRank(color) > 3 && to.RelativeRank(color) > 3 {
			return false
		}
	} else {
		relRank := to.RelativeRank(color)
		if relRank == 1 && (kind == Pawn || kind == Lance || kind == Knight) {
			return false
		}
		if relRank == 2 && kind == Knight {
			return false
		}
	}
	return Attacking(pos, piece, from).Has(to)
}

// CanDrop reports whether a drop of kind on to is structurally possible
// for color: the square is vacant and the piece would not be stuck.
// Hand counts and drop-pawn rules are not consulted here.
func CanDrop(pos *Position, color Color, kind PieceKind, to Square) bool {
	if !pos.PieceAt(to).IsEmpty() {
		return false
	}
	relRank := to.RelativeRank(color)
	if relRank == 1 && (kind == Pawn || kind == Lance || kind == Knight) {
		return false
	}
	if relRank == 2 && kind == Knight {
		return false
	}
	return true
}

func shortRange(kind PieceKind, color Color, from Square) Bitboard {
	switch kind {
	case Pawn:
		return pawnSteps(color, from)
	case Knight:
		return knightSteps(color, from)
	case Silver:
		return silverSteps(color, from)
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return goldSteps(color, from)
	case King:
		return kingSteps(from)
	}
	return Bitboard{}
}

func pawnSteps(color Color, from Square) Bitboard {
	dr := -1
	if color == White {
		dr = 1
	}
	var result Bitboard
	if to, ok := from.Shift(0, dr); ok {
		result.Set(to)
	}
	return result
}

func knightSteps(color Color, from Square) Bitboard {
	var result Bitboard
	rank := from.RelativeRank(color)
	if rank <= 2 {
		return result
	}
	file := from.RelativeFile(color)
	if file >= 2 {
		to, _ := newRelativeSquare(file-1, rank-2, color)
		result.Set(to)
	}
	if file <= 8 {
		to, _ := newRelativeSquare(file+1, rank-2, color)
		result.Set(to)
	}
	return result
}

func silverSteps(color Color, from Square) Bitboard {
	var result Bitboard
	file := from.RelativeFile(color)
	rank := from.RelativeRank(color)
	if rank >= 2 {
		for toFile := max(1, file-1); toFile <= min(9, file+1); toFile++ {
			to, _ := newRelativeSquare(toFile, rank-1, color)
			result.Set(to)
		}
	}
	if rank <= 8 {
		if file <= 8 {
			to, _ := newRelativeSquare(file+1, rank+1, color)
			result.Set(to)
		}
		if file >= 2 {
			to, _ := newRelativeSquare(file-1, rank+1, color)
			result.Set(to)
		}
	}
	return result
}

func goldSteps(color Color, from Square) Bitboard {
	var result Bitboard
	file := from.RelativeFile(color)
	rank := from.RelativeRank(color)
	for toFile := max(1, file-1); toFile <= min(9, file+1); toFile++ {
		for toRank := max(1, rank-1); toRank <= rank; toRank++ {
			to, _ := newRelativeSquare(toFile, toRank, color)
			result.Set(to)
		}
	}
	if rank <= 8 {
		to, _ := newRelativeSquare(file, rank+1, color)
		result.Set(to)
	}
	result.Clear(from)
	return result
}

func kingSteps(from Square) Bitboard {
	var result Bitboard
	file := from.File()
	rank := from.Rank()
	for toFile := max(1, file-1); toFile <= min(9, file+1); toFile++ {
		for toRank := max(1, rank-1); toRank <= min(9, rank+1); toRank++ {
			to, _ := NewSquare(toFile, toRank)
			result.Set(to)
		}
	}
	result.Clear(from)
	return result
}

func lanceRange(color Color, from Square, occupied Bitboard) Bitboard {
	dr := -1
	if color == White {
		dr = 1
	}
	return longRange(from, occupied, 0, dr)
}

func bishopRange(from Square, occupied Bitboard) Bitboard {
	var result Bitboard
	for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		result = result.Or(longRange(from, occupied, d[0], d[1]))
	}
	return result
}

func rookRange(from Square, occupied Bitboard) Bitboard {
	var result Bitboard
	for _, d := range [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
		result = result.Or(longRange(from, occupied, d[0], d[1]))
	}
	return result
}

// longRange walks from square by square until blocked. The blocking
// piece's square is included; own pieces are masked off by the caller.
func longRange(from Square, occupied Bitboard, fileDelta, rankDelta int) Bitboard {
	var result Bitboard
	current := from
	for {
		next, ok := current.Shift(fileDelta, rankDelta)
		if !ok {
			return result
		}
		result.Set(next)
		if occupied.Has(next) {
			return result
		}
		current = next
	}
}
