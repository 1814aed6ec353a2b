package kifu

// handKinds lists the droppable kinds in the order SFEN hands are
// conventionally written.
var handKinds = [7]PieceKind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// maxHandCount caps a single kind's count in hand. Eighteen pawns is the
// physical maximum; no kind can exceed it.
const maxHandCount = 18

// Hand is the multiset of captured pieces one player may drop.
// Only unpromoted, non-royal kinds are counted.
type Hand struct {
	counts [7]uint8
}

func handIndex(kind PieceKind) (int, bool) {
	if kind >= Pawn && kind <= Rook {
		return int(kind - Pawn), true
	}
	return 0, false
}

// Count returns how many pieces of the kind are in hand.
// Kinds that cannot be held return zero.
func (h Hand) Count(kind PieceKind) int {
	i, ok := handIndex(kind)
	if !ok {
		return 0
	}
	return int(h.counts[i])
}

// Add puts one piece of the kind into the hand. Promoted kinds are
// stored as their base kind, the way a captured piece reverts.
// Returns false for the king or when the count cap is reached.
func (h *Hand) Add(kind PieceKind) bool {
	if base, ok := kind.Unpromote(); ok {
		kind = base
	}
	i, ok := handIndex(kind)
	if !ok || h.counts[i] >= maxHandCount {
		return false
	}
	h.counts[i]++
	return true
}

// Remove takes one piece of the kind out of the hand.
// Returns false when none is held.
func (h *Hand) Remove(kind PieceKind) bool {
	i, ok := handIndex(kind)
	if !ok || h.counts[i] == 0 {
		return false
	}
	h.counts[i]--
	return true
}

// IsEmpty reports whether the hand holds no pieces.
func (h Hand) IsEmpty() bool {
	for _, c := range h.counts {
		if c != 0 {
			return false
		}
	}
	return true
}
