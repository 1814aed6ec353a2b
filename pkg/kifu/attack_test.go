package kifu_test

import (
	"sort"
	"testing"

	kifu "kifu/pkg/kifu"
)

func attackUSI(t *testing.T, pos *kifu.Position, file, rank int) []string {
	t.Helper()
	from := mustSquare(t, file, rank)
	piece := pos.PieceAt(from)
	if piece.IsEmpty() {
		t.Fatalf("no piece at %d%d", file, rank)
	}
	var got []string
	for _, sq := range kifu.Attacking(pos, piece, from).Squares() {
		got = append(got, sq.USI())
	}
	sort.Strings(got)
	return got
}

func assertSquares(t *testing.T, got, want []string) {
	t.Helper()
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestAttackingStartPosition(t *testing.T) {
	pos := kifu.StartPosition()

	// Pawns advance one square.
	assertSquares(t, attackUSI(t, pos, 7, 7), []string{"7f"})
	assertSquares(t, attackUSI(t, pos, 3, 3), []string{"3d"})

	// The bishop is boxed in behind its own pawns.
	assertSquares(t, attackUSI(t, pos, 8, 8), nil)

	// The rook slides along the free second-to-last rank.
	assertSquares(t, attackUSI(t, pos, 2, 8),
		[]string{"1h", "3h", "4h", "5h", "6h", "7h"})

	// Knights have no forward room yet; the edge lance sees one square.
	assertSquares(t, attackUSI(t, pos, 8, 9), nil)
	assertSquares(t, attackUSI(t, pos, 1, 9), []string{"1h"})
	assertSquares(t, attackUSI(t, pos, 5, 9), []string{"4h", "5h", "6h"})
}

func TestAttackingSliders(t *testing.T) {
	pos := mustPosition(t, "4k4/9/9/9/4B4/9/9/9/4K4 b - 1")
	assertSquares(t, attackUSI(t, pos, 5, 5), []string{
		"1a", "2b", "3c", "4d", "6f", "7g", "8h", "9i",
		"9a", "8b", "7c", "6d", "4f", "3g", "2h", "1i",
	})

	// A blocker's square is attacked, squares beyond it are not; own
	// pieces mask their square off entirely.
	pos = mustPosition(t, "4k4/9/9/9/R1p1P4/9/9/9/4K4 b - 1")
	assertSquares(t, attackUSI(t, pos, 9, 5), []string{
		"9a", "9b", "9c", "9d", "9f", "9g", "9h", "9i", "8e", "7e",
	})
}

func TestAttackingPromotedSliders(t *testing.T) {
	pos := mustPosition(t, "4k4/9/9/9/8+R/9/9/9/4K4 b - 1")
	assertSquares(t, attackUSI(t, pos, 1, 5), []string{
		"1a", "1b", "1c", "1d", "1f", "1g", "1h", "1i",
		"2e", "3e", "4e", "5e", "6e", "7e", "8e", "9e",
		"2d", "2f",
	})
}

func TestAttackingWhitePieces(t *testing.T) {
	pos := mustPosition(t, "4k4/9/4p4/9/9/9/9/9/4K4 w - 1")
	assertSquares(t, attackUSI(t, pos, 5, 3), []string{"5d"})

	pos = mustPosition(t, "4k4/9/9/9/4s4/9/9/9/4K4 w - 1")
	assertSquares(t, attackUSI(t, pos, 5, 5),
		[]string{"4f", "5f", "6f", "4d", "6d"})

	pos = mustPosition(t, "4k4/9/9/9/4g4/9/9/9/4K4 w - 1")
	assertSquares(t, attackUSI(t, pos, 5, 5),
		[]string{"4f", "5f", "6f", "4e", "6e", "5d"})
}

func TestCanReachPromotionRules(t *testing.T) {
	pos := mustPosition(t, "4k4/9/8P/9/4L4/9/9/9/4K4 b - 1")
	pawn := pos.PieceAt(mustSquare(t, 1, 3))

	// A pawn may not land on the last rank unpromoted.
	from, to := mustSquare(t, 1, 3), mustSquare(t, 1, 2)
	if !kifu.CanReach(pos, pawn, from, to, false) {
		t.Fatal("pawn to 1b unpromoted should be reachable")
	}
	if !kifu.CanReach(pos, pawn, from, to, true) {
		t.Fatal("pawn to 1b promoted should be reachable")
	}
	pos3 := mustPosition(t, "4k4/8P/9/9/9/9/9/9/4K4 b - 1")
	pawn3 := pos3.PieceAt(mustSquare(t, 1, 2))
	from3, to3 := mustSquare(t, 1, 2), mustSquare(t, 1, 1)
	if kifu.CanReach(pos3, pawn3, from3, to3, false) {
		t.Fatal("pawn to last rank unpromoted should be rejected")
	}
	if !kifu.CanReach(pos3, pawn3, from3, to3, true) {
		t.Fatal("pawn to last rank promoted should be allowed")
	}

	// Promotion requires touching the zone.
	lance := pos.PieceAt(mustSquare(t, 5, 5))
	if kifu.CanReach(pos, lance, mustSquare(t, 5, 5), mustSquare(t, 5, 4), true) {
		t.Fatal("promotion outside the zone should be rejected")
	}
	if !kifu.CanReach(pos, lance, mustSquare(t, 5, 5), mustSquare(t, 5, 2), true) {
		t.Fatal("promotion into the zone should be allowed")
	}

	// Gold has no promotion at all.
	pos4 := mustPosition(t, "4k4/4G4/9/9/9/9/9/9/4K4 b - 1")
	gold := pos4.PieceAt(mustSquare(t, 5, 2))
	if kifu.CanReach(pos4, gold, mustSquare(t, 5, 2), mustSquare(t, 5, 1), true) {
		t.Fatal("gold cannot promote")
	}
}

func TestCanDrop(t *testing.T) {
	pos := kifu.StartPosition()
	if kifu.CanDrop(pos, kifu.Black, kifu.Gold, mustSquare(t, 5, 9)) {
		t.Fatal("occupied square should reject drops")
	}
	if !kifu.CanDrop(pos, kifu.Black, kifu.Gold, mustSquare(t, 5, 5)) {
		t.Fatal("vacant square should accept a gold drop")
	}
	if kifu.CanDrop(pos, kifu.Black, kifu.Pawn, mustSquare(t, 5, 1)) {
		t.Fatal("pawn drop on the last rank should be rejected")
	}
	if kifu.CanDrop(pos, kifu.Black, kifu.Knight, mustSquare(t, 5, 2)) {
		t.Fatal("knight drop on the second rank should be rejected")
	}
	if !kifu.CanDrop(pos, kifu.White, kifu.Pawn, mustSquare(t, 5, 5)) {
		t.Fatal("white pawn drop mid-board should be accepted")
	}
	if kifu.CanDrop(pos, kifu.White, kifu.Lance, mustSquare(t, 5, 9)) {
		t.Fatal("white lance drop on its last rank should be rejected")
	}
}
