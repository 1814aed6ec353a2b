package kifu_test

import (
	"testing"

	kifu "kifu/pkg/kifu"
)

func TestStartPositionSFEN(t *testing.T) {
	want := "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"
	if got := kifu.StartPosition().SFEN(); got != want {
		t.Fatalf("unexpected sfen: got %s want %s", got, want)
	}
}

// TestMakeMoveAigakari replays a double wing attack opening move by
// move and checks the position after each.
func TestMakeMoveAigakari(t *testing.T) {
	moves := []string{
		"2g2f", "8c8d", "2f2e", "8d8e", "6i7h", "4a3b",
		"2e2d", "2c2d", "2h2d", "5a5b", "2d2b+", "3a2b",
	}
	expectedSFENs := []string{
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/7P1/PPPPPPP1P/1B5R1/LNSGKGSNL w - 2",
		"lnsgkgsnl/1r5b1/p1ppppppp/1p7/9/7P1/PPPPPPP1P/1B5R1/LNSGKGSNL b - 3",
		"lnsgkgsnl/1r5b1/p1ppppppp/1p7/7P1/9/PPPPPPP1P/1B5R1/LNSGKGSNL w - 4",
		"lnsgkgsnl/1r5b1/p1ppppppp/9/1p5P1/9/PPPPPPP1P/1B5R1/LNSGKGSNL b - 5",
		"lnsgkgsnl/1r5b1/p1ppppppp/9/1p5P1/9/PPPPPPP1P/1BG4R1/LNS1KGSNL w - 6",
		"lnsgk1snl/1r4gb1/p1ppppppp/9/1p5P1/9/PPPPPPP1P/1BG4R1/LNS1KGSNL b - 7",
		"lnsgk1snl/1r4gb1/p1ppppppp/7P1/1p7/9/PPPPPPP1P/1BG4R1/LNS1KGSNL w - 8",
		"lnsgk1snl/1r4gb1/p1ppppp1p/7p1/1p7/9/PPPPPPP1P/1BG4R1/LNS1KGSNL b p 9",
		"lnsgk1snl/1r4gb1/p1ppppp1p/7R1/1p7/9/PPPPPPP1P/1BG6/LNS1KGSNL w Pp 10",
		"lnsg2snl/1r2k1gb1/p1ppppp1p/7R1/1p7/9/PPPPPPP1P/1BG6/LNS1KGSNL b Pp 11",
		"lnsg2snl/1r2k1g+R1/p1ppppp1p/9/1p7/9/PPPPPPP1P/1BG6/LNS1KGSNL w BPp 12",
		"lnsg3nl/1r2k1gs1/p1ppppp1p/9/1p7/9/PPPPPPP1P/1BG6/LNS1KGSNL b BPrp 13",
	}

	pos := kifu.StartPosition()
	for i, usi := range moves {
		m, err := kifu.ParseUSIMove(usi)
		if err != nil {
			t.Fatalf("parse move %d (%s): %v", i+1, usi, err)
		}
		if err := pos.MakeMove(m); err != nil {
			t.Fatalf("apply move %d (%s): %v", i+1, usi, err)
		}
		if got := pos.SFEN(); got != expectedSFENs[i] {
			t.Fatalf("unexpected sfen after move %d (%s): got %s want %s",
				i+1, usi, got, expectedSFENs[i])
		}
		assertBitboardsConsistent(t, pos)
	}

	if last, ok := pos.LastMove(); !ok || last.USI() != "3a2b" {
		t.Fatalf("unexpected last move: %v %v", last, ok)
	}
}

// assertBitboardsConsistent cross-checks the mailbox board against the
// per-kind and per-color bitboards.
func assertBitboardsConsistent(t *testing.T, pos *kifu.Position) {
	t.Helper()
	for sq := kifu.Square(0); sq < kifu.NumSquares; sq++ {
		piece := pos.PieceAt(sq)
		for _, color := range []kifu.Color{kifu.Black, kifu.White} {
			for _, kind := range kifu.AllPieceKinds() {
				want := !piece.IsEmpty() && piece.Kind() == kind && piece.Color() == color
				if got := pos.PieceBitboard(color, kind).Has(sq); got != want {
					t.Fatalf("bitboard mismatch at %s for %v %v: got %v want %v",
						sq, color, kind, got, want)
				}
			}
			wantColor := !piece.IsEmpty() && piece.Color() == color
			if got := pos.ColorBitboard(color).Has(sq); got != wantColor {
				t.Fatalf("color bitboard mismatch at %s for %v", sq, color)
			}
		}
		if got := pos.OccupiedBitboard().Has(sq); got != !piece.IsEmpty() {
			t.Fatalf("occupied bitboard mismatch at %s", sq)
		}
		if got := pos.VacantBitboard().Has(sq); got != piece.IsEmpty() {
			t.Fatalf("vacant bitboard mismatch at %s", sq)
		}
	}
}

func TestMakeMoveDrop(t *testing.T) {
	pos, err := kifu.PositionFromSFEN("4k4/9/9/9/9/9/9/9/4K4 b G 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, _ := kifu.ParseUSIMove("G*5e")
	if err := pos.MakeMove(m); err != nil {
		t.Fatalf("drop: %v", err)
	}
	sq, _ := kifu.NewSquare(5, 5)
	if got := pos.PieceAt(sq); got != kifu.NewPiece(kifu.Gold, kifu.Black) {
		t.Fatalf("unexpected piece: %v", got)
	}
	if pos.HandCount(kifu.Black, kifu.Gold) != 0 {
		t.Fatal("gold still in hand after drop")
	}
	if pos.SideToMove() != kifu.White {
		t.Fatal("side to move not flipped")
	}
	// Dropping the gold again must fail.
	if err := pos.MakeMove(m); err == nil {
		t.Fatal("expected error dropping from empty hand")
	}
}

func TestMakeMoveCapturedPromotedUnpromotes(t *testing.T) {
	pos, err := kifu.PositionFromSFEN("4k4/4+p4/4R4/9/9/9/9/9/4K4 b - 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, _ := kifu.ParseUSIMove("5c5b")
	if err := pos.MakeMove(m); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if got := pos.HandCount(kifu.Black, kifu.Pawn); got != 1 {
		t.Fatalf("hand pawns: got %d want 1", got)
	}
	if got := pos.HandCount(kifu.Black, kifu.ProPawn); got != 0 {
		t.Fatal("promoted pawn stored in hand")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pos := kifu.StartPosition()
	clone := pos.Clone()
	m, _ := kifu.ParseUSIMove("7g7f")
	if err := clone.MakeMove(m); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if pos.SFEN() == clone.SFEN() {
		t.Fatal("mutating the clone changed the original")
	}
}
