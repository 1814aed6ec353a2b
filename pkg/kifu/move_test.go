package kifu_test

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	kifu "kifu/pkg/kifu"
)

// TestCompactMoveRoundTrip encodes every board move shape and checks
// the decoded move is identical and never collides with the sentinel.
func TestCompactMoveRoundTrip(t *testing.T) {
	is := is.New(t)
	for from := kifu.Square(0); from < kifu.NumSquares; from++ {
		for to := kifu.Square(0); to < kifu.NumSquares; to++ {
			if from == to {
				continue
			}
			for _, promote := range []bool{false, true} {
				m := kifu.NormalMove(from, to, promote)
				cm, err := m.Encode()
				is.NoErr(err)
				is.True(!cm.IsNone())
				decoded, err := cm.Decode()
				is.NoErr(err)
				is.Equal(decoded, m)
			}
		}
	}
}

func TestCompactMoveDropRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, kind := range kifu.AllPieceKinds() {
		for to := kifu.Square(0); to < kifu.NumSquares; to++ {
			m := kifu.DropMove(kind, to)
			cm, err := m.Encode()
			is.NoErr(err)
			is.True(!cm.IsNone())
			decoded, err := cm.Decode()
			is.NoErr(err)
			is.Equal(decoded, m)
			is.True(decoded.IsDrop)
		}
	}
}

func TestCompactMoveSentinel(t *testing.T) {
	is := is.New(t)
	is.True(kifu.NoCompactMove.IsNone())
	_, err := kifu.NoCompactMove.Decode()
	is.True(errors.Is(err, kifu.ErrNoMove))
}

func TestCompactMoveRejectsNullMove(t *testing.T) {
	sq, _ := kifu.NewSquare(5, 5)
	m := kifu.NormalMove(sq, sq, false)
	if _, err := m.Encode(); !errors.Is(err, kifu.ErrInvalidMove) {
		t.Fatalf("want ErrInvalidMove, got %v", err)
	}
}

func TestParseUSIMove(t *testing.T) {
	cases := []string{"7g7f", "3c3d", "8h2b+", "P*5e", "G*4h", "1a1b"}
	for _, text := range cases {
		m, err := kifu.ParseUSIMove(text)
		if err != nil {
			t.Fatalf("parse %s: %v", text, err)
		}
		if got := m.USI(); got != text {
			t.Fatalf("roundtrip %s: got %s", text, got)
		}
	}
	for _, text := range []string{"", "7g", "7g7z", "K*5e", "7g7f=", "**5e"} {
		if _, err := kifu.ParseUSIMove(text); err == nil {
			t.Fatalf("parse %q: expected error", text)
		}
	}
}
