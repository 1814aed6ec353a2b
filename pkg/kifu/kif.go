package kifu

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Game is one game to be written as a KIF record: a starting position
// and the moves played from it. Terminal, when set, is the end-of-game
// marker written after the last move (投了, 中断, ...).
type Game struct {
	SenteName string
	GoteName  string
	Start     *Position
	Moves     []Move
	Terminal  string
}

// KIFOptions control the KIF writer output.
type KIFOptions struct {
	// Style selects the rank-digit alphabet of move tokens. KIF files
	// conventionally use kanji ranks, so StyleDefault resolves to
	// StyleKanji here.
	Style NumeralStyle
	// ShiftJIS encodes the output as Shift-JIS, the encoding most KIF
	// consumers still expect. Plain UTF-8 otherwise.
	ShiftJIS bool
}

// FormatKIFMove renders one move as a KIF move token: destination (or
// 同　), piece name, promotion marker, and either the origin suffix
// "(77)" or 打 for a drop. pos must be the position the move is played
// from. Unlike kifu notation, KIF tokens carry the origin square and
// therefore never need disambiguation qualifiers.
func FormatKIFMove(pos *Position, m Move, style NumeralStyle) (string, error) {
	var b strings.Builder
	side := pos.SideToMove()
	if m.IsDrop {
		if m.Kind < Pawn || m.Kind > Rook {
			return "", fmt.Errorf("%w: cannot drop %s", ErrInvalidMove, m.Kind.Kanji())
		}
		if pos.HandCount(side, m.Kind) == 0 {
			return "", fmt.Errorf("%w: %s", ErrEmptyHand, m.Kind.Kanji())
		}
	} else {
		if m.From >= NumSquares {
			return "", fmt.Errorf("%w: origin %d", ErrInvalidMove, m.From)
		}
		if pos.PieceAt(m.From).IsEmpty() {
			return "", fmt.Errorf("%w: %s", ErrNoPieceAtOrigin, m.From)
		}
	}
	if m.To >= NumSquares {
		return "", fmt.Errorf("%w: destination %d", ErrInvalidMove, m.To)
	}
	if last, ok := pos.LastMove(); ok && last.To == m.To {
		// The ideographic space keeps the token the same width as an
		// explicit destination.
		b.WriteString("同　")
	} else {
		b.WriteRune(style.fileRune(m.To.File()))
		b.WriteRune(style.rankRune(m.To.Rank()))
	}
	if m.IsDrop {
		b.WriteString(m.Kind.Kanji())
		b.WriteString(dropMark)
		return b.String(), nil
	}
	b.WriteString(pos.PieceAt(m.From).Kind().Kanji())
	if m.Promote {
		b.WriteString(promoteMark)
	}
	fmt.Fprintf(&b, "(%d%d)", m.From.File(), m.From.Rank())
	return b.String(), nil
}

// WriteKIF writes game as a KIF record: player headers, the handicap
// line for standard games, and the numbered move section. The start
// position is not modified.
func WriteKIF(w io.Writer, game Game, opts KIFOptions) error {
	if game.Start == nil {
		return fmt.Errorf("game has no start position")
	}
	if opts.Style == StyleDefault {
		opts.Style = StyleKanji
	}
	if opts.ShiftJIS {
		tw := transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
		if err := writeKIFBody(tw, game, opts.Style); err != nil {
			return err
		}
		return tw.Close()
	}
	return writeKIFBody(w, game, opts.Style)
}

func writeKIFBody(w io.Writer, game Game, style NumeralStyle) error {
	if game.SenteName != "" {
		if _, err := fmt.Fprintf(w, "先手：%s\n", game.SenteName); err != nil {
			return err
		}
	}
	if game.GoteName != "" {
		if _, err := fmt.Fprintf(w, "後手：%s\n", game.GoteName); err != nil {
			return err
		}
	}
	if game.Start.SFEN() == startSFEN {
		if _, err := fmt.Fprintln(w, "手合割：平手"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "手数----指手---------"); err != nil {
		return err
	}
	pos := game.Start.Clone()
	for i, m := range game.Moves {
		token, err := FormatKIFMove(pos, m, style)
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "%4d %s\n", i+1, token); err != nil {
			return err
		}
		if err := pos.MakeMove(m); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	if game.Terminal != "" {
		if _, err := fmt.Fprintf(w, "%4d %s\n", len(game.Moves)+1, game.Terminal); err != nil {
			return err
		}
	}
	return nil
}
