package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	kifu "kifu/pkg/kifu"
)

// main renders a USI move sequence as kifu notation, either one move
// per line on stdout or as a KIF file.
func main() {
	sfenArg := flag.String("sfen", "", "start position (SFEN, default: even game)")
	movesArg := flag.String("moves", "", "space-separated USI moves")
	movesFile := flag.String("moves-file", "", "file with one USI move per line")
	styleArg := flag.String("style", "", "rank digits: arabic or kansuji (default: kanji ranks in KIF, arabic otherwise)")
	kifPath := flag.String("kif", "", "write a KIF record to this path instead of stdout")
	sjis := flag.Bool("sjis", false, "encode KIF output as Shift-JIS")
	sente := flag.String("sente", "", "sente player name for KIF headers")
	gote := flag.String("gote", "", "gote player name for KIF headers")
	flag.Parse()

	pos, err := startPosition(*sfenArg)
	if err != nil {
		fatal(err)
	}
	usiMoves, err := collectMoves(*movesArg, *movesFile)
	if err != nil {
		fatal(err)
	}
	if len(usiMoves) == 0 {
		fatal(fmt.Errorf("no moves given (use -moves or -moves-file)"))
	}
	style, err := parseStyle(*styleArg)
	if err != nil {
		fatal(err)
	}

	if *kifPath != "" {
		if err := writeKIFFile(*kifPath, pos, usiMoves, kifu.KIFOptions{Style: style, ShiftJIS: *sjis}, *sente, *gote); err != nil {
			fatal(err)
		}
		return
	}

	record, err := kifu.BuildGameRecord("", pos, usiMoves, style)
	if err != nil {
		fatal(err)
	}
	for _, mv := range record.Moves {
		fmt.Println(mv.Kifu)
	}
}

func startPosition(sfen string) (*kifu.Position, error) {
	if sfen == "" {
		return kifu.StartPosition(), nil
	}
	return kifu.PositionFromSFEN(sfen)
}

// collectMoves merges the inline move list with the moves file, either
// of which may be empty.
func collectMoves(inline, path string) ([]string, error) {
	moves := strings.Fields(inline)
	if path == "" {
		return moves, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		moves = append(moves, strings.Fields(line)...)
	}
	return moves, scanner.Err()
}

func parseStyle(name string) (kifu.NumeralStyle, error) {
	switch name {
	case "":
		return kifu.StyleDefault, nil
	case "arabic":
		return kifu.StyleWestern, nil
	case "kansuji":
		return kifu.StyleKanji, nil
	default:
		return kifu.StyleWestern, fmt.Errorf("unknown style %q (want arabic or kansuji)", name)
	}
}

func writeKIFFile(path string, start *kifu.Position, usiMoves []string, opts kifu.KIFOptions, sente, gote string) error {
	moves := make([]kifu.Move, 0, len(usiMoves))
	for i, usi := range usiMoves {
		m, err := kifu.ParseUSIMove(usi)
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	game := kifu.Game{
		SenteName: sente,
		GoteName:  gote,
		Start:     start,
		Moves:     moves,
	}
	return kifu.WriteKIF(f, game, opts)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
