package kifu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const startSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// PositionFromSFEN parses an SFEN position string, with or without the
// leading "sfen " tag. The move-number field is optional and defaults to 1.
func PositionFromSFEN(sfen string) (*Position, error) {
	sfen = strings.TrimPrefix(strings.TrimSpace(sfen), "sfen ")
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return nil, fmt.Errorf("invalid sfen: %s", sfen)
	}
	pos := NewPosition()
	if fields[1] == "w" {
		pos.side = White
	} else if fields[1] != "b" {
		return nil, fmt.Errorf("invalid side to move: %s", fields[1])
	}
	if err := parseBoardSFEN(fields[0], pos); err != nil {
		return nil, err
	}
	if err := parseHandsSFEN(fields[2], pos); err != nil {
		return nil, err
	}
	rest := fields[3:]
	if len(rest) > 0 && rest[0] != "moves" {
		ply, err := strconv.Atoi(rest[0])
		if err != nil || ply < 1 {
			return nil, fmt.Errorf("invalid move number: %s", rest[0])
		}
		pos.ply = ply
		rest = rest[1:]
	}
	// A "moves ..." tail in the USI position style is replayed on top of
	// the parsed position.
	if len(rest) > 0 {
		if rest[0] != "moves" {
			return nil, fmt.Errorf("unexpected sfen field: %s", rest[0])
		}
		for _, usi := range rest[1:] {
			m, err := ParseUSIMove(usi)
			if err != nil {
				return nil, err
			}
			if err := pos.MakeMove(m); err != nil {
				return nil, err
			}
		}
	}
	return pos, nil
}

func parseBoardSFEN(board string, pos *Position) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != 9 {
		return fmt.Errorf("invalid board ranks: %d", len(ranks))
	}
	for rankIndex, rankText := range ranks {
		file := 9
		runes := []rune(rankText)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			if r >= '1' && r <= '9' {
				file -= int(r - '0')
				continue
			}
			promoted := false
			if r == '+' {
				promoted = true
				i++
				if i >= len(runes) {
					return errors.New("dangling promotion marker")
				}
				r = runes[i]
			}
			color := Black
			if r >= 'a' && r <= 'z' {
				color = White
				r -= 'a' - 'A'
			}
			kind, ok := kindFromUSILetter(byte(r))
			if !ok {
				return fmt.Errorf("unknown sfen piece %c", r)
			}
			if promoted {
				kind, ok = kind.Promote()
				if !ok {
					return fmt.Errorf("piece cannot promote: %c", r)
				}
			}
			if file < 1 {
				return errors.New("too many files in rank")
			}
			sq, _ := NewSquare(file, rankIndex+1)
			pos.SetPiece(sq, NewPiece(kind, color))
			file--
		}
		if file != 0 {
			return fmt.Errorf("rank %d does not have 9 files", rankIndex+1)
		}
	}
	return nil
}

func parseHandsSFEN(hand string, pos *Position) error {
	if hand == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(hand); i++ {
		b := hand[i]
		if b >= '0' && b <= '9' {
			count = count*10 + int(b-'0')
			continue
		}
		if count == 0 {
			count = 1
		}
		color := Black
		if b >= 'a' && b <= 'z' {
			color = White
			b -= 'a' - 'A'
		}
		kind, ok := kindFromUSILetter(b)
		if !ok || kind == King {
			return fmt.Errorf("unknown hand piece %c", b)
		}
		pos.SetHandCount(color, kind, pos.HandCount(color, kind)+count)
		count = 0
	}
	if count != 0 {
		return errors.New("trailing hand count")
	}
	return nil
}

// SFEN renders the position as an SFEN string, move number included.
func (p *Position) SFEN() string {
	var rows []string
	for rank := 1; rank <= 9; rank++ {
		rows = append(rows, p.rankSFEN(rank))
	}
	turn := "b"
	if p.side == White {
		turn = "w"
	}
	hand := handsSFEN(p.hands[Black], p.hands[White])
	if hand == "" {
		hand = "-"
	}
	return fmt.Sprintf("%s %s %s %d", strings.Join(rows, "/"), turn, hand, p.ply)
}

func (p *Position) rankSFEN(rank int) string {
	var b strings.Builder
	empty := 0
	flushEmpty := func() {
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
			empty = 0
		}
	}
	for file := 9; file >= 1; file-- {
		sq, _ := NewSquare(file, rank)
		piece := p.board[sq]
		if piece.IsEmpty() {
			empty++
			continue
		}
		flushEmpty()
		kind, color := piece.Parts()
		letterKind := kind
		if base, ok := kind.Unpromote(); ok {
			b.WriteByte('+')
			letterKind = base
		}
		letter, _ := letterKind.usiLetter()
		if color == White {
			letter += 'a' - 'A'
		}
		b.WriteByte(letter)
	}
	flushEmpty()
	return b.String()
}

func handsSFEN(black, white Hand) string {
	var b strings.Builder
	write := func(h Hand, lower bool) {
		for _, kind := range handKinds {
			count := h.Count(kind)
			if count == 0 {
				continue
			}
			if count > 1 {
				b.WriteString(strconv.Itoa(count))
			}
			letter, _ := kind.usiLetter()
			if lower {
				letter += 'a' - 'A'
			}
			b.WriteByte(letter)
		}
	}
	write(black, false)
	write(white, true)
	return b.String()
}
