package kifu

// NumeralStyle selects how rank digits are rendered in notation.
// Files always use full-width Western digits; the traditional style
// found in books and magazines writes ranks with kanji numerals.
type NumeralStyle uint8

const (
	// StyleDefault leaves the choice to the renderer: single-move
	// notation uses Western digits, KIF files use kanji ranks.
	StyleDefault NumeralStyle = iota
	// StyleWestern renders both digits as full-width Western numerals,
	// e.g. ４８.
	StyleWestern
	// StyleKanji renders the rank digit as a kanji numeral, e.g. ４八.
	StyleKanji
)

var fullwidthDigits = [9]rune{'１', '２', '３', '４', '５', '６', '７', '８', '９'}
var kanjiDigits = [9]rune{'一', '二', '三', '四', '五', '六', '七', '八', '九'}

// Digit renders d (1-9) in the style's rank alphabet; StyleDefault
// falls back to Western digits. Digits outside 1-9 are a caller error.
func (s NumeralStyle) Digit(d int) rune {
	if s == StyleKanji {
		return kanjiDigits[d-1]
	}
	return fullwidthDigits[d-1]
}

func (s NumeralStyle) fileRune(d int) rune {
	return fullwidthDigits[d-1]
}

func (s NumeralStyle) rankRune(d int) rune {
	return s.Digit(d)
}
