package kifu

// Color identifies a player. Black (sente) moves first.
type Color uint8

const (
	Black Color = iota
	White
)

// Flip returns the opposing color.
func (c Color) Flip() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}
