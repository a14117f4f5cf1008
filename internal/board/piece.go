package board

// Color identifies a side, White = 0 and Black = 1.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// PushDir returns the pawn push increment for c in square indices.
func (c Color) PushDir() int {
	if c == White {
		return 8
	}
	return -8
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType identifies a kind of piece independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King

	// NoPieceType marks the absence of a piece (empty capture, no
	// promotion payload in a move).
	NoPieceType PieceType = 6
)

var pieceGlyphs = [2]string{"PNBRQK", "pnbrqk"}

// Glyph returns the FEN character for a piece of type pt and color c.
func (pt PieceType) Glyph(c Color) byte {
	return pieceGlyphs[c][pt]
}

// PieceTypeFromGlyph decodes a FEN piece character; uppercase is white.
func PieceTypeFromGlyph(b byte) (PieceType, Color, bool) {
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if pieceGlyphs[c][pt] == b {
				return pt, c, true
			}
		}
	}
	return NoPieceType, White, false
}

func (pt PieceType) String() string {
	names := [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}
	if pt >= NoPieceType {
		return "none"
	}
	return names[pt]
}
