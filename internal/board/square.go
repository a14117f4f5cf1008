// Package board implements the bitboard position core of the engine:
// piece placement, state transitions, the incremental zobrist fingerprint
// and move generation on top of them.
package board

import "fmt"

// Square indexes a board square. A1=0, H1=7, A8=56, H8=63 (rank-major).
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// NoSquare is the "no such square" sentinel, used for an absent
	// en-passant target among other things.
	NoSquare Square = 64
)

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// File returns the file of the square, 0=a .. 7=h.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank of the square, 0=first .. 7=eighth.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// RelativeRank returns the rank as seen from c's side of the board:
// rank 0 is c's back rank.
func (sq Square) RelativeRank(c Color) int {
	return sq.Rank() ^ (7 * int(c))
}

// Mirror flips the square vertically.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// IsValid reports whether sq is a real board square.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String renders algebraic notation, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare reads algebraic notation like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
