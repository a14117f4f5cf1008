package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares, one bit per square in A1..H8 order.
type Bitboard uint64

const (
	// FileABB and Rank1BB seed the mask tables below.
	FileABB Bitboard = 0x0101010101010101
	Rank1BB Bitboard = 0x00000000000000FF

	notFileA Bitboard = ^FileABB
	notFileH Bitboard = ^(FileABB << 7)
)

var (
	fileMask [8]Bitboard
	rankMask [8]Bitboard
)

func init() {
	for i := 0; i < 8; i++ {
		fileMask[i] = FileABB << i
		rankMask[i] = Rank1BB << (8 * i)
	}
}

// SquareBB returns the bitboard holding only sq.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | 1<<sq
}

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet reports whether sq is in the set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest square in the set, NoSquare when empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest square in the set, NoSquare when empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest square in the set.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Directional single-step shifts. East/west steps mask the wrapped file.

func (b Bitboard) North() Bitboard { return b << 8 }
func (b Bitboard) South() Bitboard { return b >> 8 }
func (b Bitboard) East() Bitboard  { return b << 1 & notFileA }
func (b Bitboard) West() Bitboard  { return b >> 1 & notFileH }

func (b Bitboard) NorthEast() Bitboard { return b << 9 & notFileA }
func (b Bitboard) NorthWest() Bitboard { return b << 7 & notFileH }
func (b Bitboard) SouthEast() Bitboard { return b >> 7 & notFileA }
func (b Bitboard) SouthWest() Bitboard { return b >> 9 & notFileH }

// String renders the set rank 8 first, for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			if b.IsSet(NewSquare(f, r)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
			if f < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
