package board

// Attack tables for the leapers; slider attacks are computed by ray walks.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		b := SquareBB(sq)

		knightAttacks[sq] = b.North().NorthEast() | b.East().NorthEast() |
			b.East().SouthEast() | b.South().SouthEast() |
			b.South().SouthWest() | b.West().SouthWest() |
			b.West().NorthWest() | b.North().NorthWest()

		kingAttacks[sq] = b.North() | b.South() | b.East() | b.West() |
			b.NorthEast() | b.NorthWest() | b.SouthEast() | b.SouthWest()

		pawnAttacks[White][sq] = b.NorthEast() | b.NorthWest()
		pawnAttacks[Black][sq] = b.SouthEast() | b.SouthWest()
	}
}

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func slideAttacks(sq Square, occ Bitboard, dirs *[4][2]int) Bitboard {
	var att Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for 0 <= f && f < 8 && 0 <= r && r < 8 {
			s := NewSquare(f, r)
			att = att.Set(s)
			if occ.IsSet(s) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return att
}

// RookAttacks returns the squares a rook on sq attacks given occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return slideAttacks(sq, occ, &rookDirs)
}

// BishopAttacks returns the squares a bishop on sq attacks given occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return slideAttacks(sq, occ, &bishopDirs)
}

// Attacked reports whether sq is attacked by any piece of color by. The
// rook/queen and bishop/queen unions let each slider family be tested in
// one intersection.
func (p *Position) Attacked(sq Square, by Color) bool {
	if pawnAttacks[by.Other()][sq]&p.Get(by, Pawn) != 0 {
		return true
	}
	if knightAttacks[sq]&p.Get(by, Knight) != 0 {
		return true
	}
	if kingAttacks[sq]&p.Get(by, King) != 0 {
		return true
	}
	occ := p.Occupied()
	if RookAttacks(sq, occ)&p.GetRQ(by) != 0 {
		return true
	}
	return BishopAttacks(sq, occ)&p.GetBQ(by) != 0
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Attacked(p.KingSquare(p.Turn), p.Turn.Other())
}
