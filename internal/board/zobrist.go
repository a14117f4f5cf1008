package board

// Zobrist keys for the position fingerprint. The tables are filled once
// from a fixed-seed PRNG so keys are reproducible across runs.
//
// Castling keys are one per rook origin square; the contribution of a
// rights set is the XOR over its squares, so a before/after delta
// bitboard folds in with a single pass. The en-passant table has a zero
// entry at NoSquare, making the no-ep contribution a no-op.
var (
	zobristPiece     [2][6][64]uint64
	zobristCastling  [64]uint64
	zobristEnPassant [65]uint64
	zobristTurn      uint64
)

// xorshift64* generator; plenty of spread for key material and no
// dependency on the math/rand stream staying stable.
type zobristPRNG struct {
	state uint64
}

func (g *zobristPRNG) next() uint64 {
	g.state ^= g.state >> 12
	g.state ^= g.state << 25
	g.state ^= g.state >> 27
	return g.state * 0x2545F4914F6CDD1D
}

func init() {
	g := zobristPRNG{state: 0x1C3A7D5B9E2F8460}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = g.next()
			}
		}
	}
	for sq := A1; sq <= H8; sq++ {
		zobristCastling[sq] = g.next()
	}
	for sq := A1; sq <= H8; sq++ {
		zobristEnPassant[sq] = g.next()
	}
	zobristTurn = g.next()
}

// castlingKey returns the combined key of every rook square in rooks.
func castlingKey(rooks Bitboard) uint64 {
	var k uint64
	for rooks != 0 {
		k ^= zobristCastling[rooks.PopLSB()]
	}
	return k
}
