package board

import (
	"fmt"
	"strings"
)

// StrictChecks gates the precondition and fingerprint assertions. They are
// cheap enough to stay on everywhere except a measured performance build.
var StrictChecks = true

// Position is the complete state of a game at one ply. It is a value type:
// each ply's position is produced by copying the parent through Play, never
// by mutating a shared object.
type Position struct {
	// ByColor and ByPiece partition the occupied squares: an occupied
	// square is set in exactly one entry of each.
	ByColor [2]Bitboard
	ByPiece [6]Bitboard

	// CastlableRooks holds the rook origin squares that still carry a
	// castling right. Rights are only ever lost.
	CastlableRooks Bitboard

	// EpSquare is the square vulnerable to en-passant capture this ply,
	// NoSquare if none.
	EpSquare Square

	// Rule50 counts half-moves since the last capture or pawn move.
	Rule50 int

	// Turn is the side to move.
	Turn Color

	// Key is the zobrist fingerprint, maintained incrementally. KeyOK
	// verifies it against a from-scratch recomputation.
	Key uint64
}

// Occupied returns the set of all occupied squares.
func (p *Position) Occupied() Bitboard {
	return p.ByColor[White] | p.ByColor[Black]
}

// Get returns the squares holding pieces of the given color and type.
func (p *Position) Get(c Color, pt PieceType) Bitboard {
	return p.ByColor[c] & p.ByPiece[pt]
}

// GetRQ returns c's rooks and queens, the orthogonal sliders.
func (p *Position) GetRQ(c Color) Bitboard {
	return p.ByColor[c] & (p.ByPiece[Rook] | p.ByPiece[Queen])
}

// GetBQ returns c's bishops and queens, the diagonal sliders.
func (p *Position) GetBQ(c Color) Bitboard {
	return p.ByColor[c] & (p.ByPiece[Bishop] | p.ByPiece[Queen])
}

// ColorOn returns the color of the piece on sq, which must be occupied.
func (p *Position) ColorOn(sq Square) Color {
	if StrictChecks && !p.Occupied().IsSet(sq) {
		panic(fmt.Sprintf("board: ColorOn(%v) on empty square", sq))
	}
	if p.ByColor[White].IsSet(sq) {
		return White
	}
	return Black
}

// PieceOn returns the type of the piece on sq, which must be occupied.
// Pawns are tested first as the most frequent piece; the remaining kinds
// are scanned in ascending order, leaving the rare queen and king last.
func (p *Position) PieceOn(sq Square) PieceType {
	if StrictChecks && !p.Occupied().IsSet(sq) {
		panic(fmt.Sprintf("board: PieceOn(%v) on empty square", sq))
	}
	if p.ByPiece[Pawn].IsSet(sq) {
		return Pawn
	}
	for pt := Knight; pt <= King; pt++ {
		if p.ByPiece[pt].IsSet(sq) {
			return pt
		}
	}
	// Occupancy claims the square is taken but no piece set holds it.
	panic(fmt.Sprintf("board: corrupt occupancy at %v", sq))
}

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.Get(c, King).LSB()
}

// set places a piece and folds its key contribution into the fingerprint.
// All placement goes through set/clear, which is what keeps the
// fingerprint invariant true by construction.
func (p *Position) set(c Color, pt PieceType, sq Square) {
	p.ByColor[c] = p.ByColor[c].Set(sq)
	p.ByPiece[pt] = p.ByPiece[pt].Set(sq)
	p.Key ^= zobristPiece[c][pt][sq]
}

// clear removes a piece, undoing its key contribution.
func (p *Position) clear(c Color, pt PieceType, sq Square) {
	p.ByColor[c] = p.ByColor[c].Clear(sq)
	p.ByPiece[pt] = p.ByPiece[pt].Clear(sq)
	p.Key ^= zobristPiece[c][pt][sq]
}

// computeKey rebuilds the fingerprint from scratch.
func (p *Position) computeKey() uint64 {
	var k uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for b := p.Get(c, pt); b != 0; {
				k ^= zobristPiece[c][pt][b.PopLSB()]
			}
		}
	}
	if p.Turn == Black {
		k ^= zobristTurn
	}
	k ^= castlingKey(p.CastlableRooks)
	k ^= zobristEnPassant[p.EpSquare]
	return k
}

// KeyOK verifies the incrementally maintained fingerprint against a full
// recomputation. Off the hot path; Play asserts it after every move when
// StrictChecks is on.
func (p *Position) KeyOK() bool {
	return p.computeKey() == p.Key
}

// Play applies a pseudo-legal move and returns the resulting position,
// leaving the receiver untouched.
//
// Castling arrives encoded as the king capturing its own rook; en-passant
// capture is recognized by the destination matching the pre-move ep
// square; promotion is recognized purely by the destination rank.
func (before *Position) Play(m Move) Position {
	p := *before
	p.Rule50++

	us, them := p.Turn, p.Turn.Other()
	from, to := m.From(), m.To()
	piece := p.PieceOn(from)

	captured := NoPieceType
	if p.Occupied().IsSet(to) {
		captured = p.PieceOn(to)
	}

	if captured != NoPieceType {
		p.Rule50 = 0
		// ColorOn rather than them: a KxR castling move "captures" a
		// friendly rook.
		p.clear(p.ColorOn(to), captured, to)
		// A captured rook can no longer castle.
		if captured == Rook {
			p.CastlableRooks = p.CastlableRooks.Clear(to)
		}
	}

	p.clear(us, piece, from)
	p.set(us, piece, to)

	if piece == Pawn {
		push := us.PushDir()
		p.Rule50 = 0
		if int(to) == int(from)+2*push {
			p.EpSquare = Square(int(from) + push)
		} else {
			p.EpSquare = NoSquare
		}

		if to == before.EpSquare {
			// En-passant: the victim sits one rank behind the target.
			p.clear(them, Pawn, Square(int(to)-push))
		} else if to.Rank() == 0 || to.Rank() == 7 {
			p.clear(us, Pawn, to)
			p.set(us, m.Promotion(), to)
		}
	} else {
		p.EpSquare = NoSquare

		if piece == Rook {
			p.CastlableRooks = p.CastlableRooks.Clear(from)
		} else if piece == King {
			p.CastlableRooks &^= rankMask[7*int(us)]

			if before.ByColor[us].IsSet(to) {
				// Capturing our own piece can only be castling.
				if StrictChecks && before.PieceOn(to) != Rook {
					panic("board: king capture of own non-rook")
				}
				r := from.Rank()
				ksq, rsq := NewSquare(6, r), NewSquare(5, r)
				if to < from {
					ksq, rsq = NewSquare(2, r), NewSquare(3, r)
				}
				p.clear(us, King, to)
				p.set(us, King, ksq)
				p.set(us, Rook, rsq)
			}
		}
	}

	p.Turn = them
	p.Key ^= zobristTurn
	p.Key ^= zobristEnPassant[before.EpSquare] ^ zobristEnPassant[p.EpSquare]
	p.Key ^= castlingKey(before.CastlableRooks ^ p.CastlableRooks)

	if StrictChecks && !p.KeyOK() {
		panic("board: fingerprint out of sync after " + m.String())
	}
	return p
}

// String renders the board for human debugging: '.' for an empty square,
// '*' for the en-passant target, the piece glyph otherwise, followed by
// the half-move counter.
func (p *Position) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			sq := NewSquare(f, r)
			ch := byte('.')
			switch {
			case p.Occupied().IsSet(sq):
				ch = p.PieceOn(sq).Glyph(p.ColorOn(sq))
			case sq == p.EpSquare:
				ch = '*'
			}
			sb.WriteByte(ch)
			if f < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "\nrule50 = %d\n", p.Rule50)
	return sb.String()
}
