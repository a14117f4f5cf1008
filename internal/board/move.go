package board

import "fmt"

// Move packs origin, destination and promotion piece into 16 bits:
// bits 0-5 origin, bits 6-11 destination, bits 12-15 promotion piece
// (NoPieceType when the move does not promote).
//
// Castling travels internally as the king capturing its own rook (e1h1
// rather than e1g1); MoveFromUCI and MoveToUCI translate to and from the
// conventional wire form.
type Move uint16

// NoMove is the null move. Real moves always carry NoPieceType in the
// promotion bits, so no legal encoding collides with zero.
const NoMove Move = 0

// NewMove builds a non-promoting move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(NoPieceType)<<12
}

// NewPromotion builds a promoting pawn move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3F)
}

// Promotion returns the promotion piece, NoPieceType if none.
func (m Move) Promotion() PieceType {
	return PieceType(m >> 12)
}

// String renders the internal form of the move ("e1h1" for castling).
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPieceType {
		s += string(pieceGlyphs[Black][p])
	}
	return s
}

// MoveFromUCI parses a move in UCI notation against p, translating the
// conventional castling form (king jumps two files) into the internal
// king-takes-rook encoding.
func MoveFromUCI(p *Position, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		pt, c, ok := PieceTypeFromGlyph(s[4])
		if !ok || c != Black || pt == Pawn || pt == King {
			return NoMove, fmt.Errorf("invalid promotion in %q", s)
		}
		return NewPromotion(from, to, pt), nil
	}

	// A two-file king move is castling on the wire; retarget it at the
	// castlable rook on that wing.
	if p.Occupied().IsSet(from) && p.PieceOn(from) == King {
		if d := to.File() - from.File(); d == 2 || d == -2 {
			us := p.ColorOn(from)
			rooks := p.CastlableRooks & p.ByColor[us] & rankMask[from.Rank()]
			if d > 0 {
				rooks &= ^(SquareBB(from)<<1 - 1) // files right of the king
				to = rooks.LSB()
			} else {
				rooks &= SquareBB(from) - 1 // files left of the king
				to = rooks.MSB()
			}
			if to == NoSquare {
				return NoMove, fmt.Errorf("no castlable rook for %q", s)
			}
		}
	}
	return NewMove(from, to), nil
}

// MoveToWire maps the king-takes-rook castling encoding back to the
// conventional king destination; any other move passes through unchanged.
// p must be the position m is played from.
func MoveToWire(p *Position, m Move) Move {
	from, to := m.From(), m.To()
	if p.Occupied().IsSet(from) && p.PieceOn(from) == King &&
		p.Occupied().IsSet(to) && p.ColorOn(to) == p.ColorOn(from) {
		file := 6
		if to < from {
			file = 2
		}
		return NewMove(from, NewSquare(file, from.Rank()))
	}
	return m
}

// MoveToUCI renders m for the wire.
func MoveToUCI(p *Position, m Move) string {
	return MoveToWire(p, m).String()
}

// MoveList is a fixed-capacity move accumulator; 256 covers any reachable
// position.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves held.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap exchanges two entries.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice exposes the accumulated moves.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
