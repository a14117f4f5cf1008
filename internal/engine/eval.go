package engine

import "github.com/dkoval/ivorine/internal/board"

// Material values in centipawns; the king carries none.
var pieceValue = [6]int{100, 325, 335, 500, 975, 0}

// pst holds small piece-square bonuses from white's point of view,
// generated rather than hand-tuned: minor pieces and queens like the
// center, pawns like to advance, the king is not steered. Enough to make
// "bestmove" sensible without dragging a full evaluator into this core.
var pst [6][64]int

func init() {
	for sq := board.A1; sq <= board.H8; sq++ {
		f, r := sq.File(), sq.Rank()
		center := centerDist(f) + centerDist(r)

		pst[board.Pawn][sq] = 4 * (r - 1)
		pst[board.Knight][sq] = 12 - 6*center
		pst[board.Bishop][sq] = 8 - 4*center
		pst[board.Rook][sq] = 0
		pst[board.Queen][sq] = 4 - 2*center
		pst[board.King][sq] = 0
	}
}

func centerDist(x int) int {
	if x < 4 {
		return 3 - x
	}
	return x - 4
}

// Evaluate returns a static score in centipawns from the side to move's
// point of view.
func Evaluate(p *board.Position) int {
	score := 0
	for pt := board.Pawn; pt <= board.King; pt++ {
		for b := p.Get(board.White, pt); b != 0; {
			sq := b.PopLSB()
			score += pieceValue[pt] + pst[pt][sq]
		}
		for b := p.Get(board.Black, pt); b != 0; {
			sq := b.PopLSB()
			score -= pieceValue[pt] + pst[pt][sq.Mirror()]
		}
	}
	if p.Turn == board.Black {
		return -score
	}
	return score
}
