package engine

import (
	"sync/atomic"
	"time"

	"github.com/dkoval/ivorine/internal/board"
)

const (
	// MaxPly bounds the search depth and the mate-score band.
	MaxPly = 128

	// Infinity exceeds any reachable score.
	Infinity = 32000

	// MateScore is the value of delivering mate at the root; mate at ply
	// n scores MateScore-n.
	MateScore = 31000
)

// Searcher runs a single-threaded iterative-deepening alpha-beta search
// over a shared transposition table. Each ply's position is a fresh value
// produced by Play; the searcher never mutates a position in place.
type Searcher struct {
	tt       *Table
	nodes    atomic.Uint64
	stop     atomic.Bool
	deadline time.Time
}

// NewSearcher attaches a searcher to the shared table.
func NewSearcher(tt *Table) *Searcher {
	return &Searcher{tt: tt}
}

// Stop asks the search to wind down at the next node-count check.
func (s *Searcher) Stop() {
	s.stop.Store(true)
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Searcher) reset(deadline time.Time) {
	s.nodes.Store(0)
	s.stop.Store(false)
	s.deadline = deadline
}

// checkLimits polls the stop flag and deadline between node visits; none
// of the table or board primitives block, so this is the only exit path.
func (s *Searcher) checkLimits() bool {
	if s.stop.Load() {
		return true
	}
	if !s.deadline.IsZero() && s.nodes.Load()&1023 == 0 && time.Now().After(s.deadline) {
		s.stop.Store(true)
		return true
	}
	return false
}

// searchRoot searches every root move at the given depth and returns the
// best move with its score.
func (s *Searcher) searchRoot(pos *board.Position, depth int) (board.Move, int) {
	moves := pos.GenerateLegalMoves()
	s.orderMoves(pos, &moves, 0)

	alpha, beta := -Infinity, Infinity
	best := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		next := pos.Play(m)
		s.tt.Prefetch(next.Key)
		score := -s.negamax(&next, depth-1, 1, -beta, -alpha)
		if s.stop.Load() {
			break
		}
		if score > alpha {
			alpha = score
			best = m
		}
	}

	if best != board.NoMove {
		entry := HashEntry{
			Move:  best,
			Score: int16(alpha),
			Eval:  int16(Evaluate(pos)),
			Depth: int8(depth),
		}
		entry.SetBound(BoundExact)
		s.tt.Store(pos.Key, entry, 0)
	}
	return best, alpha
}

func (s *Searcher) negamax(pos *board.Position, depth, ply, alpha, beta int) int {
	s.nodes.Add(1)
	if s.checkLimits() {
		return 0
	}

	if pos.Rule50 >= 100 {
		return 0
	}

	// Probe before expanding; a deep-enough cached bound ends the node.
	ttMove := board.NoMove
	if e, ok := s.tt.Probe(pos.Key, ply); ok {
		ttMove = e.Move
		if int(e.Depth) >= depth {
			score := int(e.Score)
			switch e.Bound() {
			case BoundExact:
				return score
			case BoundLower:
				if score >= beta {
					return score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 || ply >= MaxPly {
		return Evaluate(pos)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}
	s.orderMoves(pos, &moves, ttMove)

	staticEval := Evaluate(pos)
	best := -Infinity
	bestMove := board.NoMove
	bound := BoundUpper

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		next := pos.Play(m)
		s.tt.Prefetch(next.Key)
		score := -s.negamax(&next, depth-1, ply+1, -beta, -alpha)
		if s.stop.Load() {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = BoundExact
				if alpha >= beta {
					bound = BoundLower
					break
				}
			}
		}
	}

	entry := HashEntry{
		Move:  bestMove,
		Score: int16(best),
		Eval:  int16(staticEval),
		Depth: int8(depth),
	}
	entry.SetBound(bound)
	s.tt.Store(pos.Key, entry, ply)
	return best
}

// orderMoves puts the cached best move first and captures (most valuable
// victim first) ahead of quiet moves.
func (s *Searcher) orderMoves(pos *board.Position, moves *board.MoveList, ttMove board.Move) {
	scores := make([]int, moves.Len())
	occ := pos.Occupied()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		switch {
		case m == ttMove:
			scores[i] = 1 << 20
		case occ.IsSet(m.To()):
			scores[i] = 1<<10 + pieceValue[pos.PieceOn(m.To())]
		}
	}
	// Selection sort; the lists are short and allocation-free ordering
	// matters more than asymptotics here.
	for i := 0; i < moves.Len(); i++ {
		top := i
		for j := i + 1; j < moves.Len(); j++ {
			if scores[j] > scores[top] {
				top = j
			}
		}
		if top != i {
			moves.Swap(i, top)
			scores[i], scores[top] = scores[top], scores[i]
		}
	}
}

// principalVariation recovers the PV by walking cached best moves from
// pos, stopping at the first gap or illegal continuation.
func (s *Searcher) principalVariation(pos board.Position, depth int) []board.Move {
	var pv []board.Move
	for ply := 0; ply < depth; ply++ {
		e, ok := s.tt.Probe(pos.Key, ply)
		if !ok || e.Move == board.NoMove {
			break
		}
		legal := pos.GenerateLegalMoves()
		if !legal.Contains(e.Move) {
			break
		}
		pv = append(pv, e.Move)
		pos = pos.Play(e.Move)
	}
	return pv
}
